package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	v1 "github.com/tugohq/tugo/internal/api/v1"
	"github.com/tugohq/tugo/internal/config"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/rest/middleware"
	"github.com/tugohq/tugo/internal/types"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Auth       *v1.AuthHandler
	Customer   *v1.CustomerHandler
	Coupon     *v1.CouponHandler
	Redemption *v1.RedemptionHandler
	Analytics  *v1.AnalyticsHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/v1")
	public.POST("/auth/login", handlers.Auth.Login)

	// Private routes require a valid session token. Local deployments
	// skip token checks and run as the default tenant instead.
	private := router.Group("/v1")
	if cfg.Deployment.Mode == types.ModeLocal {
		private.Use(middleware.GuestAuthenticateMiddleware)
	} else {
		private.Use(middleware.AuthenticateMiddleware(cfg, log))
	}
	registerV1Routes(private, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.GET("/:id/history", handlers.Customer.GetCustomerHistory)
		customers.GET("/:id/balance", handlers.Customer.GetCustomerBalance)
	}

	coupons := router.Group("/coupons")
	{
		coupons.POST("", handlers.Coupon.CreateCoupon)
		coupons.GET("", handlers.Coupon.GetCoupons)
		coupons.GET("/:id", handlers.Coupon.GetCoupon)
		coupons.PUT("/:id", handlers.Coupon.UpdateCoupon)
		coupons.POST("/:id/expire", handlers.Coupon.ExpireCoupon)
		coupons.GET("/code/:code", handlers.Coupon.GetCouponByCode)
	}

	redemptions := router.Group("/redemptions")
	{
		redemptions.POST("/lookup", handlers.Redemption.LookupCoupon)
		redemptions.POST("/credit", handlers.Redemption.CreditPoints)
		redemptions.POST("/redeem", handlers.Redemption.RedeemPoints)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/monthly", handlers.Analytics.GetMonthlyReport)
		analytics.GET("/summary", handlers.Analytics.GetSummary)
	}
}
