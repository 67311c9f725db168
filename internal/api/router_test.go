package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/tugohq/tugo/internal/api/v1"
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/cache"
	"github.com/tugohq/tugo/internal/config"
	"github.com/tugohq/tugo/internal/idempotency"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/service"
	"github.com/tugohq/tugo/internal/testutil"
	"github.com/tugohq/tugo/internal/types"
)

func newTestRouter(t *testing.T, mode types.RunMode) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Deployment.Mode = mode
	log := logger.NewNopLogger()

	params := service.ServiceParams{
		Logger:               log,
		Config:               cfg,
		DB:                   testutil.NewMockPostgresClient(log),
		Cache:                cache.NewInMemoryCache(cfg.Cache.Enabled),
		Auth:                 auth.NewProvider(cfg),
		IdempotencyGenerator: idempotency.NewGenerator(),
		CustomerRepo:         testutil.NewInMemoryCustomerStore(),
		CouponRepo:           testutil.NewInMemoryCouponStore(),
		LedgerRepo:           testutil.NewInMemoryLedgerStore(),
	}

	handlers := Handlers{
		Health:     v1.NewHealthHandler(log),
		Auth:       v1.NewAuthHandler(cfg, service.NewAuthService(params), log),
		Customer:   v1.NewCustomerHandler(service.NewCustomerService(params), log),
		Coupon:     v1.NewCouponHandler(service.NewCouponService(params), log),
		Redemption: v1.NewRedemptionHandler(service.NewRedemptionService(params), log),
		Analytics:  v1.NewAnalyticsHandler(service.NewAnalyticsService(params), log),
	}
	return NewRouter(handlers, cfg, log)
}

func TestRouterLocalModeAllowsGuests(t *testing.T) {
	router := newTestRouter(t, types.ModeLocal)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterAPIModeRequiresToken(t *testing.T) {
	router := newTestRouter(t, types.ModeAPI)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterAPIModeAcceptsValidToken(t *testing.T) {
	router := newTestRouter(t, types.ModeAPI)

	cfg := config.GetDefaultConfig()
	provider := auth.NewProvider(cfg)
	token, _, err := provider.GenerateToken(context.Background(),types.DefaultUserID, types.DefaultTenantID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
