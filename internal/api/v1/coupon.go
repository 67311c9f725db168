package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tugohq/tugo/internal/api/dto"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/service"
	"github.com/tugohq/tugo/internal/types"
)

type CouponHandler struct {
	service service.CouponService
	log     *logger.Logger
}

func NewCouponHandler(
	service service.CouponService,
	log *logger.Logger,
) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a coupon
// @Description Issue a new coupon for a customer
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param coupon body dto.CreateCouponRequest true "Coupon"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a coupon
// @Description Get a coupon
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a coupon by code
// @Description Get a coupon by its printed code
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param code path string true "Coupon Code"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/code/{code} [get]
func (h *CouponHandler) GetCouponByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.Error(ierr.NewError("coupon code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCouponByCode(c.Request.Context(), code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get coupons
// @Description Get coupons
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.CouponFilter false "Filter"
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons [get]
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	var filter types.CouponFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetCoupons(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a coupon
// @Description Update a coupon that has not been used yet
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Param coupon body dto.UpdateCouponRequest true "Coupon"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id} [put]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Expire a coupon
// @Description Take an unused coupon out of circulation
// @Tags Coupons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /coupons/{id}/expire [post]
func (h *CouponHandler) ExpireCoupon(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.ExpireCoupon(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
