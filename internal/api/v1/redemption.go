package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tugohq/tugo/internal/api/dto"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/service"
)

type RedemptionHandler struct {
	service service.RedemptionService
	log     *logger.Logger
}

func NewRedemptionHandler(
	service service.RedemptionService,
	log *logger.Logger,
) *RedemptionHandler {
	return &RedemptionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Look up a coupon
// @Description Resolve a coupon code presented at the point of sale
// @Tags Redemptions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lookup body dto.LookupCouponRequest true "Lookup"
// @Success 200 {object} dto.LookupCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /redemptions/lookup [post]
func (h *RedemptionHandler) LookupCoupon(c *gin.Context) {
	var req dto.LookupCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.LookupCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Credit points for a bill
// @Description Convert a bill amount into loyalty points for the coupon's customer
// @Tags Redemptions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param credit body dto.CreditPointsRequest true "Credit"
// @Success 200 {object} dto.CreditPointsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /redemptions/credit [post]
func (h *RedemptionHandler) CreditPoints(c *gin.Context) {
	var req dto.CreditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreditPoints(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Redeem points
// @Description Spend accumulated points against the customer's balance
// @Tags Redemptions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param redeem body dto.RedeemPointsRequest true "Redeem"
// @Success 200 {object} dto.RedeemPointsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /redemptions/redeem [post]
func (h *RedemptionHandler) RedeemPoints(c *gin.Context) {
	var req dto.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RedeemPoints(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
