package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tugohq/tugo/internal/api/dto"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/service"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	log     *logger.Logger
}

func NewAnalyticsHandler(
	service service.AnalyticsService,
	log *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get a monthly report
// @Description Get per-month counts of customers or coupons for the dashboard chart
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query dto.MonthlyReportRequest false "Filter"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthlyReport(c *gin.Context) {
	var req dto.MonthlyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetMonthlyReport(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get dashboard summary
// @Description Get headline counters for customers, coupons and points
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	resp, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
