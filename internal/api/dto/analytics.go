package dto

import (
	"github.com/tugohq/tugo/internal/domain/reporting"
	"github.com/tugohq/tugo/internal/validator"
)

// MonthlyReportEntity selects which records a monthly report buckets.
type MonthlyReportEntity string

const (
	MonthlyReportCustomers MonthlyReportEntity = "customers"
	MonthlyReportCoupons   MonthlyReportEntity = "coupons"
)

type MonthlyReportRequest struct {
	Entity MonthlyReportEntity `form:"entity" validate:"required,oneof=customers coupons"`
	// Year restricts the report to one calendar year. Zero means all
	// years are bucketed together.
	Year int `form:"year" validate:"omitempty,gte=2000,lte=2200"`
}

type MonthlyReportResponse struct {
	Entity MonthlyReportEntity     `json:"entity"`
	Year   int                     `json:"year,omitempty"`
	Months []reporting.MonthBucket `json:"months"`
}

type SummaryResponse struct {
	Customers      int   `json:"customers"`
	CouponsIssued  int   `json:"coupons_issued"`
	CouponsUsed    int   `json:"coupons_used"`
	PointsAssigned int64 `json:"points_assigned"`
	PointsUsed     int64 `json:"points_used"`
}

func (r *MonthlyReportRequest) Validate() error {
	return validator.ValidateRequest(r)
}
