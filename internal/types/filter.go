package types

import (
	"time"

	"github.com/samber/lo"
	ierr "github.com/tugohq/tugo/internal/errors"
)

const (
	DefaultFilterLimit = 50
	MaxFilterLimit     = 1000
)

// BaseFilter is implemented by filters that support pagination
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	IsUnlimited() bool
	Validate() error
}

// QueryFilter holds common pagination fields for list queries
type QueryFilter struct {
	Limit  *int `form:"limit"`
	Offset *int `form:"offset"`
	// NoLimit disables pagination entirely; used for internal reads like
	// the dashboard aggregation pipeline.
	NoLimit bool `form:"-"`
}

// NewDefaultQueryFilter creates a query filter with default pagination
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(DefaultFilterLimit),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter creates a query filter without pagination
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		NoLimit: true,
	}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return DefaultFilterLimit
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f *QueryFilter) IsUnlimited() bool {
	return f != nil && f.NoLimit
}

func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > MaxFilterLimit) {
		return ierr.NewError("limit out of range").
			WithHintf("Limit must be between 1 and %d", MaxFilterLimit).
			WithReportableDetails(map[string]any{
				"limit": *f.Limit,
			}).
			Mark(ierr.ErrValidation)
	}

	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			WithHint("Offset must be non-negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// TimeRangeFilter restricts a query to records created inside a window
type TimeRangeFilter struct {
	StartTime *time.Time `form:"start_time"`
	EndTime   *time.Time `form:"end_time"`
}

func (f *TimeRangeFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return ierr.NewError("end_time before start_time").
			WithHint("End time must not be before start time").
			Mark(ierr.ErrValidation)
	}

	return nil
}
