package models

import (
	"errors"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// DateRange is the optional inclusive submission_date filter shared by the
// list and export endpoints. Nil bounds mean unbounded.
type DateRange struct {
	Start *int64
	End   *int64
}

// ParseDateRange reads start_date/end_date unix-second query parameters.
func ParseDateRange(query url.Values) (DateRange, error) {
	var dr DateRange

	if raw := query.Get("start_date"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return dr, errors.New("Invalid start_date parameter. Must be a valid Unix timestamp.")
		}
		dr.Start = &v
	}

	if raw := query.Get("end_date"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return dr, errors.New("Invalid end_date parameter. Must be a valid Unix timestamp.")
		}
		dr.End = &v
	}

	if dr.Start != nil && dr.End != nil && *dr.Start > *dr.End {
		return dr, errors.New("start_date cannot be greater than end_date.")
	}

	return dr, nil
}

// Apply adds the inclusive bounds to a query.
func (dr DateRange) Apply(q *gorm.DB) *gorm.DB {
	if dr.Start != nil {
		q = q.Where("submission_date >= ?", *dr.Start)
	}
	if dr.End != nil {
		q = q.Where("submission_date <= ?", *dr.End)
	}
	return q
}
