package market

import (
	"fmt"
	"time"

	"github.com/quantlab/stockdash/internal/models"
)

// DefaultReferenceDate anchors timeframe resolution. A fixed calendar date,
// not wall-clock "now", so resolved ranges (and the series generated from
// them) are stable across runs and test fixtures never drift.
const DefaultReferenceDate = "2023-01-15"

const dateLayout = "2006-01-02"

// Resolver maps timeframe tokens to inclusive date ranges anchored at a
// fixed reference date.
type Resolver struct {
	ref time.Time
}

// NewResolver creates a Resolver anchored at refDate (YYYY-MM-DD). An empty
// refDate uses DefaultReferenceDate.
func NewResolver(refDate string) (*Resolver, error) {
	if refDate == "" {
		refDate = DefaultReferenceDate
	}
	ref, err := time.ParseInLocation(dateLayout, refDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid reference date %q: %w", refDate, err)
	}
	return &Resolver{ref: ref}, nil
}

// ReferenceDate returns the anchor date as YYYY-MM-DD.
func (r *Resolver) ReferenceDate() string {
	return r.ref.Format(dateLayout)
}

// ResolveRange returns the inclusive date range for a timeframe. The end is
// always the reference date; unrecognized tokens (and "custom" without
// explicit dates) fall back to the one-month window.
func (r *Resolver) ResolveRange(tf models.Timeframe) models.DateRange {
	var start time.Time

	switch tf {
	case models.OneDay:
		start = r.ref.AddDate(0, 0, -3)
	case models.OneWeek:
		start = r.ref.AddDate(0, 0, -7)
	case models.OneMonth:
		start = r.ref.AddDate(0, -1, 0)
	case models.ThreeMonth:
		start = r.ref.AddDate(0, -3, 0)
	case models.OneYear:
		start = r.ref.AddDate(-1, 0, 0)
	case models.YearToDate:
		start = time.Date(r.ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case models.MonthToDay:
		start = time.Date(r.ref.Year(), r.ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		start = r.ref.AddDate(0, -1, 0)
	}

	return models.DateRange{
		Start: start.Format(dateLayout),
		End:   r.ref.Format(dateLayout),
	}
}
