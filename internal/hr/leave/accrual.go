// Package leave implements vacation accrual and balance forecasting.
//
// Balances are computed on demand from the hire date and recorded leave
// usage rather than stored, so corrections to either are picked up
// immediately.
package leave

import (
	"math"
	"time"
)

const (
	// MonthlyAccrualDays is the vacation entitlement earned per full month
	// of employment (28 days / 12 months).
	MonthlyAccrualDays = 2.33

	// DefaultAnnualEntitlement is the flat yearly pool assumed for
	// employees without a recorded hire date.
	DefaultAnnualEntitlement = 28.0
)

// MonthsBetween returns the number of full months elapsed from start to end.
// A month is counted only once the day-of-month of start has been reached,
// so Jan 15 to Feb 14 is zero months and Jan 15 to Feb 15 is one.
// Returns 0 when end precedes start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// InclusiveDays returns the number of calendar days from start to end,
// counting both endpoints. Returns 0 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// AccruedDays returns the vacation balance as of the given date: days
// earned since hire minus days already used, floored at zero and rounded
// to one decimal place. Employees without a hire date draw from the flat
// annual pool instead.
func AccruedDays(hiredAt *time.Time, usedDays float64, asOf time.Time) float64 {
	if hiredAt == nil {
		return round1(math.Max(0, DefaultAnnualEntitlement-usedDays))
	}

	months := MonthsBetween(*hiredAt, asOf)
	accrued := float64(months)*MonthlyAccrualDays - usedDays
	return round1(math.Max(0, accrued))
}

// ForecastInput describes a balance projection request.
type ForecastInput struct {
	// Today is the date the projection starts from.
	Today time.Time

	// Target is the future date the balance is projected to.
	Target time.Time

	// CurrentBalance is the accrued balance as of Today.
	CurrentBalance float64

	// ApprovedFutureDays is the total length of approved leaves lying
	// entirely within [Today, Target].
	ApprovedFutureDays float64

	// PlannedDays is additional leave the employee intends to take
	// before Target but has not filed yet.
	PlannedDays float64
}

// ForecastBalance projects the vacation balance at a future date: the
// current balance plus accrual for the months until then, minus approved
// and planned leave. The result may be negative to show overspend.
func ForecastBalance(in ForecastInput) float64 {
	extraMonths := MonthsBetween(in.Today, in.Target)
	projected := in.CurrentBalance + float64(extraMonths)*MonthlyAccrualDays
	projected -= in.ApprovedFutureDays
	projected -= in.PlannedDays
	return round1(projected)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
