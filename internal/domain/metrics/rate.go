// Package metrics computes attendance, compliance, backlog and performance
// figures from in-memory record snapshots. Nothing here touches storage.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate is a percentage together with the counts it was derived from.
// Denominator == 0 means the window held no records and Value is 0.
type Rate struct {
	Value       float64 `json:"value"`
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
}

func (r Rate) IsEmpty() bool {
	return r.Denominator == 0
}

func percent(numerator, denominator int) Rate {
	if denominator <= 0 {
		return Rate{}
	}
	value := decimal.NewFromInt(int64(numerator)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(denominator)), 2)
	return Rate{
		Value:       value.InexactFloat64(),
		Numerator:   numerator,
		Denominator: denominator,
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Day truncates t to its calendar date, expressed at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FiscalWindowStart returns October 1 of the evaluation year containing asOf.
func FiscalWindowStart(asOf time.Time) time.Time {
	year := asOf.Year()
	if asOf.Month() < time.October {
		year--
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC)
}

// inWindow reports whether d falls in (after, through]; a nil after is unbounded.
func inWindow(d time.Time, after *time.Time, through time.Time) bool {
	day := Day(d)
	if day.After(Day(through)) {
		return false
	}
	return after == nil || day.After(Day(*after))
}
