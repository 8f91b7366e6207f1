package metrics

import (
	"github.com/shopspring/decimal"
)

var (
	attendanceWeight = decimal.RequireFromString("0.4")
	complianceWeight = decimal.RequireFromString("0.6")
)

// PerformanceScore is 0.4 × attendance + 0.6 × compliance, rounded to two decimals.
func PerformanceScore(attendanceRate, complianceRate float64) float64 {
	return decimal.NewFromFloat(attendanceRate).Mul(attendanceWeight).
		Add(decimal.NewFromFloat(complianceRate).Mul(complianceWeight)).
		Round(2).
		InexactFloat64()
}

type Status string

const (
	StatusExcellent        Status = "excellent"
	StatusGood             Status = "good"
	StatusNeedsImprovement Status = "needs_improvement"
	StatusPoor             Status = "poor"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusExcellent, StatusGood, StatusNeedsImprovement, StatusPoor:
		return true
	}
	return false
}

// Label is the display form used by dashboard filters.
func (s Status) Label() string {
	switch s {
	case StatusExcellent:
		return "Excellent"
	case StatusGood:
		return "Good"
	case StatusNeedsImprovement:
		return "Needs Improvement"
	case StatusPoor:
		return "Poor"
	}
	return string(s)
}

// Classify buckets a performance score: 80 / 70 / 60.
func Classify(score float64) Status {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 60:
		return StatusNeedsImprovement
	default:
		return StatusPoor
	}
}

type KPIScore struct {
	Value  float64
	Target float64
}

// KPIAchievement averages value/target per KPI, each capped at 100%.
// Rows without a positive target are skipped.
func KPIAchievement(scores []KPIScore) float64 {
	sum := decimal.Zero
	var n int64
	for _, s := range scores {
		if s.Target <= 0 {
			continue
		}
		pct := decimal.NewFromFloat(s.Value).Mul(hundred).Div(decimal.NewFromFloat(s.Target))
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		sum = sum.Add(pct)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum.DivRound(decimal.NewFromInt(n), 2).InexactFloat64()
}
