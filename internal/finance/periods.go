package finance

import "time"

// PeriodToken is a coarse named reporting period.
type PeriodToken string

const (
	PeriodLast30Days  PeriodToken = "last_30_days"
	PeriodThisMonth   PeriodToken = "this_month"
	PeriodLastQuarter PeriodToken = "last_quarter"
	PeriodThisYear    PeriodToken = "this_year"
	PeriodAllTime     PeriodToken = "all_time"
)

// Period is a concrete date interval. Membership is inclusive of both ends.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ResolvePeriod translates a period token into a concrete interval anchored
// on now. Unknown tokens fall back to all_time rather than failing; callers
// never see an error from period resolution.
func ResolvePeriod(token PeriodToken, now time.Time) Period {
	switch token {
	case PeriodLast30Days:
		return Period{Start: now.AddDate(0, 0, -30), End: now}
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Second)
		return Period{Start: start, End: end}
	case PeriodLastQuarter:
		currentQuarterStart := quarterStart(now)
		start := currentQuarterStart.AddDate(0, -3, 0)
		return Period{Start: start, End: currentQuarterStart.Add(-time.Second)}
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())
		return Period{Start: start, End: end}
	case PeriodAllTime:
		return Period{Start: time.Unix(0, 0), End: now}
	default:
		return Period{Start: time.Unix(0, 0), End: now}
	}
}

func quarterStart(now time.Time) time.Time {
	quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
	return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
}
