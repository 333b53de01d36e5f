package report

import (
	"time"

	"github.com/qrdine/backend/internal/domain/shared"
)

const (
	// DateLayout is the format of report dates
	DateLayout = "2006-01-02"
	// MaxRangeDays bounds a single report query
	MaxRangeDays = 366
)

// Period is an inclusive range of local days in a restaurant's time zone
type Period struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// ParsePeriod parses YYYY-MM-DD dates in loc. Empty values default to the last
// 30 days ending today.
func ParsePeriod(start, end string, loc *time.Location, now time.Time) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := startOfDay(now.In(loc))

	endDay := today
	if end != "" {
		parsed, err := time.ParseInLocation(DateLayout, end, loc)
		if err != nil {
			return Period{}, shared.NewDomainErrorf("INVALID_DATE_RANGE", "Invalid end_date %q, expected YYYY-MM-DD", end)
		}
		endDay = parsed
	}

	startDay := endDay.AddDate(0, 0, -29)
	if start != "" {
		parsed, err := time.ParseInLocation(DateLayout, start, loc)
		if err != nil {
			return Period{}, shared.NewDomainErrorf("INVALID_DATE_RANGE", "Invalid start_date %q, expected YYYY-MM-DD", start)
		}
		startDay = parsed
	}

	if endDay.Before(startDay) {
		return Period{}, shared.NewDomainError("INVALID_DATE_RANGE", "end_date must not be before start_date")
	}
	if p := (Period{Start: startDay, End: endDay, Location: loc}); p.Days() > MaxRangeDays {
		return Period{}, shared.NewDomainErrorf("INVALID_DATE_RANGE", "Date range cannot exceed %d days", MaxRangeDays)
	}

	return Period{Start: startDay, End: endDay, Location: loc}, nil
}

// Days returns the number of local days covered
func (p Period) Days() int {
	days := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days++
		if days > MaxRangeDays {
			break
		}
	}
	return days
}

// From returns the first instant of the period
func (p Period) From() time.Time {
	return p.Start
}

// To returns the first instant after the period
func (p Period) To() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// Filter builds the repository filter for the period
func (p Period) Filter(f Filter) Filter {
	f.From = p.From()
	f.To = p.To()
	return f
}

// StartLabel returns the first day as YYYY-MM-DD
func (p Period) StartLabel() string {
	return p.Start.Format(DateLayout)
}

// EndLabel returns the last day as YYYY-MM-DD
func (p Period) EndLabel() string {
	return p.End.Format(DateLayout)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
