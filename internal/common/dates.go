package common

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-day layout used for all reporting comparisons.
const DayFormat = "2006-01-02"

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// DateRange is an inclusive calendar-day range. Empty bounds are open.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Contains reports whether the timestamp's UTC calendar day falls inside the
// range.
func (r DateRange) Contains(t time.Time) bool {
	return r.ContainsDay(Day(t))
}

// ContainsDay reports whether a YYYY-MM-DD day falls inside the range.
func (r DateRange) ContainsDay(day string) bool {
	if r.Start != "" && day < r.Start {
		return false
	}
	if r.End != "" && day > r.End {
		return false
	}
	return true
}

// ParseDateRange validates optional start/end day strings.
func ParseDateRange(start, end string) (DateRange, error) {
	for _, v := range []string{start, end} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(DayFormat, v); err != nil {
			return DateRange{}, fmt.Errorf("invalid date %q: %w", v, err)
		}
	}
	if start != "" && end != "" && end < start {
		return DateRange{}, fmt.Errorf("date range end %q precedes start %q", end, start)
	}
	return DateRange{Start: start, End: end}, nil
}
