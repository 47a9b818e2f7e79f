// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// ParseDate accepts the date shapes the backend and the admin forms use.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// DaysOverdue is zero when the due date is today, in the future, or unparseable.
func DaysOverdue(dueDate string, now time.Time) int {
	due, err := ParseDate(dueDate)
	if err != nil {
		return 0
	}
	if d := DaysBetween(due, now.In(due.Location())); d > 0 {
		return d
	}
	return 0
}
