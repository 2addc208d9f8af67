package util

import (
	"fmt"
	"time"
)

// FromUnix converts epoch seconds to UTC time. Zero stays the zero time.
func FromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// QuarterLabel renders a period end date as "2024Q3".
func QuarterLabel(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%dQ%d", t.Year(), q)
}

// YearLabel renders a period end date as its year.
func YearLabel(t time.Time) string {
	return fmt.Sprintf("%d", t.Year())
}
