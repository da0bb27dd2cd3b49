package domain

import (
	"strings"
	"time"
)

// BusinessDay devuelve la fecha calendario de now en loc, a medianoche UTC,
// que es como el driver lee las columnas DATE.
func BusinessDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(day time.Time) string {
	return day.Format(time.DateOnly)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
