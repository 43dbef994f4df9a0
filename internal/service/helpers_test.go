package service

import (
	"time"

	"github.com/tradedesk-portal/internal/analytics"
)

// fixedCalendar pins "now" to a moment in New York
func fixedCalendar(year int, month time.Month, day, hour, min int) *Calendar {
	loc := analytics.DefaultLocation()
	now := time.Date(year, month, day, hour, min, 0, 0, loc)
	return &Calendar{
		Location:      loc,
		BaseCapital:   analytics.DefaultBaseCapital(),
		LifetimeStart: analytics.DefaultLifetimeStart(),
		Now:           func() time.Time { return now },
	}
}

func day(year int, month time.Month, d int) time.Time {
	return analytics.NewDate(year, month, d).Time()
}
