package analytics

import (
	"strings"
	"time"
)

// DateRangeFilter names the interval a performance view is scoped to.
type DateRangeFilter string

const (
	FilterToday    DateRangeFilter = "today"
	FilterWeek     DateRangeFilter = "week"
	FilterMonth    DateRangeFilter = "month"
	FilterQuarter  DateRangeFilter = "quarter"
	FilterYear     DateRangeFilter = "year"
	FilterLifetime DateRangeFilter = "lifetime"
	FilterCustom   DateRangeFilter = "custom"
)

// customFallbackDays is how far back an unbounded custom filter reaches.
// The window [today-30, today] is inclusive, so it covers 31 calendar days.
const customFallbackDays = 30

// DefaultLifetimeStart returns the platform inception date used by the lifetime filter.
func DefaultLifetimeStart() Date { return NewDate(2020, time.January, 1) }

// ParseFilter parses a filter name, case-insensitively.
func ParseFilter(s string) (DateRangeFilter, bool) {
	f := DateRangeFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterToday, FilterWeek, FilterMonth, FilterQuarter, FilterYear, FilterLifetime, FilterCustom:
		return f, true
	}
	return "", false
}

// Resolve turns a filter into a concrete inclusive date range relative to today.
// custom may be nil; it is only consulted for FilterCustom.
func Resolve(filter DateRangeFilter, custom *Range, today, lifetimeStart Date) Range {
	switch filter {
	case FilterToday:
		return Range{From: today, To: today}
	case FilterWeek:
		return WeekOf(today)
	case FilterMonth:
		return MonthOf(today)
	case FilterQuarter:
		return QuarterOf(today)
	case FilterYear:
		return YearOf(today)
	case FilterLifetime:
		if lifetimeStart.IsZero() {
			lifetimeStart = DefaultLifetimeStart()
		}
		return NewRange(lifetimeStart, today)
	default:
		if custom != nil && !custom.From.IsZero() && !custom.To.IsZero() {
			return NewRange(custom.From, custom.To)
		}
		return Range{From: today.AddDays(-customFallbackDays), To: today}
	}
}

// WeekOf returns the Monday-to-Sunday week containing d.
func WeekOf(d Date) Range {
	offset := (int(d.Weekday()) + 6) % 7
	from := d.AddDays(-offset)
	return Range{From: from, To: from.AddDays(6)}
}

// MonthOf returns the calendar month containing d.
func MonthOf(d Date) Range {
	return Range{
		From: NewDate(d.Year(), d.Month(), 1),
		To:   NewDate(d.Year(), d.Month()+1, 0),
	}
}

// QuarterOf returns the calendar quarter containing d.
func QuarterOf(d Date) Range {
	first := time.Month((int(d.Month())-1)/3*3 + 1)
	return Range{
		From: NewDate(d.Year(), first, 1),
		To:   NewDate(d.Year(), first+3, 0),
	}
}

// YearOf returns the calendar year containing d.
func YearOf(d Date) Range {
	return Range{
		From: NewDate(d.Year(), time.January, 1),
		To:   NewDate(d.Year(), time.December, 31),
	}
}
