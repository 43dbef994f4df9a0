package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/config"
)

// Calendar carries the firm's trading timezone, analytics defaults and clock
type Calendar struct {
	Location      *time.Location
	BaseCapital   decimal.Decimal
	LifetimeStart analytics.Date
	Now           func() time.Time
}

// NewCalendar builds a Calendar from configuration
func NewCalendar(cfg config.AnalyticsConfig) (*Calendar, error) {
	loc := analytics.DefaultLocation()
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid analytics timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	start := analytics.DefaultLifetimeStart()
	if cfg.LifetimeStart != "" {
		d, err := analytics.ParseDate(cfg.LifetimeStart)
		if err != nil {
			return nil, fmt.Errorf("invalid analytics lifetime_start: %w", err)
		}
		start = d
	}

	base := analytics.DefaultBaseCapital()
	if cfg.BaseCapital > 0 {
		base = decimal.NewFromFloat(cfg.BaseCapital)
	}

	return &Calendar{
		Location:      loc,
		BaseCapital:   base,
		LifetimeStart: start,
		Now:           time.Now,
	}, nil
}

// Today is the current civil date in the firm's timezone
func (c *Calendar) Today() analytics.Date {
	return analytics.DateIn(c.Now(), c.Location)
}

// LocalNow is the current instant in the firm's timezone
func (c *Calendar) LocalNow() time.Time {
	return c.Now().In(c.Location)
}

// RangeQuery is the common ?range=&start=&end= query of list and report endpoints
type RangeQuery struct {
	Range string `form:"range"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// Resolve turns q into a filter and its concrete date range.
// An empty range means lifetime. Start and End, when given, must be YYYY-MM-DD.
func (c *Calendar) Resolve(q RangeQuery) (analytics.DateRangeFilter, *analytics.Range, analytics.Range, error) {
	return c.ResolveAt(q, c.Today())
}

// ResolveAt is Resolve against a fixed today
func (c *Calendar) ResolveAt(q RangeQuery, today analytics.Date) (analytics.DateRangeFilter, *analytics.Range, analytics.Range, error) {
	filter := analytics.FilterLifetime
	if q.Range != "" {
		f, ok := analytics.ParseFilter(q.Range)
		if !ok {
			return "", nil, analytics.Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, q.Range)
		}
		filter = f
	}

	var custom *analytics.Range
	if filter == analytics.FilterCustom && (q.Start != "" || q.End != "") {
		from, err := analytics.ParseDate(q.Start)
		if err != nil {
			return "", nil, analytics.Range{}, fmt.Errorf("%w: start", ErrInvalidDate)
		}
		to, err := analytics.ParseDate(q.End)
		if err != nil {
			return "", nil, analytics.Range{}, fmt.Errorf("%w: end", ErrInvalidDate)
		}
		custom = &analytics.Range{From: from, To: to}
	}

	scope := analytics.Resolve(filter, custom, today, c.LifetimeStart)
	return filter, custom, scope, nil
}
