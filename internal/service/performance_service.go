package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"github.com/tradedesk-portal/pkg/money"
)

// PerformanceService loads users and trade records and runs the aggregator over them.
// Nothing is cached; every call reads fresh rows.
type PerformanceService struct {
	userRepo   UserStore
	recordRepo TradeRecordStore
	calendar   *Calendar
}

// NewPerformanceService creates a new PerformanceService
func NewPerformanceService(userRepo UserStore, recordRepo TradeRecordStore, calendar *Calendar) *PerformanceService {
	return &PerformanceService{
		userRepo:   userRepo,
		recordRepo: recordRepo,
		calendar:   calendar,
	}
}

// FormattedTotals are USD display strings of the headline figures
type FormattedTotals struct {
	TotalPnL    string `json:"total_pnl"`
	TodayPnL    string `json:"today_pnl"`
	WeekPnL     string `json:"week_pnl,omitempty"`
	MonthPnL    string `json:"month_pnl,omitempty"`
	BestDay     string `json:"best_day"`
	WorstDay    string `json:"worst_day"`
	MaxDrawdown string `json:"max_drawdown"`
}

// CompanyReport is the admin dashboard payload
type CompanyReport struct {
	*analytics.Result
	Filter    analytics.DateRangeFilter `json:"filter"`
	Formatted FormattedTotals           `json:"formatted"`
}

// EmployeeReport is one user's stats and series
type EmployeeReport struct {
	Filter    analytics.DateRangeFilter `json:"filter"`
	Range     analytics.Range           `json:"range"`
	Today     analytics.Date            `json:"today"`
	Stats     analytics.EmployeeStats   `json:"stats"`
	Series    []analytics.DailyPnL      `json:"series"`
	Formatted FormattedTotals           `json:"formatted"`
}

// CompanyReport aggregates every user's records for the requested range
func (s *PerformanceService) CompanyReport(q RangeQuery) (*CompanyReport, error) {
	now := s.calendar.Now()
	filter, custom, scope, err := s.resolve(q, now)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.Find(s.window(uuid.Nil, scope, now))
	if err != nil {
		return nil, err
	}

	result := analytics.Aggregate(s.input(records, users, filter, custom, now))
	c := result.Company
	return &CompanyReport{
		Result: result,
		Filter: filter,
		Formatted: FormattedTotals{
			TotalPnL:    money.FormatUSD(c.TotalPnL),
			TodayPnL:    money.FormatUSD(c.TodayPnL),
			WeekPnL:     money.FormatUSD(c.WeekPnL),
			MonthPnL:    money.FormatUSD(c.MonthPnL),
			BestDay:     money.FormatUSD(c.BestDayPnL),
			WorstDay:    money.FormatUSD(c.WorstDayPnL),
			MaxDrawdown: money.FormatUSD(c.MaxDrawdown),
		},
	}, nil
}

// EmployeeReport aggregates one user's records for the requested range
func (s *PerformanceService) EmployeeReport(userID uuid.UUID, q RangeQuery) (*EmployeeReport, error) {
	now := s.calendar.Now()
	filter, custom, scope, err := s.resolve(q, now)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.Find(s.window(userID, scope, now))
	if err != nil {
		return nil, err
	}

	result := analytics.Aggregate(s.input(records, []models.User{*user}, filter, custom, now))
	stats, _ := result.Employee(user.ID.String())
	return &EmployeeReport{
		Filter: filter,
		Range:  result.Range,
		Today:  result.Today,
		Stats:  stats,
		Series: result.UserSeries(user.ID.String()),
		Formatted: FormattedTotals{
			TotalPnL:    money.FormatUSD(stats.TotalPnL),
			TodayPnL:    money.FormatUSD(stats.TodayPnL),
			BestDay:     money.FormatUSD(stats.MaxProfit),
			WorstDay:    money.FormatUSD(stats.MaxLoss),
			MaxDrawdown: money.FormatUSD(stats.MaxDrawdown),
		},
	}, nil
}

func (s *PerformanceService) resolve(q RangeQuery, now time.Time) (analytics.DateRangeFilter, *analytics.Range, analytics.Range, error) {
	return s.calendar.ResolveAt(q, analytics.DateIn(now, s.calendar.Location))
}

// window covers the resolved scope plus the fixed today/week/month windows
func (s *PerformanceService) window(userID uuid.UUID, scope analytics.Range, now time.Time) repository.TradeRecordFilter {
	today := analytics.DateIn(now, s.calendar.Location)
	from, to := scope.From, scope.To
	for _, r := range []analytics.Range{analytics.WeekOf(today), analytics.MonthOf(today)} {
		if r.From.Before(from) {
			from = r.From
		}
		if r.To.After(to) {
			to = r.To
		}
	}
	return repository.TradeRecordFilter{UserID: userID, From: from.Time(), To: to.Time()}
}

// input maps rows onto the aggregator input. Records of users missing from users
// (deleted accounts) are dropped so company figures equal the sum of employee rows.
func (s *PerformanceService) input(records []models.TradeRecord, users []models.User, filter analytics.DateRangeFilter, custom *analytics.Range, now time.Time) analytics.Input {
	in := analytics.Input{
		Records:       make([]analytics.TradeRecord, 0, len(records)),
		Users:         make([]analytics.User, 0, len(users)),
		Filter:        filter,
		Custom:        custom,
		Now:           now,
		Location:      s.calendar.Location,
		BaseCapital:   s.calendar.BaseCapital,
		LifetimeStart: s.calendar.LifetimeStart,
	}
	known := make(map[uuid.UUID]struct{}, len(users))
	for _, u := range users {
		known[u.ID] = struct{}{}
		in.Users = append(in.Users, analytics.User{ID: u.ID.String(), Name: u.Name, Email: u.Email})
	}
	for _, r := range records {
		if _, ok := known[r.UserID]; !ok {
			continue
		}
		in.Records = append(in.Records, ToAnalyticsRecord(r))
	}
	return in
}

// ToAnalyticsRecord maps a stored record onto the aggregator's input shape
func ToAnalyticsRecord(r models.TradeRecord) analytics.TradeRecord {
	return analytics.TradeRecord{
		UserID:       r.UserID.String(),
		AccountID:    r.AccountID.String(),
		TradeDate:    analytics.DateOf(r.TradeDate),
		NetPnL:       r.NetPnL,
		SharesTraded: r.SharesTraded,
		IsHoliday:    r.IsHoliday,
	}
}
