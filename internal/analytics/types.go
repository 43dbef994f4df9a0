package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee status values.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// TradeRecord is one employee's net result on one account for one trading day.
type TradeRecord struct {
	UserID       string
	AccountID    string
	TradeDate    Date
	NetPnL       decimal.Decimal
	SharesTraded int64
	IsHoliday    bool
}

// User identifies an employee the stats are reported for.
type User struct {
	ID    string
	Name  string
	Email string
}

// Input is everything an aggregation depends on. Now and Location fix "today".
type Input struct {
	Records []TradeRecord
	Users   []User
	Filter  DateRangeFilter
	Custom  *Range

	Now      time.Time
	Location *time.Location

	// BaseCapital seeds the equity curve; zero means DefaultBaseCapital.
	BaseCapital decimal.Decimal
	// LifetimeStart bounds the lifetime filter; zero means DefaultLifetimeStart.
	LifetimeStart Date
}

// DefaultBaseCapital is the starting equity used when Input.BaseCapital is zero.
func DefaultBaseCapital() decimal.Decimal { return decimal.NewFromInt(100000) }

// DailyPnL is one point of a P&L, equity and drawdown curve.
type DailyPnL struct {
	Date          Date            `json:"date"`
	PnL           decimal.Decimal `json:"pnl"`
	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
	Equity        decimal.Decimal `json:"equity"`
	Peak          decimal.Decimal `json:"peak"`
	Drawdown      decimal.Decimal `json:"drawdown"`
	DrawdownPct   float64         `json:"drawdown_pct"`
}

// PeriodPnL is net P&L summed over a calendar month.
type PeriodPnL struct {
	Period      string          `json:"period"`
	PnL         decimal.Decimal `json:"pnl"`
	TradingDays int             `json:"trading_days"`
}

// EmployeeStats summarizes one user's trading days inside the resolved range.
type EmployeeStats struct {
	UserID               string          `json:"user_id"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	TotalPnL             decimal.Decimal `json:"total_pnl"`
	TodayPnL             decimal.Decimal `json:"today_pnl"`
	MaxProfit            decimal.Decimal `json:"max_profit"`
	MaxLoss              decimal.Decimal `json:"max_loss"`
	WinRate              float64         `json:"win_rate"`
	AvgDailyPnL          decimal.Decimal `json:"avg_daily_pnl"`
	TradingDays          int             `json:"trading_days"`
	WinningDays          int             `json:"winning_days"`
	LosingDays           int             `json:"losing_days"`
	MaxConsecutiveWins   int             `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int             `json:"max_consecutive_losses"`
	MaxDrawdown          decimal.Decimal `json:"max_drawdown"`
	TotalShares          int64           `json:"total_shares"`
	Status               string          `json:"status"`
}

// CompanyStats summarizes every employee together.
type CompanyStats struct {
	TotalPnL             decimal.Decimal `json:"total_pnl"`
	TodayPnL             decimal.Decimal `json:"today_pnl"`
	WeekPnL              decimal.Decimal `json:"week_pnl"`
	MonthPnL             decimal.Decimal `json:"month_pnl"`
	TotalRealizedProfit  decimal.Decimal `json:"total_realized_profit"`
	TotalRealizedLoss    decimal.Decimal `json:"total_realized_loss"`
	BestDayPnL           decimal.Decimal `json:"best_day_pnl"`
	BestDayDate          Date            `json:"best_day_date"`
	WorstDayPnL          decimal.Decimal `json:"worst_day_pnl"`
	WorstDayDate         Date            `json:"worst_day_date"`
	TotalActiveEmployees int             `json:"total_active_employees"`
	MaxDrawdown          decimal.Decimal `json:"max_drawdown"`
	TradingDays          int             `json:"trading_days"`
	WinningDays          int             `json:"winning_days"`
	LosingDays           int             `json:"losing_days"`
	WinRate              float64         `json:"win_rate"`
	TotalShares          int64           `json:"total_shares"`
}

// Result is the output of one aggregation pass.
type Result struct {
	Range     Range           `json:"range"`
	Today     Date            `json:"today"`
	Company   CompanyStats    `json:"company"`
	Employees []EmployeeStats `json:"employees"`
	Series    []DailyPnL      `json:"series"`
	Monthly   []PeriodPnL     `json:"monthly"`

	userSeries map[string][]DailyPnL
}

// UserSeries returns the date-sorted daily series of one user within the range.
// Unknown users get an empty, non-nil series.
func (r *Result) UserSeries(userID string) []DailyPnL {
	series, ok := r.userSeries[userID]
	if !ok {
		return []DailyPnL{}
	}
	out := make([]DailyPnL, len(series))
	copy(out, series)
	return out
}

// Employee returns the stats of one user, if the user was part of the input.
func (r *Result) Employee(userID string) (EmployeeStats, bool) {
	for _, e := range r.Employees {
		if e.UserID == userID {
			return e, true
		}
	}
	return EmployeeStats{}, false
}
