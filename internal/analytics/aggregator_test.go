package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesday is 2025-01-15 noon in New York.
var wednesday = time.Date(2025, time.January, 15, 12, 0, 0, 0, DefaultLocation())

func d(year int, month time.Month, day int) Date { return NewDate(year, month, day) }

func rec(user string, date Date, pnl int64) TradeRecord {
	return TradeRecord{UserID: user, AccountID: user + "-acct", TradeDate: date, NetPnL: decimal.NewFromInt(pnl), SharesTraded: 100}
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(got), "expected %s, got %s", expected, got.String())
}

func customInput(records []TradeRecord, users []User, from, to Date) Input {
	return Input{
		Records: records,
		Users:   users,
		Filter:  FilterCustom,
		Custom:  &Range{From: from, To: to},
		Now:     wednesday,
	}
}

func TestTwoUsersOppositeDays(t *testing.T) {
	day := d(2025, time.January, 2)
	users := []User{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}
	records := []TradeRecord{rec("a", day, 100), rec("b", day, -50)}

	res := Aggregate(customInput(records, users, day, day))

	assertDecimal(t, "50", res.Company.TotalPnL)
	require.Len(t, res.Employees, 2)

	a := res.Employees[0]
	assert.Equal(t, "a", a.UserID)
	assertDecimal(t, "100", a.TotalPnL)
	assert.Equal(t, 1, a.WinningDays)
	assert.Equal(t, 0, a.LosingDays)
	assert.Equal(t, 100.0, a.WinRate)
	assert.Equal(t, StatusActive, a.Status)

	b := res.Employees[1]
	assert.Equal(t, "b", b.UserID)
	assertDecimal(t, "-50", b.TotalPnL)
	assert.Equal(t, 0, b.WinningDays)
	assert.Equal(t, 1, b.LosingDays)
	assert.Equal(t, 0.0, b.WinRate)

	assert.Equal(t, 2, res.Company.TotalActiveEmployees)
	assertDecimal(t, "50", res.Company.TotalRealizedProfit)
	assertDecimal(t, "0", res.Company.TotalRealizedLoss)
}

func TestConsecutiveStreaks(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 2), 10),
		rec("a", d(2025, time.January, 3), 20),
		rec("a", d(2025, time.January, 6), 5),
		rec("a", d(2025, time.January, 7), -3),
		rec("a", d(2025, time.January, 8), -4),
	}
	res := Aggregate(customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), d(2025, time.January, 31)))

	e := res.Employees[0]
	assert.Equal(t, 3, e.MaxConsecutiveWins)
	assert.Equal(t, 2, e.MaxConsecutiveLosses)
	assert.Equal(t, 5, e.TradingDays)
	assertDecimal(t, "20", e.MaxProfit)
	assertDecimal(t, "-4", e.MaxLoss)
	assertDecimal(t, "5.6", e.AvgDailyPnL)
}

func TestZeroDayResetsBothStreaks(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 2), 10),
		rec("a", d(2025, time.January, 3), 10),
		rec("a", d(2025, time.January, 6), 0),
		rec("a", d(2025, time.January, 7), 10),
		rec("a", d(2025, time.January, 8), -1),
		rec("a", d(2025, time.January, 9), 0),
		rec("a", d(2025, time.January, 10), -1),
	}
	res := Aggregate(customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), d(2025, time.January, 31)))

	e := res.Employees[0]
	assert.Equal(t, 2, e.MaxConsecutiveWins)
	assert.Equal(t, 1, e.MaxConsecutiveLosses)
	assert.Equal(t, 7, e.TradingDays)
	assert.Equal(t, 3, e.WinningDays)
	assert.Equal(t, 2, e.LosingDays)
	assert.Less(t, e.WinningDays+e.LosingDays, e.TradingDays)
}

func TestInactiveUserHasZeroStats(t *testing.T) {
	records := []TradeRecord{rec("a", d(2025, time.January, 2), 10)}
	users := []User{{ID: "a"}, {ID: "idle", Name: "Idle"}}

	res := Aggregate(customInput(records, users, d(2025, time.January, 1), d(2025, time.January, 31)))

	idle, ok := res.Employee("idle")
	require.True(t, ok)
	assert.Equal(t, StatusInactive, idle.Status)
	assert.Equal(t, 0.0, idle.WinRate)
	assert.Equal(t, 0, idle.TradingDays)
	assert.Equal(t, 0, idle.WinningDays)
	assert.Equal(t, 0, idle.LosingDays)
	assert.Equal(t, int64(0), idle.TotalShares)
	for _, v := range []decimal.Decimal{idle.TotalPnL, idle.TodayPnL, idle.MaxProfit, idle.MaxLoss, idle.AvgDailyPnL, idle.MaxDrawdown} {
		assert.True(t, v.IsZero())
	}
	assert.Empty(t, res.UserSeries("idle"))
	assert.NotNil(t, res.UserSeries("idle"))
}

func TestBestDayTieReturnsOneDate(t *testing.T) {
	first, second := d(2025, time.January, 2), d(2025, time.January, 3)
	records := []TradeRecord{
		rec("a", second, 100),
		rec("a", first, 100),
		rec("a", d(2025, time.January, 6), -20),
		rec("a", d(2025, time.January, 7), -20),
	}
	res := Aggregate(customInput(records, []User{{ID: "a"}}, first, d(2025, time.January, 7)))

	assertDecimal(t, "100", res.Company.BestDayPnL)
	assert.Contains(t, []Date{first, second}, res.Company.BestDayDate)
	assertDecimal(t, "-20", res.Company.WorstDayPnL)
	assert.Contains(t, []Date{d(2025, time.January, 6), d(2025, time.January, 7)}, res.Company.WorstDayDate)
}

func TestSameDayRecordsAreSummed(t *testing.T) {
	day := d(2025, time.January, 2)
	records := []TradeRecord{rec("a", day, 40), rec("a", day, 60), rec("b", day, -30)}
	res := Aggregate(customInput(records, []User{{ID: "a"}, {ID: "b"}}, day, day))

	require.Len(t, res.Series, 1)
	assertDecimal(t, "70", res.Series[0].PnL)

	series := res.UserSeries("a")
	require.Len(t, series, 1)
	assertDecimal(t, "100", series[0].PnL)
	assert.Equal(t, 1, res.Employees[0].TradingDays)
	assert.Equal(t, int64(200), res.Employees[0].TotalShares)
}

func TestEmployeeTotalsSumToCompanyTotal(t *testing.T) {
	var records []TradeRecord
	users := []User{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	pnls := []int64{120, -45, 0, 300, -80, 15, -5}
	for i, p := range pnls {
		for j, u := range users {
			records = append(records, rec(u.ID, d(2024, time.December, 20+i), p*int64(j+1)-int64(j*7)))
		}
	}

	for _, f := range []DateRangeFilter{FilterToday, FilterWeek, FilterMonth, FilterQuarter, FilterYear, FilterLifetime, FilterCustom} {
		in := Input{
			Records: records,
			Users:   users,
			Filter:  f,
			Custom:  &Range{From: d(2024, time.December, 22), To: d(2024, time.December, 24)},
			Now:     time.Date(2024, time.December, 26, 9, 0, 0, 0, DefaultLocation()),
		}
		res := Aggregate(in)

		sum := decimal.Zero
		for _, e := range res.Employees {
			sum = sum.Add(e.TotalPnL)
			assert.LessOrEqual(t, e.WinningDays+e.LosingDays, e.TradingDays)
			assert.GreaterOrEqual(t, e.WinRate, 0.0)
			assert.LessOrEqual(t, e.WinRate, 100.0)
		}
		assert.True(t, sum.Equal(res.Company.TotalPnL), "filter %s: %s != %s", f, sum, res.Company.TotalPnL)
	}
}

func TestWinLossEqualsTradingWithoutZeroDays(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 2), 1),
		rec("a", d(2025, time.January, 3), -1),
		rec("a", d(2025, time.January, 6), 2),
	}
	res := Aggregate(customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), d(2025, time.January, 31)))

	e := res.Employees[0]
	assert.Equal(t, e.TradingDays, e.WinningDays+e.LosingDays)
	assert.InDelta(t, 66.6666, e.WinRate, 0.001)
}

func TestDrawdownSeries(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 2), 100),
		rec("a", d(2025, time.January, 3), -50),
		rec("a", d(2025, time.January, 6), 20),
		rec("a", d(2025, time.January, 7), -100),
		rec("a", d(2025, time.January, 8), 200),
	}
	in := customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), d(2025, time.January, 31))
	in.BaseCapital = decimal.NewFromInt(1000)
	res := Aggregate(in)

	require.Len(t, res.Series, 5)
	wantCum := []string{"100", "50", "70", "-30", "170"}
	wantDD := []string{"0", "50", "30", "130", "0"}
	for i, p := range res.Series {
		assertDecimal(t, wantCum[i], p.CumulativePnL)
		assertDecimal(t, wantDD[i], p.Drawdown)
		assert.True(t, p.Equity.Equal(in.BaseCapital.Add(p.CumulativePnL)))
		if i > 0 {
			assert.True(t, p.Peak.GreaterThanOrEqual(res.Series[i-1].Peak), "peak must not decrease")
			assert.True(t, res.Series[i-1].Date.Before(p.Date))
		}
	}
	assertDecimal(t, "130", res.Company.MaxDrawdown)
	assertDecimal(t, "130", res.Employees[0].MaxDrawdown)
	// 130 below an equity peak of 1100.
	assert.InDelta(t, 11.8182, res.Series[3].DrawdownPct, 0.0001)
}

func TestLosingFirstDayDrawsDownFromBaseCapital(t *testing.T) {
	records := []TradeRecord{rec("a", d(2025, time.January, 2), -40)}
	res := Aggregate(customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), d(2025, time.January, 31)))

	assertDecimal(t, "0", res.Series[0].Peak)
	assertDecimal(t, "40", res.Company.MaxDrawdown)
}

func TestHolidayRecordsAreIgnored(t *testing.T) {
	day := d(2025, time.January, 2)
	holiday := rec("a", d(2025, time.January, 1), 0)
	holiday.IsHoliday = true
	records := []TradeRecord{holiday, rec("a", day, 10)}

	res := Aggregate(customInput(records, []User{{ID: "a"}}, d(2025, time.January, 1), day))

	assert.Equal(t, 1, res.Employees[0].TradingDays)
	assert.Len(t, res.Series, 1)
	assert.Equal(t, int64(100), res.Company.TotalShares)
}

func TestFixedWindowsIgnoreFilter(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 15), 10), // today
		rec("a", d(2025, time.January, 13), 20), // this week
		rec("a", d(2025, time.January, 3), 40),  // this month
		rec("b", d(2024, time.December, 31), 80),
	}
	in := Input{Records: records, Users: []User{{ID: "a"}, {ID: "b"}}, Filter: FilterToday, Now: wednesday}
	res := Aggregate(in)

	assertDecimal(t, "10", res.Company.TotalPnL)
	assertDecimal(t, "10", res.Company.TodayPnL)
	assertDecimal(t, "30", res.Company.WeekPnL)
	assertDecimal(t, "70", res.Company.MonthPnL)
	assertDecimal(t, "10", res.Employees[0].TodayPnL)
	assert.Equal(t, 1, res.Company.TotalActiveEmployees)
	assert.Equal(t, StatusInactive, res.Employees[1].Status)
}

func TestTodayUsesEasternCalendar(t *testing.T) {
	// 03:00 UTC on the 16th is still the evening of the 15th in New York.
	now := time.Date(2025, time.January, 16, 3, 0, 0, 0, time.UTC)
	records := []TradeRecord{rec("a", d(2025, time.January, 15), 25)}
	res := Aggregate(Input{Records: records, Users: []User{{ID: "a"}}, Filter: FilterToday, Now: now})

	assert.Equal(t, d(2025, time.January, 15), res.Today)
	assertDecimal(t, "25", res.Company.TodayPnL)
}

func TestMonthlyBreakdown(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2024, time.December, 30), 10),
		rec("a", d(2024, time.December, 31), 5),
		rec("a", d(2025, time.January, 2), -7),
	}
	res := Aggregate(Input{Records: records, Users: []User{{ID: "a"}}, Filter: FilterLifetime, Now: wednesday})

	require.Len(t, res.Monthly, 2)
	assert.Equal(t, "2024-12", res.Monthly[0].Period)
	assertDecimal(t, "15", res.Monthly[0].PnL)
	assert.Equal(t, 2, res.Monthly[0].TradingDays)
	assert.Equal(t, "2025-01", res.Monthly[1].Period)
	assertDecimal(t, "-7", res.Monthly[1].PnL)
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []TradeRecord{
		rec("a", d(2025, time.January, 2), 10),
		rec("b", d(2025, time.January, 2), -3),
		rec("a", d(2025, time.January, 3), 7),
		rec("c", d(2025, time.January, 6), 0),
	}
	users := []User{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	in := Input{Records: records, Users: users, Filter: FilterMonth, Now: wednesday}

	first, second := Aggregate(in), Aggregate(in)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	for _, u := range users {
		assert.Equal(t, len(first.UserSeries(u.ID)), len(second.UserSeries(u.ID)))
	}
}

func TestEmptyInput(t *testing.T) {
	res := Aggregate(Input{Filter: FilterLifetime, Now: wednesday})

	assert.Empty(t, res.Series)
	assert.Empty(t, res.Employees)
	assert.True(t, res.Company.TotalPnL.IsZero())
	assert.Equal(t, 0.0, res.Company.WinRate)
	assert.True(t, res.Company.BestDayDate.IsZero())
}
