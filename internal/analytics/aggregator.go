package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregate computes company stats, per-employee stats and the daily series for
// the range selected by in.Filter. It performs no I/O and never fails.
func Aggregate(in Input) *Result {
	loc := in.Location
	if loc == nil {
		loc = DefaultLocation()
	}
	base := in.BaseCapital
	if base.IsZero() {
		base = DefaultBaseCapital()
	}

	today := DateIn(in.Now, loc)
	scope := Resolve(in.Filter, in.Custom, today, in.LifetimeStart)
	week := WeekOf(today)
	month := MonthOf(today)

	companyDaily := make(map[Date]decimal.Decimal)
	userDaily := make(map[string]map[Date]decimal.Decimal)
	userToday := make(map[string]decimal.Decimal)
	userShares := make(map[string]int64)

	company := CompanyStats{}
	var totalShares int64

	for _, rec := range in.Records {
		if rec.IsHoliday {
			continue
		}
		d := rec.TradeDate

		if d == today {
			company.TodayPnL = company.TodayPnL.Add(rec.NetPnL)
			userToday[rec.UserID] = userToday[rec.UserID].Add(rec.NetPnL)
		}
		if week.Contains(d) {
			company.WeekPnL = company.WeekPnL.Add(rec.NetPnL)
		}
		if month.Contains(d) {
			company.MonthPnL = company.MonthPnL.Add(rec.NetPnL)
		}

		if !scope.Contains(d) {
			continue
		}
		companyDaily[d] = companyDaily[d].Add(rec.NetPnL)

		days, ok := userDaily[rec.UserID]
		if !ok {
			days = make(map[Date]decimal.Decimal)
			userDaily[rec.UserID] = days
		}
		days[d] = days[d].Add(rec.NetPnL)

		userShares[rec.UserID] += rec.SharesTraded
		totalShares += rec.SharesTraded
	}

	series, maxDD := buildSeries(companyDaily, base)
	cs := summarize(series)

	company.TotalPnL = cs.total
	company.TotalRealizedProfit = cs.profit
	company.TotalRealizedLoss = cs.loss
	company.BestDayPnL = cs.best
	company.BestDayDate = cs.bestDate
	company.WorstDayPnL = cs.worst
	company.WorstDayDate = cs.worstDate
	company.TotalActiveEmployees = len(userDaily)
	company.MaxDrawdown = maxDD
	company.TradingDays = cs.trading
	company.WinningDays = cs.winning
	company.LosingDays = cs.losing
	company.WinRate = winRate(cs.winning, cs.trading)
	company.TotalShares = totalShares

	result := &Result{
		Range:      scope,
		Today:      today,
		Company:    company,
		Employees:  make([]EmployeeStats, 0, len(in.Users)),
		Series:     series,
		Monthly:    monthly(series),
		userSeries: make(map[string][]DailyPnL, len(userDaily)),
	}

	for id, days := range userDaily {
		s, _ := buildSeries(days, base)
		result.userSeries[id] = s
	}

	for _, u := range in.Users {
		s := result.userSeries[u.ID]
		dd := maxDrawdown(s)
		st := summarize(s)

		es := EmployeeStats{
			UserID:               u.ID,
			Name:                 u.Name,
			Email:                u.Email,
			TotalPnL:             st.total,
			TodayPnL:             userToday[u.ID],
			MaxProfit:            st.best,
			MaxLoss:              st.worst,
			WinRate:              winRate(st.winning, st.trading),
			TradingDays:          st.trading,
			WinningDays:          st.winning,
			LosingDays:           st.losing,
			MaxConsecutiveWins:   st.maxWinStreak,
			MaxConsecutiveLosses: st.maxLossStreak,
			MaxDrawdown:          dd,
			TotalShares:          userShares[u.ID],
			Status:               StatusInactive,
		}
		if st.trading > 0 {
			es.AvgDailyPnL = st.total.Div(decimal.NewFromInt(int64(st.trading))).Round(2)
			es.Status = StatusActive
		}
		result.Employees = append(result.Employees, es)
	}

	return result
}

// buildSeries sorts the per-date sums and derives cumulative, equity and drawdown.
// The running peak starts at zero and moves only when strictly exceeded.
func buildSeries(daily map[Date]decimal.Decimal, base decimal.Decimal) ([]DailyPnL, decimal.Decimal) {
	dates := make([]Date, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	hundred := decimal.NewFromInt(100)
	series := make([]DailyPnL, 0, len(dates))
	cumulative := decimal.Zero
	peak := decimal.Zero
	maxDD := decimal.Zero

	for _, d := range dates {
		pnl := daily[d]
		cumulative = cumulative.Add(pnl)
		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		drawdown := peak.Sub(cumulative)
		if drawdown.GreaterThan(maxDD) {
			maxDD = drawdown
		}

		point := DailyPnL{
			Date:          d,
			PnL:           pnl,
			CumulativePnL: cumulative,
			Equity:        base.Add(cumulative),
			Peak:          peak,
			Drawdown:      drawdown,
		}
		if peakEquity := base.Add(peak); peakEquity.IsPositive() {
			point.DrawdownPct = drawdown.Div(peakEquity).Mul(hundred).Round(4).InexactFloat64()
		}
		series = append(series, point)
	}
	return series, maxDD
}

// maxDrawdown returns the deepest drawdown of a built series.
func maxDrawdown(series []DailyPnL) decimal.Decimal {
	maxDD := decimal.Zero
	for _, p := range series {
		if p.Drawdown.GreaterThan(maxDD) {
			maxDD = p.Drawdown
		}
	}
	return maxDD
}

type dayStats struct {
	total, profit, loss decimal.Decimal
	best, worst         decimal.Decimal
	bestDate, worstDate Date

	trading, winning, losing    int
	maxWinStreak, maxLossStreak int
}

// summarize walks a date-sorted series once. Ties on best/worst keep the earliest date.
func summarize(series []DailyPnL) dayStats {
	var st dayStats
	if len(series) == 0 {
		return st
	}
	st.best, st.bestDate = series[0].PnL, series[0].Date
	st.worst, st.worstDate = series[0].PnL, series[0].Date

	winStreak, lossStreak := 0, 0
	for _, p := range series {
		st.trading++
		st.total = st.total.Add(p.PnL)

		switch p.PnL.Sign() {
		case 1:
			st.winning++
			st.profit = st.profit.Add(p.PnL)
			winStreak++
			lossStreak = 0
		case -1:
			st.losing++
			st.loss = st.loss.Add(p.PnL.Abs())
			lossStreak++
			winStreak = 0
		default:
			winStreak, lossStreak = 0, 0
		}
		if winStreak > st.maxWinStreak {
			st.maxWinStreak = winStreak
		}
		if lossStreak > st.maxLossStreak {
			st.maxLossStreak = lossStreak
		}

		if p.PnL.GreaterThan(st.best) {
			st.best, st.bestDate = p.PnL, p.Date
		}
		if p.PnL.LessThan(st.worst) {
			st.worst, st.worstDate = p.PnL, p.Date
		}
	}
	return st
}

func monthly(series []DailyPnL) []PeriodPnL {
	out := []PeriodPnL{}
	for _, p := range series {
		key := p.Date.MonthKey()
		if n := len(out); n > 0 && out[n-1].Period == key {
			out[n-1].PnL = out[n-1].PnL.Add(p.PnL)
			out[n-1].TradingDays++
			continue
		}
		out = append(out, PeriodPnL{Period: key, PnL: p.PnL, TradingDays: 1})
	}
	return out
}

// winRate is winning/trading as a percentage, 0 when there were no trading days.
func winRate(winning, trading int) float64 {
	if trading == 0 {
		return 0
	}
	return float64(winning) / float64(trading) * 100
}
