package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/models"
)

func perfFixture() (*PerformanceService, *models.User, *models.User) {
	alice := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: models.RoleEmployee}
	bob := &models.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Role: models.RoleEmployee}
	carol := &models.User{ID: uuid.New(), Name: "Carol", Email: "carol@example.com", Role: models.RoleEmployee}

	records := &memRecords{}
	add := func(u *models.User, d time.Time, pnl int64) {
		_ = records.Create(&models.TradeRecord{UserID: u.ID, AccountID: uuid.New(), TradeDate: d, NetPnL: decimal.NewFromInt(pnl), SharesTraded: 10})
	}
	add(alice, day(2025, time.January, 2), 100)
	add(bob, day(2025, time.January, 2), -50)
	add(alice, day(2025, time.January, 15), 40)
	add(alice, day(2024, time.December, 31), 1000)

	cal := fixedCalendar(2025, time.January, 15, 12, 0)
	return NewPerformanceService(newMemUsers(alice, bob, carol), records, cal), alice, carol
}

func TestCompanyReportMonth(t *testing.T) {
	svc, _, _ := perfFixture()

	report, err := svc.CompanyReport(RangeQuery{Range: "month"})
	require.NoError(t, err)

	assert.Equal(t, analytics.FilterMonth, report.Filter)
	assert.Equal(t, "90", report.Company.TotalPnL.String())
	assert.Equal(t, "40", report.Company.TodayPnL.String())
	assert.Equal(t, "90", report.Company.MonthPnL.String())
	assert.Equal(t, 2, report.Company.TotalActiveEmployees)
	assert.Equal(t, "$90.00", report.Formatted.TotalPnL)
	assert.Equal(t, "$90.00", report.Formatted.MonthPnL)

	require.Len(t, report.Employees, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{report.Employees[0].Name, report.Employees[1].Name, report.Employees[2].Name})
	assert.Equal(t, analytics.StatusInactive, report.Employees[2].Status)

	sum := decimal.Zero
	for _, e := range report.Employees {
		sum = sum.Add(e.TotalPnL)
	}
	assert.True(t, sum.Equal(report.Company.TotalPnL))
}

func TestCompanyReportLifetimeIncludesPriorYear(t *testing.T) {
	svc, _, _ := perfFixture()

	report, err := svc.CompanyReport(RangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, analytics.FilterLifetime, report.Filter)
	assert.Equal(t, "1090", report.Company.TotalPnL.String())
	assert.Equal(t, analytics.NewDate(2024, time.December, 31), report.Company.BestDayDate)
}

func TestCompanyReportInvalidRange(t *testing.T) {
	svc, _, _ := perfFixture()

	_, err := svc.CompanyReport(RangeQuery{Range: "decade"})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.CompanyReport(RangeQuery{Range: "custom", Start: "2025-01-01", End: "bad"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEmployeeReport(t *testing.T) {
	svc, alice, carol := perfFixture()

	report, err := svc.EmployeeReport(alice.ID, RangeQuery{Range: "custom", Start: "2025-01-01", End: "2025-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "140", report.Stats.TotalPnL.String())
	assert.Equal(t, 2, report.Stats.WinningDays)
	require.Len(t, report.Series, 2)
	assert.Equal(t, "140", report.Series[1].CumulativePnL.String())
	assert.Equal(t, "$140.00", report.Formatted.TotalPnL)

	empty, err := svc.EmployeeReport(carol.ID, RangeQuery{Range: "year"})
	require.NoError(t, err)
	assert.Equal(t, analytics.StatusInactive, empty.Stats.Status)
	assert.NotNil(t, empty.Series)
	assert.Empty(t, empty.Series)
}

func TestCompanyReportIgnoresDeletedUsers(t *testing.T) {
	svc, alice, _ := perfFixture()

	before, err := svc.CompanyReport(RangeQuery{Range: "month"})
	require.NoError(t, err)
	var bobID uuid.UUID
	for _, e := range before.Employees {
		if e.Name == "Bob" {
			bobID = uuid.MustParse(e.UserID)
		}
	}
	require.NotEqual(t, uuid.Nil, bobID)
	require.NoError(t, svc.userRepo.Delete(bobID))

	report, err := svc.CompanyReport(RangeQuery{Range: "month"})
	require.NoError(t, err)
	require.Len(t, report.Employees, 2)
	assert.Equal(t, alice.ID.String(), report.Employees[0].UserID)

	sum := decimal.Zero
	for _, e := range report.Employees {
		sum = sum.Add(e.TotalPnL)
	}
	assert.Equal(t, "140", report.Company.TotalPnL.String())
	assert.True(t, sum.Equal(report.Company.TotalPnL))
	assert.Equal(t, 1, report.Company.TotalActiveEmployees)
	assert.True(t, report.Company.TotalRealizedLoss.IsZero())
}

func TestCompanyReportReadsClockOnce(t *testing.T) {
	svc, _, _ := perfFixture()
	loc := svc.calendar.Location
	calls := 0
	svc.calendar.Now = func() time.Time {
		calls++
		if calls == 1 {
			return time.Date(2025, time.January, 31, 23, 59, 59, 0, loc)
		}
		return time.Date(2025, time.February, 1, 0, 0, 1, 0, loc)
	}

	report, err := svc.CompanyReport(RangeQuery{Range: "month"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, analytics.NewDate(2025, time.January, 31), report.Today)
	assert.Equal(t, analytics.NewRange(analytics.NewDate(2025, time.January, 1), analytics.NewDate(2025, time.January, 31)), report.Range)
	assert.Equal(t, "90", report.Company.TotalPnL.String())
	assert.Equal(t, "90", report.Company.MonthPnL.String())
}
