package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradedesk-portal/internal/models"
)

func TestCheckInStatus(t *testing.T) {
	tests := []struct {
		name       string
		hour, min  int
		wantStatus models.AttendanceStatus
	}{
		{"early", 8, 45, models.AttendancePresent},
		{"on the dot", 9, 30, models.AttendancePresent},
		{"late", 9, 31, models.AttendanceLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAttendanceService(&memAttendance{}, fixedCalendar(2025, time.March, 3, tt.hour, tt.min))
			row, err := svc.CheckIn(uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, row.Status)
			assert.Equal(t, day(2025, time.March, 3), row.Date)
		})
	}
}

func TestCheckInTwice(t *testing.T) {
	svc := NewAttendanceService(&memAttendance{}, fixedCalendar(2025, time.March, 3, 9, 0))
	user := uuid.New()

	_, err := svc.CheckIn(user)
	require.NoError(t, err)
	_, err = svc.CheckIn(user)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOut(t *testing.T) {
	store := &memAttendance{}
	user := uuid.New()

	_, err := NewAttendanceService(store, fixedCalendar(2025, time.March, 3, 9, 0)).CheckIn(user)
	require.NoError(t, err)

	early := NewAttendanceService(store, fixedCalendar(2025, time.March, 3, 12, 15))
	row, err := early.CheckOut(user)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceHalfDay, row.Status)
	require.NotNil(t, row.CheckOut)

	_, err = early.CheckOut(user)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)

	_, err = early.CheckOut(uuid.New())
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCheckOutAfternoonKeepsStatus(t *testing.T) {
	store := &memAttendance{}
	user := uuid.New()

	_, err := NewAttendanceService(store, fixedCalendar(2025, time.March, 3, 9, 45)).CheckIn(user)
	require.NoError(t, err)

	row, err := NewAttendanceService(store, fixedCalendar(2025, time.March, 3, 17, 30)).CheckOut(user)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceLate, row.Status)
}

func leave(user uuid.UUID, d time.Time, kind models.LeaveKind, status models.LeaveStatus) models.LeaveRequest {
	return models.LeaveRequest{ID: uuid.New(), UserID: user, Date: d, Kind: kind, Status: status}
}

func TestComputeLeaveBalance(t *testing.T) {
	user := uuid.New()
	requests := []models.LeaveRequest{
		leave(user, day(2025, time.March, 4), models.LeaveFull, models.LeaveApproved),
		leave(user, day(2025, time.March, 10), models.LeaveHalf, models.LeavePending),
		leave(user, day(2025, time.March, 12), models.LeaveFull, models.LeaveRejected),
		leave(user, day(2025, time.February, 27), models.LeaveFull, models.LeaveApproved),
	}

	b := ComputeLeaveBalance(requests, "2025-03")
	assert.Equal(t, "1.5", b.Allowance.String())
	assert.Equal(t, "1", b.Used.String())
	assert.Equal(t, "0.5", b.Pending.String())
	assert.Equal(t, "0.5", b.Remaining.String())
}

func TestComputeLeaveBalanceNeverNegative(t *testing.T) {
	user := uuid.New()
	requests := []models.LeaveRequest{
		leave(user, day(2025, time.March, 4), models.LeaveFull, models.LeaveApproved),
		leave(user, day(2025, time.March, 5), models.LeaveFull, models.LeaveApproved),
	}
	assert.True(t, ComputeLeaveBalance(requests, "2025-03").Remaining.IsZero())
}

func TestRequestAndApproveLeave(t *testing.T) {
	store := &memAttendance{}
	svc := NewAttendanceService(store, fixedCalendar(2025, time.March, 3, 9, 0))
	user, admin := uuid.New(), uuid.New()

	full, err := svc.RequestLeave(user, &CreateLeaveRequest{Date: "2025-03-10", Kind: models.LeaveFull})
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, full.Status)

	_, err = svc.RequestLeave(user, &CreateLeaveRequest{Date: "2025-03-10", Kind: models.LeaveHalf})
	assert.ErrorIs(t, err, ErrDuplicateLeave)

	half, err := svc.RequestLeave(user, &CreateLeaveRequest{Date: "2025-03-11", Kind: models.LeaveHalf})
	require.NoError(t, err)

	_, err = svc.RequestLeave(user, &CreateLeaveRequest{Date: "2025-03-12", Kind: models.LeaveHalf})
	assert.ErrorIs(t, err, ErrInsufficientLeave)

	approved, err := svc.ApproveLeave(admin, full.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, admin, *approved.ReviewedBy)

	_, err = svc.ApproveLeave(admin, full.ID)
	assert.ErrorIs(t, err, ErrLeaveNotPending)

	_, err = svc.RejectLeave(admin, half.ID)
	require.NoError(t, err)

	balance, err := svc.LeaveBalance(user, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", balance.Month)
	assert.Equal(t, "0.5", balance.Remaining.String())
	assert.True(t, balance.Pending.IsZero())

	_, err = svc.LeaveBalance(user, "March")
	assert.ErrorIs(t, err, ErrInvalidLeaveMonth)
}

func TestListAttendanceScope(t *testing.T) {
	store := &memAttendance{}
	cal := fixedCalendar(2025, time.March, 3, 9, 0)
	svc := NewAttendanceService(store, cal)
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.CheckIn(alice)
	require.NoError(t, err)
	_, err = svc.CheckIn(bob)
	require.NoError(t, err)

	own, err := svc.ListAttendance(Actor{ID: alice, Role: models.RoleEmployee}, &ListAttendanceQuery{UserID: bob.String()})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice, own[0].UserID)

	all, err := svc.ListAttendance(Actor{ID: uuid.New(), Role: models.RoleAdmin}, &ListAttendanceQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
