package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUsers(users ...*models.User) *memUsers {
	m := &memUsers{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if strings.EqualFold(x.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) ExistsByEmail(email string) (bool, error) {
	_, err := m.GetByEmail(email)
	return err == nil, nil
}

func (m *memUsers) List() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memUsers) CountByRole(role models.Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) UpdatePassword(id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type memAccounts struct {
	accounts map[uuid.UUID]*models.TradingAccount
}

func newMemAccounts(accounts ...*models.TradingAccount) *memAccounts {
	m := &memAccounts{accounts: map[uuid.UUID]*models.TradingAccount{}}
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		m.accounts[a.ID] = a
	}
	return m
}

func (m *memAccounts) Create(a *models.TradingAccount) error {
	for _, x := range m.accounts {
		if x.AccountNumber == a.AccountNumber {
			return repository.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccounts) GetByID(id uuid.UUID) (*models.TradingAccount, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) GetByIDAndUserID(id, userID uuid.UUID) (*models.TradingAccount, error) {
	a, err := m.GetByID(id)
	if err != nil || a.UserID != userID {
		return nil, repository.ErrAccountNotFound
	}
	return a, nil
}

func (m *memAccounts) GetByUserID(userID uuid.UUID) ([]models.TradingAccount, error) {
	out := []models.TradingAccount{}
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAccounts) List() ([]models.TradingAccount, error) {
	out := []models.TradingAccount{}
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAccounts) Update(a *models.TradingAccount) error {
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memAccounts) Delete(id uuid.UUID) error {
	if _, ok := m.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

type memRecords struct {
	records []*models.TradeRecord
}

func (m *memRecords) Create(r *models.TradeRecord) error {
	for _, x := range m.records {
		if x.UserID == r.UserID && x.AccountID == r.AccountID && x.TradeDate.Equal(r.TradeDate) {
			return repository.ErrDuplicate
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *memRecords) GetByID(id uuid.UUID) (*models.TradeRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrTradeRecordNotFound
}

func (m *memRecords) Find(f repository.TradeRecordFilter) ([]models.TradeRecord, error) {
	out := []models.TradeRecord{}
	for _, r := range m.records {
		if f.UserID != uuid.Nil && r.UserID != f.UserID {
			continue
		}
		if f.AccountID != uuid.Nil && r.AccountID != f.AccountID {
			continue
		}
		if !f.From.IsZero() && r.TradeDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.TradeDate.After(f.To) {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TradeDate.Before(out[j].TradeDate) })
	return out, nil
}

func (m *memRecords) Update(r *models.TradeRecord) error {
	for i, x := range m.records {
		if x.ID == r.ID {
			cp := *r
			m.records[i] = &cp
			return nil
		}
	}
	return repository.ErrTradeRecordNotFound
}

func (m *memRecords) Delete(id uuid.UUID) error {
	for i, x := range m.records {
		if x.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrTradeRecordNotFound
}

func (m *memRecords) markHoliday(date time.Time, holiday bool) {
	for _, r := range m.records {
		if r.TradeDate.Equal(date) {
			r.IsHoliday = holiday
		}
	}
}

// memHolidays applies the holiday row and the record flags together; flagErr
// makes the flag step fail and leaves both untouched.
type memHolidays struct {
	holidays []*models.Holiday
	records  *memRecords
	flagErr  error
}

func (m *memHolidays) CreateAndFlag(h *models.Holiday) error {
	for _, x := range m.holidays {
		if x.Date.Equal(h.Date) {
			return repository.ErrDuplicate
		}
	}
	if m.flagErr != nil {
		return m.flagErr
	}
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	m.holidays = append(m.holidays, h)
	if m.records != nil {
		m.records.markHoliday(h.Date, true)
	}
	return nil
}

func (m *memHolidays) DeleteAndUnflag(id uuid.UUID) (*models.Holiday, error) {
	for i, h := range m.holidays {
		if h.ID != id {
			continue
		}
		if m.flagErr != nil {
			return nil, m.flagErr
		}
		m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
		if m.records != nil {
			m.records.markHoliday(h.Date, false)
		}
		return h, nil
	}
	return nil, repository.ErrHolidayNotFound
}

func (m *memHolidays) ExistsOn(date time.Time) (bool, error) {
	for _, h := range m.holidays {
		if h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memHolidays) ListBetween(from, to time.Time) ([]models.Holiday, error) {
	out := []models.Holiday{}
	for _, h := range m.holidays {
		if (from.IsZero() || !h.Date.Before(from)) && (to.IsZero() || !h.Date.After(to)) {
			out = append(out, *h)
		}
	}
	return out, nil
}

type memAttendance struct {
	rows   []*models.Attendance
	leaves []*models.LeaveRequest
}

func (m *memAttendance) Create(a *models.Attendance) error {
	for _, x := range m.rows {
		if x.UserID == a.UserID && x.Date.Equal(a.Date) {
			return repository.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memAttendance) GetByUserAndDate(userID uuid.UUID, date time.Time) (*models.Attendance, error) {
	for _, x := range m.rows {
		if x.UserID == userID && x.Date.Equal(date) {
			cp := *x
			return &cp, nil
		}
	}
	return nil, repository.ErrAttendanceNotFound
}

func (m *memAttendance) Update(a *models.Attendance) error {
	for i, x := range m.rows {
		if x.ID == a.ID {
			cp := *a
			m.rows[i] = &cp
		}
	}
	return nil
}

func (m *memAttendance) List(userID uuid.UUID, from, to time.Time) ([]models.Attendance, error) {
	out := []models.Attendance{}
	for _, x := range m.rows {
		if (userID == uuid.Nil || x.UserID == userID) && !x.Date.Before(from) && !x.Date.After(to) {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (m *memAttendance) CreateLeave(l *models.LeaveRequest) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	m.leaves = append(m.leaves, &cp)
	return nil
}

func (m *memAttendance) GetLeave(id uuid.UUID) (*models.LeaveRequest, error) {
	for _, l := range m.leaves {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrLeaveNotFound
}

func (m *memAttendance) UpdateLeave(l *models.LeaveRequest) error {
	for i, x := range m.leaves {
		if x.ID == l.ID {
			cp := *l
			m.leaves[i] = &cp
		}
	}
	return nil
}

func (m *memAttendance) ListLeave(userID uuid.UUID, from, to time.Time) ([]models.LeaveRequest, error) {
	out := []models.LeaveRequest{}
	for _, l := range m.leaves {
		if (userID == uuid.Nil || l.UserID == userID) && !l.Date.Before(from) && !l.Date.After(to) {
			out = append(out, *l)
		}
	}
	return out, nil
}
