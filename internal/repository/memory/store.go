// Package memory keeps every repository in process memory. It backs
// STORAGE_TYPE=memory and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/google/uuid"
)

type shiftTypeKey struct {
	companyID string
	code      string
}

type matrixKey struct {
	companyID string
	groupID   string
	period    rotation.Period
}

type dayKey struct {
	employeeID string
	date       string
}

// Store is shared by the repositories of one process.
type Store struct {
	mu sync.RWMutex

	shiftTypes map[shiftTypeKey]shift.ShiftType
	patterns   map[string]shift.ShiftPattern
	groups     map[string]rotation.GroupShift
	matrices   map[matrixKey]rotation.MonthlyMatrix
	employees  map[string]employee.Employee
	days       map[dayKey]attendance.ScheduleDay

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		shiftTypes: make(map[shiftTypeKey]shift.ShiftType),
		patterns:   make(map[string]shift.ShiftPattern),
		groups:     make(map[string]rotation.GroupShift),
		matrices:   make(map[matrixKey]rotation.MonthlyMatrix),
		employees:  make(map[string]employee.Employee),
		days:       make(map[dayKey]attendance.ScheduleDay),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// PutEmployee inserts or replaces a roster entry. The roster is owned by the
// employee module, so there is no service-level create.
func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.UpdatedAt = s.now()
	s.employees[e.ID] = e
}

// PutScheduleDay stores a full row, actual fields included, the way
// attendance capture would.
func (s *Store) PutScheduleDay(d attendance.ScheduleDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Date = dateOnly(d.Date)
	s.days[dayKey{d.EmployeeID, d.Date.Format(time.DateOnly)}] = d
}

// ScheduleDay returns a copy of the stored row.
func (s *Store) ScheduleDay(employeeID string, date time.Time) (attendance.ScheduleDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.days[dayKey{employeeID, dateOnly(date).Format(time.DateOnly)}]
	return d, ok
}

type transactor struct{}

// NewTransactor returns a Transactor that runs fn directly. Each repository
// call is atomic on its own under the store lock.
func NewTransactor() database.Transactor {
	return transactor{}
}

func (transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func copyTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
