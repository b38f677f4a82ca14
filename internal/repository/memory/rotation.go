package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
)

type groupShiftRepositoryImpl struct {
	s *Store
}

func NewGroupShiftRepository(s *Store) rotation.GroupShiftRepository {
	return &groupShiftRepositoryImpl{s: s}
}

func (r *groupShiftRepositoryImpl) Create(ctx context.Context, g rotation.GroupShift) (rotation.GroupShift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.groups {
		if existing.CompanyID == g.CompanyID && existing.DeletedAt == nil && strings.EqualFold(existing.Code, g.Code) {
			return rotation.GroupShift{}, rotation.ErrGroupCodeExists
		}
	}
	g.ID = newID()
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.groups[g.ID] = g
	return g, nil
}

func (r *groupShiftRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (rotation.GroupShift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.groups[id]
	if !ok || g.CompanyID != companyID || g.DeletedAt != nil {
		return rotation.GroupShift{}, rotation.ErrGroupNotFound
	}
	return g, nil
}

func (r *groupShiftRepositoryImpl) List(ctx context.Context, companyID string, filter rotation.GroupShiftFilter) ([]rotation.GroupShift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []rotation.GroupShift
	for _, g := range r.s.groups {
		if g.CompanyID != companyID || g.DeletedAt != nil || (filter.ActiveOnly && !g.Active) {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *groupShiftRepositoryImpl) Update(ctx context.Context, g rotation.GroupShift) (rotation.GroupShift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.groups[g.ID]
	if !ok || old.CompanyID != g.CompanyID || old.DeletedAt != nil {
		return rotation.GroupShift{}, rotation.ErrGroupNotFound
	}
	g.Code = old.Code
	g.CreatedAt = old.CreatedAt
	g.UpdatedAt = r.s.now()
	r.s.groups[g.ID] = g
	return g, nil
}

func (r *groupShiftRepositoryImpl) SoftDelete(ctx context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.groups[id]
	if !ok || g.CompanyID != companyID || g.DeletedAt != nil {
		return rotation.ErrGroupNotFound
	}
	now := r.s.now()
	g.DeletedAt = &now
	g.Active = false
	g.PatternID, g.PatternReferenceDate = nil, nil
	r.s.groups[id] = g
	return nil
}

func (r *groupShiftRepositoryImpl) ListWithPattern(ctx context.Context) ([]rotation.GroupShift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []rotation.GroupShift
	for _, g := range r.s.groups {
		if g.DeletedAt == nil && g.Active && g.HasPattern() {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyID != out[j].CompanyID {
			return out[i].CompanyID < out[j].CompanyID
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

type matrixRepositoryImpl struct {
	s *Store
}

func NewMatrixRepository(s *Store) rotation.MatrixRepository {
	return &matrixRepositoryImpl{s: s}
}

func (r *matrixRepositoryImpl) Get(ctx context.Context, companyID, groupID string, period rotation.Period) (rotation.MonthlyMatrix, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.matrices[matrixKey{companyID, groupID, period}]
	if !ok {
		return rotation.MonthlyMatrix{}, rotation.ErrMatrixNotFound
	}
	return m, nil
}

func (r *matrixRepositoryImpl) Exists(ctx context.Context, companyID, groupID string, period rotation.Period) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.matrices[matrixKey{companyID, groupID, period}]
	return ok, nil
}

func (r *matrixRepositoryImpl) Save(ctx context.Context, m rotation.MonthlyMatrix, expectedVersion *int) (rotation.MonthlyMatrix, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := matrixKey{m.CompanyID, m.GroupShiftID, m.Period}
	now := r.s.now()
	m.PatternID = copyStr(m.PatternID)

	old, exists := r.s.matrices[key]
	if !exists {
		m.ID = newID()
		m.Version = 1
		m.CreatedAt = now
		m.UpdatedAt = now
		r.s.matrices[key] = m
		return m, nil
	}
	if expectedVersion != nil && old.Version != *expectedVersion {
		return rotation.MonthlyMatrix{}, rotation.ErrMatrixVersionConflict
	}
	m.ID = old.ID
	m.Version = old.Version + 1
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = now
	r.s.matrices[key] = m
	return m, nil
}

// SetClock overrides the store clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
