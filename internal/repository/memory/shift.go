package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
)

type shiftTypeRepositoryImpl struct {
	s *Store
}

func NewShiftTypeRepository(s *Store) shift.ShiftTypeRepository {
	return &shiftTypeRepositoryImpl{s: s}
}

func (r *shiftTypeRepositoryImpl) Create(ctx context.Context, t shift.ShiftType) (shift.ShiftType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := shiftTypeKey{t.CompanyID, t.Code}
	if _, ok := r.s.shiftTypes[key]; ok {
		return shift.ShiftType{}, shift.ErrShiftTypeCodeExists
	}
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.shiftTypes[key] = t
	return t, nil
}

func (r *shiftTypeRepositoryImpl) GetByCode(ctx context.Context, companyID, code string) (shift.ShiftType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.shiftTypes[shiftTypeKey{companyID, code}]
	if !ok {
		return shift.ShiftType{}, shift.ErrShiftTypeNotFound
	}
	return t, nil
}

func (r *shiftTypeRepositoryImpl) GetByCodes(ctx context.Context, companyID string, codes []string) (map[string]shift.ShiftType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]shift.ShiftType, len(codes))
	for _, code := range codes {
		if t, ok := r.s.shiftTypes[shiftTypeKey{companyID, code}]; ok {
			out[code] = t
		}
	}
	return out, nil
}

func (r *shiftTypeRepositoryImpl) List(ctx context.Context, companyID string, activeOnly bool) ([]shift.ShiftType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []shift.ShiftType
	for k, t := range r.s.shiftTypes {
		if k.companyID != companyID || (activeOnly && !t.Active) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *shiftTypeRepositoryImpl) Update(ctx context.Context, t shift.ShiftType) (shift.ShiftType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := shiftTypeKey{t.CompanyID, t.Code}
	old, ok := r.s.shiftTypes[key]
	if !ok {
		return shift.ShiftType{}, shift.ErrShiftTypeNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.shiftTypes[key] = t
	return t, nil
}

// Delete refuses referenced codes under the store lock.
func (r *shiftTypeRepositoryImpl) Delete(ctx context.Context, companyID, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := shiftTypeKey{companyID, code}
	if _, ok := r.s.shiftTypes[key]; !ok {
		return shift.ErrShiftTypeNotFound
	}
	if r.s.shiftTypeReferenced(companyID, code) {
		return shift.ErrShiftTypeInUse
	}
	delete(r.s.shiftTypes, key)
	return nil
}

func (r *shiftTypeRepositoryImpl) IsReferenced(ctx context.Context, companyID, code string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.shiftTypeReferenced(companyID, code), nil
}

func (r *shiftTypeRepositoryImpl) LockByCode(ctx context.Context, companyID, code string) (shift.ShiftType, error) {
	return r.GetByCode(ctx, companyID, code)
}

func (r *shiftTypeRepositoryImpl) LockByCodes(ctx context.Context, companyID string, codes []string) (map[string]shift.ShiftType, error) {
	return r.GetByCodes(ctx, companyID, codes)
}

// shiftTypeReferenced expects s.mu to be held.
func (s *Store) shiftTypeReferenced(companyID, code string) bool {
	for _, p := range s.patterns {
		if p.CompanyID != companyID {
			continue
		}
		for _, tok := range p.Tokens {
			if tok == code {
				return true
			}
		}
	}
	for k, m := range s.matrices {
		if k.companyID != companyID {
			continue
		}
		for _, v := range m.Slots {
			if v == code {
				return true
			}
		}
	}
	return false
}

type shiftPatternRepositoryImpl struct {
	s *Store
}

func NewShiftPatternRepository(s *Store) shift.ShiftPatternRepository {
	return &shiftPatternRepositoryImpl{s: s}
}

func (r *shiftPatternRepositoryImpl) Create(ctx context.Context, p shift.ShiftPattern) (shift.ShiftPattern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = newID()
	p.Tokens = copyTokens(p.Tokens)
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.patterns[p.ID] = p
	return p, nil
}

func (r *shiftPatternRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (shift.ShiftPattern, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.patterns[id]
	if !ok || p.CompanyID != companyID {
		return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
	}
	p.Tokens = copyTokens(p.Tokens)
	return p, nil
}

func (r *shiftPatternRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.ShiftPattern, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []shift.ShiftPattern
	for _, p := range r.s.patterns {
		if p.CompanyID == companyID {
			p.Tokens = copyTokens(p.Tokens)
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *shiftPatternRepositoryImpl) Update(ctx context.Context, p shift.ShiftPattern) (shift.ShiftPattern, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.patterns[p.ID]
	if !ok || old.CompanyID != p.CompanyID {
		return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
	}
	p.Tokens = copyTokens(p.Tokens)
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.patterns[p.ID] = p
	return p, nil
}

func (r *shiftPatternRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.patterns[id]
	if !ok || p.CompanyID != companyID {
		return shift.ErrShiftPatternNotFound
	}
	delete(r.s.patterns, id)
	return nil
}

func (r *shiftPatternRepositoryImpl) IsBound(ctx context.Context, id, companyID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.groups {
		if g.CompanyID == companyID && g.DeletedAt == nil && g.PatternID != nil && *g.PatternID == id {
			return true, nil
		}
	}
	return false, nil
}
