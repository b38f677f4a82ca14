package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
)

type shiftServiceImpl struct {
	transactor    database.Transactor
	shiftTypeRepo shift.ShiftTypeRepository
	patternRepo   shift.ShiftPatternRepository
}

func NewShiftService(transactor database.Transactor, shiftTypeRepo shift.ShiftTypeRepository, patternRepo shift.ShiftPatternRepository) shift.ShiftService {
	return &shiftServiceImpl{
		transactor:    transactor,
		shiftTypeRepo: shiftTypeRepo,
		patternRepo:   patternRepo,
	}
}

// CreateShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) CreateShiftType(ctx context.Context, req shift.CreateShiftTypeRequest) (shift.ShiftTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	created, err := s.shiftTypeRepo.Create(ctx, shift.ShiftType{
		CompanyID:         companyID,
		Code:              req.Code,
		Name:              req.Name,
		ClockIn:           req.ClockIn,
		ClockOut:          req.ClockOut,
		IsNextDayCheckout: req.IsNextDayCheckout,
		Active:            active,
	})
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeCodeExists) {
			return shift.ShiftTypeResponse{}, err
		}
		return shift.ShiftTypeResponse{}, fmt.Errorf("failed to create shift type: %w", err)
	}
	return shift.NewShiftTypeResponse(created), nil
}

// GetShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) GetShiftType(ctx context.Context, code string) (shift.ShiftTypeResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	t, err := s.shiftTypeRepo.GetByCode(ctx, companyID, shift.NormalizeToken(code))
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	return shift.NewShiftTypeResponse(t), nil
}

// ListShiftTypes implements shift.ShiftService.
func (s *shiftServiceImpl) ListShiftTypes(ctx context.Context, filter shift.ShiftTypeFilter) ([]shift.ShiftTypeResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.shiftTypeRepo.List(ctx, companyID, filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	resp := make([]shift.ShiftTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, shift.NewShiftTypeResponse(t))
	}
	return resp, nil
}

// UpdateShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) UpdateShiftType(ctx context.Context, req shift.UpdateShiftTypeRequest) (shift.ShiftTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	existing, err := s.shiftTypeRepo.GetByCode(ctx, companyID, req.Code)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	merged, err := req.Apply(existing)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}
	updated, err := s.shiftTypeRepo.Update(ctx, merged)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ShiftTypeResponse{}, err
		}
		return shift.ShiftTypeResponse{}, fmt.Errorf("failed to update shift type: %w", err)
	}
	return shift.NewShiftTypeResponse(updated), nil
}

// DeleteShiftType implements shift.ShiftService. Referenced types can only be
// deactivated. The row stays locked from the reference check to the delete, so
// a pattern write naming the code waits for the outcome.
func (s *shiftServiceImpl) DeleteShiftType(ctx context.Context, code string) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	code = shift.NormalizeToken(code)

	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.shiftTypeRepo.LockByCode(txCtx, companyID, code); err != nil {
			return err
		}
		inUse, err := s.shiftTypeRepo.IsReferenced(txCtx, companyID, code)
		if err != nil {
			return fmt.Errorf("failed to check shift type references: %w", err)
		}
		if inUse {
			return shift.ErrShiftTypeInUse
		}
		return s.shiftTypeRepo.Delete(txCtx, companyID, code)
	})
}

// CreateShiftPattern implements shift.ShiftService.
func (s *shiftServiceImpl) CreateShiftPattern(ctx context.Context, req shift.CreateShiftPatternRequest) (shift.ShiftPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	var created shift.ShiftPattern
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkTokensAgainstRegistry(txCtx, companyID, req.Tokens); err != nil {
			return err
		}
		created, err = s.patternRepo.Create(txCtx, shift.ShiftPattern{
			CompanyID:   companyID,
			Name:        req.Name,
			Description: req.Description,
			Tokens:      req.Tokens,
		})
		if err != nil {
			return fmt.Errorf("failed to create shift pattern: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	return shift.NewShiftPatternResponse(created), nil
}

// GetShiftPattern implements shift.ShiftService.
func (s *shiftServiceImpl) GetShiftPattern(ctx context.Context, id string) (shift.ShiftPatternResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return shift.ShiftPatternResponse{}, shift.ErrShiftPatternNotFound
	}
	p, err := s.patternRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	return shift.NewShiftPatternResponse(p), nil
}

// ListShiftPatterns implements shift.ShiftService.
func (s *shiftServiceImpl) ListShiftPatterns(ctx context.Context) ([]shift.ShiftPatternResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := s.patternRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift patterns: %w", err)
	}
	resp := make([]shift.ShiftPatternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, shift.NewShiftPatternResponse(p))
	}
	return resp, nil
}

// UpdateShiftPattern implements shift.ShiftService. Matrices generated from
// the previous tokens are left as they are.
func (s *shiftServiceImpl) UpdateShiftPattern(ctx context.Context, req shift.UpdateShiftPatternRequest) (shift.ShiftPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}

	p, err := s.patternRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	var updated shift.ShiftPattern
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.Tokens != nil {
			if err := s.checkTokensAgainstRegistry(txCtx, companyID, req.Tokens); err != nil {
				return err
			}
			p.Tokens = req.Tokens
		}
		updated, err = s.patternRepo.Update(txCtx, p)
		if err != nil {
			if errors.Is(err, shift.ErrShiftPatternNotFound) {
				return err
			}
			return fmt.Errorf("failed to update shift pattern: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftPatternResponse{}, err
	}
	return shift.NewShiftPatternResponse(updated), nil
}

// DeleteShiftPattern implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteShiftPattern(ctx context.Context, id string) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return shift.ErrShiftPatternNotFound
	}
	if _, err := s.patternRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}
	bound, err := s.patternRepo.IsBound(ctx, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to check pattern bindings: %w", err)
	}
	if bound {
		return shift.ErrShiftPatternInUse
	}
	return s.patternRepo.Delete(ctx, id, companyID)
}

// checkTokensAgainstRegistry requires every non-OFF token to name an active
// shift type of the company. Inside a transaction the matched types cannot be
// deleted until it ends.
func (s *shiftServiceImpl) checkTokensAgainstRegistry(ctx context.Context, companyID string, tokens []string) error {
	known, err := s.shiftTypeRepo.LockByCodes(ctx, companyID, shift.DistinctCodes(tokens))
	if err != nil {
		return fmt.Errorf("failed to load shift types: %w", err)
	}
	var errs validator.ValidationErrors
	for i, tok := range tokens {
		if shift.IsOff(tok) {
			continue
		}
		field := "tokens[" + validator.Itoa(i) + "]"
		t, ok := known[tok]
		switch {
		case !ok:
			errs.Add(field, "unknown shift code "+tok)
		case !t.Active:
			errs.Add(field, "shift code "+tok+" is inactive")
		}
	}
	return errs.OrNil()
}
