package rotation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/export"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/validator"
)

type rotationServiceImpl struct {
	groupRepo     rotation.GroupShiftRepository
	matrixRepo    rotation.MatrixRepository
	shiftTypeRepo shift.ShiftTypeRepository
	patternRepo   shift.ShiftPatternRepository
	employeeRepo  employee.EmployeeRepository
	syncer        *Synchronizer
	locks         *keyLock
}

func NewRotationService(
	groupRepo rotation.GroupShiftRepository,
	matrixRepo rotation.MatrixRepository,
	shiftTypeRepo shift.ShiftTypeRepository,
	patternRepo shift.ShiftPatternRepository,
	employeeRepo employee.EmployeeRepository,
	syncer *Synchronizer,
) rotation.RotationService {
	return &rotationServiceImpl{
		groupRepo:     groupRepo,
		matrixRepo:    matrixRepo,
		shiftTypeRepo: shiftTypeRepo,
		patternRepo:   patternRepo,
		employeeRepo:  employeeRepo,
		syncer:        syncer,
		locks:         newKeyLock(),
	}
}

// CreateGroup implements rotation.RotationService.
func (s *rotationServiceImpl) CreateGroup(ctx context.Context, req rotation.CreateGroupShiftRequest) (rotation.GroupShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return rotation.GroupShiftResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.GroupShiftResponse{}, err
	}

	g := rotation.GroupShift{
		CompanyID: companyID,
		Code:      req.Code,
		Name:      req.Name,
		Active:    req.Active == nil || *req.Active,
	}
	if err := s.bindPattern(ctx, companyID, &g, req.PatternID, req.PatternReferenceDate); err != nil {
		return rotation.GroupShiftResponse{}, err
	}

	created, err := s.groupRepo.Create(ctx, g)
	if err != nil {
		if errors.Is(err, rotation.ErrGroupCodeExists) {
			return rotation.GroupShiftResponse{}, err
		}
		return rotation.GroupShiftResponse{}, fmt.Errorf("failed to create group shift: %w", err)
	}
	return rotation.NewGroupShiftResponse(created), nil
}

// GetGroup implements rotation.RotationService.
func (s *rotationServiceImpl) GetGroup(ctx context.Context, id string) (rotation.GroupShiftResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.GroupShiftResponse{}, err
	}
	g, err := s.getGroup(ctx, id, companyID)
	if err != nil {
		return rotation.GroupShiftResponse{}, err
	}
	return rotation.NewGroupShiftResponse(g), nil
}

// ListGroups implements rotation.RotationService.
func (s *rotationServiceImpl) ListGroups(ctx context.Context, filter rotation.GroupShiftFilter) ([]rotation.GroupShiftResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.List(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list group shifts: %w", err)
	}
	resp := make([]rotation.GroupShiftResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, rotation.NewGroupShiftResponse(g))
	}
	return resp, nil
}

// UpdateGroup implements rotation.RotationService. Deactivating a group keeps
// its matrices and schedules.
func (s *rotationServiceImpl) UpdateGroup(ctx context.Context, req rotation.UpdateGroupShiftRequest) (rotation.GroupShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return rotation.GroupShiftResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.GroupShiftResponse{}, err
	}

	g, err := s.getGroup(ctx, req.ID, companyID)
	if err != nil {
		return rotation.GroupShiftResponse{}, err
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Active != nil {
		g.Active = *req.Active
	}
	switch {
	case req.ClearPattern:
		g.PatternID, g.PatternReferenceDate = nil, nil
	default:
		if err := s.bindPattern(ctx, companyID, &g, req.PatternID, req.PatternReferenceDate); err != nil {
			return rotation.GroupShiftResponse{}, err
		}
	}

	updated, err := s.groupRepo.Update(ctx, g)
	if err != nil {
		if errors.Is(err, rotation.ErrGroupNotFound) {
			return rotation.GroupShiftResponse{}, err
		}
		return rotation.GroupShiftResponse{}, fmt.Errorf("failed to update group shift: %w", err)
	}
	return rotation.NewGroupShiftResponse(updated), nil
}

// DeleteGroup implements rotation.RotationService.
func (s *rotationServiceImpl) DeleteGroup(ctx context.Context, id string) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return rotation.ErrGroupNotFound
	}
	return s.groupRepo.SoftDelete(ctx, id, companyID)
}

// ListMembers implements rotation.RotationService.
func (s *rotationServiceImpl) ListMembers(ctx context.Context, groupID string) ([]rotation.MemberResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.getGroup(ctx, groupID, companyID); err != nil {
		return nil, err
	}
	members, err := s.employeeRepo.ActiveMembersOf(ctx, companyID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group roster: %w", err)
	}
	resp := make([]rotation.MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, rotation.MemberResponse{
			EmployeeID:   m.ID,
			EmployeeCode: m.EmployeeCode,
			FullName:     m.FullName,
		})
	}
	return resp, nil
}

// AssignMember implements rotation.RotationService. An employee belongs to at
// most one group, so assigning moves them.
func (s *rotationServiceImpl) AssignMember(ctx context.Context, req rotation.MemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	if _, err := s.getGroup(ctx, req.GroupID, companyID); err != nil {
		return err
	}
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return err
	}
	if !emp.IsActive() {
		return employee.ErrEmployeeInactive
	}
	groupID := req.GroupID
	return s.employeeRepo.UpdateGroupShift(ctx, emp.ID, &groupID, companyID)
}

// UnassignMember implements rotation.RotationService. Past schedule days of
// the employee are not touched.
func (s *rotationServiceImpl) UnassignMember(ctx context.Context, req rotation.MemberRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return err
	}
	if emp.GroupShiftID == nil || *emp.GroupShiftID != req.GroupID {
		return nil
	}
	return s.employeeRepo.UpdateGroupShift(ctx, emp.ID, nil, companyID)
}

// GetMatrix implements rotation.RotationService.
func (s *rotationServiceImpl) GetMatrix(ctx context.Context, groupID, period string) (rotation.MatrixResponse, error) {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	p, err := rotation.ParsePeriod(period)
	if err != nil {
		return rotation.MatrixResponse{}, validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	if _, err := s.getGroup(ctx, groupID, companyID); err != nil {
		return rotation.MatrixResponse{}, err
	}
	m, err := s.matrixRepo.Get(ctx, companyID, groupID, p)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	return s.matrixResponse(ctx, companyID, m)
}

// SaveMatrix implements rotation.RotationService. It is the manual edit path:
// the whole month is replaced atomically and marked as manual.
func (s *rotationServiceImpl) SaveMatrix(ctx context.Context, req rotation.SaveMatrixRequest) (rotation.MatrixResponse, error) {
	p, err := req.Validate()
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	if _, err := s.getGroup(ctx, req.GroupID, companyID); err != nil {
		return rotation.MatrixResponse{}, err
	}

	var slots rotation.Slots
	copy(slots[:], req.Days)
	if err := s.checkSlots(ctx, companyID, slots, func(day int) string {
		return "days[" + validator.Itoa(day-1) + "]"
	}); err != nil {
		return rotation.MatrixResponse{}, err
	}

	unlock := s.locks.Lock(matrixKey(companyID, req.GroupID, p.String()))
	defer unlock()

	saved, err := s.matrixRepo.Save(ctx, rotation.MonthlyMatrix{
		CompanyID:    companyID,
		GroupShiftID: req.GroupID,
		Period:       p,
		Slots:        slots,
		Source:       rotation.SourceManual,
	}, req.Version)
	if err != nil {
		if errors.Is(err, rotation.ErrMatrixVersionConflict) {
			return rotation.MatrixResponse{}, err
		}
		return rotation.MatrixResponse{}, fmt.Errorf("failed to save monthly matrix: %w", err)
	}
	return s.matrixResponse(ctx, companyID, saved)
}

// GenerateMatrix implements rotation.RotationService. It regenerates the whole
// month from the group's pattern; an existing matrix is only replaced when
// ConfirmOverwrite is set.
func (s *rotationServiceImpl) GenerateMatrix(ctx context.Context, req rotation.GenerateMatrixRequest) (rotation.MatrixResponse, error) {
	p, err := req.Validate()
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}

	g, err := s.getGroup(ctx, req.GroupID, companyID)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	if !g.HasPattern() {
		return rotation.MatrixResponse{}, rotation.ErrPatternNotBound
	}
	pattern, err := s.patternRepo.GetByID(ctx, *g.PatternID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftPatternNotFound) {
			return rotation.MatrixResponse{}, fmt.Errorf("%w: bound pattern no longer exists", rotation.ErrInvalidConfiguration)
		}
		return rotation.MatrixResponse{}, err
	}

	unlock := s.locks.Lock(matrixKey(companyID, g.ID, p.String()))
	defer unlock()

	exists, err := s.matrixRepo.Exists(ctx, companyID, g.ID, p)
	if err != nil {
		return rotation.MatrixResponse{}, fmt.Errorf("failed to check monthly matrix: %w", err)
	}
	if exists && !req.ConfirmOverwrite {
		return rotation.MatrixResponse{}, rotation.ErrOverwriteNotConfirmed
	}

	m, err := Generate(pattern, *g.PatternReferenceDate, p)
	if err != nil {
		return rotation.MatrixResponse{}, err
	}
	if err := s.checkSlots(ctx, companyID, m.Slots, func(int) string { return "pattern" }); err != nil {
		return rotation.MatrixResponse{}, err
	}
	m.CompanyID = companyID
	m.GroupShiftID = g.ID

	saved, err := s.matrixRepo.Save(ctx, m, nil)
	if err != nil {
		return rotation.MatrixResponse{}, fmt.Errorf("failed to save monthly matrix: %w", err)
	}
	slog.InfoContext(ctx, "matrix generated",
		"company_id", companyID,
		"group_shift_id", g.ID,
		"period", p.String(),
		"pattern_id", pattern.ID,
		"overwrote", exists,
		"version", saved.Version,
	)
	return s.matrixResponse(ctx, companyID, saved)
}

// PreviewPattern implements rotation.RotationService. Nothing is stored.
func (s *rotationServiceImpl) PreviewPattern(ctx context.Context, req rotation.PreviewPatternRequest) (rotation.PreviewResponse, error) {
	p, ref, err := req.Validate()
	if err != nil {
		return rotation.PreviewResponse{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.PreviewResponse{}, err
	}
	pattern, err := s.patternRepo.GetByID(ctx, req.PatternID, companyID)
	if err != nil {
		return rotation.PreviewResponse{}, err
	}
	m, err := Generate(pattern, ref, p)
	if err != nil {
		return rotation.PreviewResponse{}, err
	}
	types, err := s.shiftTypeRepo.GetByCodes(ctx, companyID, m.Codes())
	if err != nil {
		return rotation.PreviewResponse{}, fmt.Errorf("failed to load shift types: %w", err)
	}
	return rotation.PreviewResponse{
		PatternID:     pattern.ID,
		Period:        p.String(),
		ReferenceDate: ref.Format(time.DateOnly),
		Days:          buildDays(m, types),
		Summary:       Summarize(m, types),
	}, nil
}

// ExportMatrix implements rotation.RotationService.
func (s *rotationServiceImpl) ExportMatrix(ctx context.Context, groupID, period string, w io.Writer) error {
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return err
	}
	p, err := rotation.ParsePeriod(period)
	if err != nil {
		return validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	g, err := s.getGroup(ctx, groupID, companyID)
	if err != nil {
		return err
	}
	m, err := s.matrixRepo.Get(ctx, companyID, groupID, p)
	if err != nil {
		return err
	}
	types, err := s.shiftTypeRepo.GetByCodes(ctx, companyID, m.Codes())
	if err != nil {
		return fmt.Errorf("failed to load shift types: %w", err)
	}

	table := export.Table{
		Sheet:   "Matrix",
		Title:   g.Code + " " + g.Name + " " + p.String(),
		Headers: []string{"Date", "Day", "Shift", "Name", "Clock In", "Clock Out"},
	}
	for _, d := range buildDays(m, types) {
		name := ""
		if t, ok := types[d.Value]; ok {
			name = t.Name
		} else if shift.IsOff(d.Value) {
			name = "Day off"
		}
		table.Rows = append(table.Rows, []any{d.Date, d.Weekday, d.Value, name, attendance.StringValue(d.ClockIn), attendance.StringValue(d.ClockOut)})
	}
	summary := Summarize(m, types)
	table.Footer = []any{"Planned hours", summary.PlannedHours.StringFixed(2)}

	return export.WriteTables(w, table)
}

// SyncMatrix implements rotation.RotationService.
func (s *rotationServiceImpl) SyncMatrix(ctx context.Context, req rotation.SyncMatrixRequest) (rotation.SyncReport, error) {
	p, err := req.Validate()
	if err != nil {
		return rotation.SyncReport{}, err
	}
	companyID, err := tenant.CompanyID(ctx)
	if err != nil {
		return rotation.SyncReport{}, err
	}
	if _, err := s.getGroup(ctx, req.GroupID, companyID); err != nil {
		return rotation.SyncReport{}, err
	}

	report, err := s.syncer.Sync(ctx, companyID, req.GroupID, p)
	if err != nil {
		return report, err
	}
	return report, report.Err()
}

func (s *rotationServiceImpl) getGroup(ctx context.Context, id, companyID string) (rotation.GroupShift, error) {
	if !validator.IsValidUUID(id) {
		return rotation.GroupShift{}, rotation.ErrGroupNotFound
	}
	return s.groupRepo.GetByID(ctx, id, companyID)
}

// bindPattern checks the pattern exists before putting it on g. A reference
// date without a pattern re-anchors the current binding.
func (s *rotationServiceImpl) bindPattern(ctx context.Context, companyID string, g *rotation.GroupShift, patternID, referenceDate *string) error {
	if patternID != nil && !validator.IsEmpty(*patternID) {
		if _, err := s.patternRepo.GetByID(ctx, *patternID, companyID); err != nil {
			return err
		}
		id := *patternID
		g.PatternID = &id
	}
	if referenceDate != nil && !validator.IsEmpty(*referenceDate) {
		ref, _ := validator.IsValidDate(*referenceDate)
		g.PatternReferenceDate = &ref
	}
	return nil
}

// checkSlots requires every code in slots to be an active shift type.
func (s *rotationServiceImpl) checkSlots(ctx context.Context, companyID string, slots rotation.Slots, field func(day int) string) error {
	types, err := s.shiftTypeRepo.GetByCodes(ctx, companyID, shift.DistinctCodes(slots[:]))
	if err != nil {
		return fmt.Errorf("failed to load shift types: %w", err)
	}
	var errs validator.ValidationErrors
	reported := map[string]bool{}
	for i, v := range slots {
		if v == "" || shift.IsOff(v) {
			continue
		}
		t, ok := types[v]
		if ok && t.Active {
			continue
		}
		f := field(i + 1)
		if reported[f+v] {
			continue
		}
		reported[f+v] = true
		if !ok {
			errs.Add(f, "unknown shift code "+v)
		} else {
			errs.Add(f, "shift code "+v+" is inactive")
		}
	}
	return errs.OrNil()
}

func (s *rotationServiceImpl) matrixResponse(ctx context.Context, companyID string, m rotation.MonthlyMatrix) (rotation.MatrixResponse, error) {
	types, err := s.shiftTypeRepo.GetByCodes(ctx, companyID, m.Codes())
	if err != nil {
		return rotation.MatrixResponse{}, fmt.Errorf("failed to load shift types: %w", err)
	}
	return rotation.MatrixResponse{
		ID:           m.ID,
		GroupShiftID: m.GroupShiftID,
		Period:       m.Period.String(),
		Source:       m.Source,
		PatternID:    m.PatternID,
		Version:      m.Version,
		Days:         buildDays(m, types),
		Summary:      Summarize(m, types),
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}, nil
}
