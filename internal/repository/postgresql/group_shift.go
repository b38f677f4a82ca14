package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type groupShiftRepositoryImpl struct {
	db *database.DB
}

func NewGroupShiftRepository(db *database.DB) rotation.GroupShiftRepository {
	return &groupShiftRepositoryImpl{db: db}
}

const groupShiftColumns = `id, company_id, code, name, active, pattern_id, pattern_reference_date, created_at, updated_at, deleted_at`

func scanGroupShift(row pgx.Row) (rotation.GroupShift, error) {
	var g rotation.GroupShift
	err := row.Scan(
		&g.ID, &g.CompanyID, &g.Code, &g.Name, &g.Active,
		&g.PatternID, &g.PatternReferenceDate,
		&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt,
	)
	return g, err
}

func collectGroupShifts(rows pgx.Rows) ([]rotation.GroupShift, error) {
	defer rows.Close()

	var groups []rotation.GroupShift
	for rows.Next() {
		g, err := scanGroupShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group shift: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Create implements rotation.GroupShiftRepository.
func (r *groupShiftRepositoryImpl) Create(ctx context.Context, g rotation.GroupShift) (rotation.GroupShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO group_shifts (id, company_id, code, name, active, pattern_id, pattern_reference_date)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
		RETURNING ` + groupShiftColumns

	created, err := scanGroupShift(q.QueryRow(ctx, query,
		g.CompanyID, g.Code, g.Name, g.Active, g.PatternID, g.PatternReferenceDate,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return rotation.GroupShift{}, rotation.ErrGroupCodeExists
		}
		return rotation.GroupShift{}, fmt.Errorf("failed to create group shift %s: %w", g.Code, err)
	}
	return created, nil
}

// GetByID implements rotation.GroupShiftRepository.
func (r *groupShiftRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (rotation.GroupShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + groupShiftColumns + `
		FROM group_shifts
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	g, err := scanGroupShift(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rotation.GroupShift{}, rotation.ErrGroupNotFound
		}
		return rotation.GroupShift{}, fmt.Errorf("failed to get group shift with id %s: %w", id, err)
	}
	return g, nil
}

// List implements rotation.GroupShiftRepository.
func (r *groupShiftRepositoryImpl) List(ctx context.Context, companyID string, filter rotation.GroupShiftFilter) ([]rotation.GroupShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + groupShiftColumns + ` FROM group_shifts WHERE company_id = $1 AND deleted_at IS NULL`
	if filter.ActiveOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group shifts: %w", err)
	}
	return collectGroupShifts(rows)
}

// Update implements rotation.GroupShiftRepository. The code is immutable.
func (r *groupShiftRepositoryImpl) Update(ctx context.Context, g rotation.GroupShift) (rotation.GroupShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE group_shifts
		SET name = $3, active = $4, pattern_id = $5, pattern_reference_date = $6, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING ` + groupShiftColumns

	updated, err := scanGroupShift(q.QueryRow(ctx, query,
		g.ID, g.CompanyID, g.Name, g.Active, g.PatternID, g.PatternReferenceDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rotation.GroupShift{}, rotation.ErrGroupNotFound
		}
		return rotation.GroupShift{}, fmt.Errorf("failed to update group shift with id %s: %w", g.ID, err)
	}
	return updated, nil
}

// SoftDelete implements rotation.GroupShiftRepository. The pattern binding
// is released so the pattern can be deleted afterwards.
func (r *groupShiftRepositoryImpl) SoftDelete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE group_shifts
		SET deleted_at = NOW(), active = FALSE,
			pattern_id = NULL, pattern_reference_date = NULL, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete group shift with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return rotation.ErrGroupNotFound
	}
	return nil
}

// ListWithPattern implements rotation.GroupShiftRepository.
func (r *groupShiftRepositoryImpl) ListWithPattern(ctx context.Context) ([]rotation.GroupShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + groupShiftColumns + `
		FROM group_shifts
		WHERE deleted_at IS NULL AND active = TRUE
			AND pattern_id IS NOT NULL AND pattern_reference_date IS NOT NULL
		ORDER BY company_id, code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterned group shifts: %w", err)
	}
	return collectGroupShifts(rows)
}
