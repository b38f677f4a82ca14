package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftPatternRepositoryImpl struct {
	db *database.DB
}

func NewShiftPatternRepository(db *database.DB) shift.ShiftPatternRepository {
	return &shiftPatternRepositoryImpl{db: db}
}

const shiftPatternColumns = `id, company_id, name, description, tokens, created_at, updated_at`

func scanShiftPattern(row pgx.Row) (shift.ShiftPattern, error) {
	var p shift.ShiftPattern
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.Tokens, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) Create(ctx context.Context, p shift.ShiftPattern) (shift.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_patterns (id, company_id, name, description, tokens)
		VALUES (uuidv7(), $1, $2, $3, $4)
		RETURNING ` + shiftPatternColumns

	created, err := scanShiftPattern(q.QueryRow(ctx, query, p.CompanyID, p.Name, p.Description, p.Tokens))
	if err != nil {
		return shift.ShiftPattern{}, fmt.Errorf("failed to create shift pattern: %w", err)
	}
	return created, nil
}

// GetByID implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (shift.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftPatternColumns + ` FROM shift_patterns WHERE id = $1 AND company_id = $2`

	p, err := scanShiftPattern(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
		}
		return shift.ShiftPattern{}, fmt.Errorf("failed to get shift pattern with id %s: %w", id, err)
	}
	return p, nil
}

// List implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftPatternColumns + ` FROM shift_patterns WHERE company_id = $1 ORDER BY name, id`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift patterns: %w", err)
	}
	defer rows.Close()

	var patterns []shift.ShiftPattern
	for rows.Next() {
		p, err := scanShiftPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift pattern: %w", err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Update implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) Update(ctx context.Context, p shift.ShiftPattern) (shift.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_patterns
		SET name = $3, description = $4, tokens = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + shiftPatternColumns

	updated, err := scanShiftPattern(q.QueryRow(ctx, query, p.ID, p.CompanyID, p.Name, p.Description, p.Tokens))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPattern{}, shift.ErrShiftPatternNotFound
		}
		return shift.ShiftPattern{}, fmt.Errorf("failed to update shift pattern with id %s: %w", p.ID, err)
	}
	return updated, nil
}

// Delete implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_patterns WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shift.ErrShiftPatternInUse
		}
		return fmt.Errorf("failed to delete shift pattern with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftPatternNotFound
	}
	return nil
}

// IsBound implements shift.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) IsBound(ctx context.Context, id, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_shifts
			WHERE pattern_id = $1 AND company_id = $2 AND deleted_at IS NULL
		)
	`

	var bound bool
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&bound); err != nil {
		return false, fmt.Errorf("failed to check pattern bindings: %w", err)
	}
	return bound, nil
}
