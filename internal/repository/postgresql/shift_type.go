package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

type shiftTypeRepositoryImpl struct {
	db *database.DB
}

func NewShiftTypeRepository(db *database.DB) shift.ShiftTypeRepository {
	return &shiftTypeRepositoryImpl{db: db}
}

const shiftTypeColumns = `company_id, code, name, clock_in, clock_out, is_next_day_checkout, active, created_at, updated_at`

func scanShiftType(row pgx.Row) (shift.ShiftType, error) {
	var t shift.ShiftType
	err := row.Scan(
		&t.CompanyID, &t.Code, &t.Name, &t.ClockIn, &t.ClockOut,
		&t.IsNextDayCheckout, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Create(ctx context.Context, t shift.ShiftType) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_types (company_id, code, name, clock_in, clock_out, is_next_day_checkout, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + shiftTypeColumns

	created, err := scanShiftType(q.QueryRow(ctx, query,
		t.CompanyID, t.Code, t.Name, t.ClockIn, t.ClockOut, t.IsNextDayCheckout, t.Active,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return shift.ShiftType{}, shift.ErrShiftTypeCodeExists
		}
		return shift.ShiftType{}, fmt.Errorf("failed to create shift type %s: %w", t.Code, err)
	}
	return created, nil
}

// GetByCode implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) GetByCode(ctx context.Context, companyID, code string) (shift.ShiftType, error) {
	return r.getByCode(ctx, companyID, code, "")
}

// LockByCode implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) LockByCode(ctx context.Context, companyID, code string) (shift.ShiftType, error) {
	return r.getByCode(ctx, companyID, code, " FOR UPDATE")
}

func (r *shiftTypeRepositoryImpl) getByCode(ctx context.Context, companyID, code, lock string) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTypeColumns + ` FROM shift_types WHERE company_id = $1 AND code = $2` + lock

	t, err := scanShiftType(q.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftType{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftType{}, fmt.Errorf("failed to get shift type %s: %w", code, err)
	}
	return t, nil
}

// GetByCodes implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) GetByCodes(ctx context.Context, companyID string, codes []string) (map[string]shift.ShiftType, error) {
	return r.getByCodes(ctx, companyID, codes, "")
}

// LockByCodes implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) LockByCodes(ctx context.Context, companyID string, codes []string) (map[string]shift.ShiftType, error) {
	return r.getByCodes(ctx, companyID, codes, " FOR SHARE")
}

func (r *shiftTypeRepositoryImpl) getByCodes(ctx context.Context, companyID string, codes []string, lock string) (map[string]shift.ShiftType, error) {
	out := make(map[string]shift.ShiftType, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTypeColumns + ` FROM shift_types WHERE company_id = $1 AND code = ANY($2)` + lock

	rows, err := q.Query(ctx, query, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanShiftType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		out[t.Code] = t
	}
	return out, rows.Err()
}

// List implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) List(ctx context.Context, companyID string, activeOnly bool) ([]shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTypeColumns + ` FROM shift_types WHERE company_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	defer rows.Close()

	var types []shift.ShiftType
	for rows.Next() {
		t, err := scanShiftType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Update implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Update(ctx context.Context, t shift.ShiftType) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_types
		SET name = $3, clock_in = $4, clock_out = $5, is_next_day_checkout = $6, active = $7, updated_at = NOW()
		WHERE company_id = $1 AND code = $2
		RETURNING ` + shiftTypeColumns

	updated, err := scanShiftType(q.QueryRow(ctx, query,
		t.CompanyID, t.Code, t.Name, t.ClockIn, t.ClockOut, t.IsNextDayCheckout, t.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftType{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftType{}, fmt.Errorf("failed to update shift type %s: %w", t.Code, err)
	}
	return updated, nil
}

// Delete implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Delete(ctx context.Context, companyID, code string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_types WHERE company_id = $1 AND code = $2`, companyID, code)
	if err != nil {
		return fmt.Errorf("failed to delete shift type %s: %w", code, err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftTypeNotFound
	}
	return nil
}

// IsReferenced implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) IsReferenced(ctx context.Context, companyID, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_patterns WHERE company_id = $1 AND $2 = ANY(tokens)
		) OR EXISTS (
			SELECT 1 FROM monthly_matrices WHERE company_id = $1 AND $2 = ANY(slots)
		)
	`

	var referenced bool
	if err := q.QueryRow(ctx, query, companyID, code).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check shift type references: %w", err)
	}
	return referenced, nil
}
