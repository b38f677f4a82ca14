package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type matrixRepositoryImpl struct {
	db *database.DB
}

func NewMatrixRepository(db *database.DB) rotation.MatrixRepository {
	return &matrixRepositoryImpl{db: db}
}

const matrixColumns = `id, company_id, group_shift_id, period, slots, source, pattern_id, version, created_at, updated_at`

func scanMatrix(row pgx.Row) (rotation.MonthlyMatrix, error) {
	var (
		m      rotation.MonthlyMatrix
		period time.Time
		slots  []*string
	)
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.GroupShiftID, &period, &slots,
		&m.Source, &m.PatternID, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return rotation.MonthlyMatrix{}, err
	}
	m.Period = rotation.PeriodOf(period)
	m.Slots = rotation.SlotsFromList(slots)
	return m, nil
}

// Get implements rotation.MatrixRepository.
func (r *matrixRepositoryImpl) Get(ctx context.Context, companyID, groupID string, period rotation.Period) (rotation.MonthlyMatrix, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + matrixColumns + `
		FROM monthly_matrices
		WHERE company_id = $1 AND group_shift_id = $2 AND period = $3
	`

	m, err := scanMatrix(q.QueryRow(ctx, query, companyID, groupID, period.FirstDay()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rotation.MonthlyMatrix{}, rotation.ErrMatrixNotFound
		}
		return rotation.MonthlyMatrix{}, fmt.Errorf("failed to get matrix %s for group %s: %w", period, groupID, err)
	}
	return m, nil
}

// Exists implements rotation.MatrixRepository.
func (r *matrixRepositoryImpl) Exists(ctx context.Context, companyID, groupID string, period rotation.Period) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM monthly_matrices
			WHERE company_id = $1 AND group_shift_id = $2 AND period = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, groupID, period.FirstDay()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check matrix %s for group %s: %w", period, groupID, err)
	}
	return exists, nil
}

// Save implements rotation.MatrixRepository. The whole write is one
// INSERT .. ON CONFLICT statement; a version mismatch leaves the row alone
// and returns no row.
func (r *matrixRepositoryImpl) Save(ctx context.Context, m rotation.MonthlyMatrix, expectedVersion *int) (rotation.MonthlyMatrix, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_matrices (id, company_id, group_shift_id, period, slots, source, pattern_id, version)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, 1)
		ON CONFLICT (company_id, group_shift_id, period) DO UPDATE
		SET slots = EXCLUDED.slots,
			source = EXCLUDED.source,
			pattern_id = EXCLUDED.pattern_id,
			version = monthly_matrices.version + 1,
			updated_at = NOW()
		WHERE $7::int IS NULL OR monthly_matrices.version = $7::int
		RETURNING ` + matrixColumns

	saved, err := scanMatrix(q.QueryRow(ctx, query,
		m.CompanyID, m.GroupShiftID, m.Period.FirstDay(), m.Slots.SlotList(),
		m.Source, m.PatternID, expectedVersion,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rotation.MonthlyMatrix{}, rotation.ErrMatrixVersionConflict
		}
		return rotation.MonthlyMatrix{}, fmt.Errorf("failed to save matrix %s for group %s: %w", m.Period, m.GroupShiftID, err)
	}
	return saved, nil
}
