package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
)

// RolloverSummary counts what one rollover run did.
type RolloverSummary struct {
	Period    string
	Groups    int
	Generated int
	Skipped   int
	Failed    int
}

type RotationJobs struct {
	groupRepo   rotation.GroupShiftRepository
	rotationSvc rotation.RotationService
	now         func() time.Time
}

func NewRotationJobs(groupRepo rotation.GroupShiftRepository, rotationSvc rotation.RotationService) *RotationJobs {
	return &RotationJobs{
		groupRepo:   groupRepo,
		rotationSvc: rotationSvc,
		now:         time.Now,
	}
}

func (j *RotationJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("monthly_matrix_rollover", spec, j.RolloverNextMonth)
}

// RolloverNextMonth generates next month's matrix for every active group
// with a bound pattern and syncs it. Groups that already have a matrix for
// that month are left alone, so manual edits survive.
func (j *RotationJobs) RolloverNextMonth(ctx context.Context) error {
	_, err := j.Rollover(ctx, rotation.PeriodOf(j.now().UTC()).Next())
	return err
}

func (j *RotationJobs) Rollover(ctx context.Context, period rotation.Period) (RolloverSummary, error) {
	slog.Info("Cron: Starting matrix rollover", "period", period.String())

	groups, err := j.groupRepo.ListWithPattern(ctx)
	if err != nil {
		return RolloverSummary{}, err
	}

	summary := RolloverSummary{Period: period.String(), Groups: len(groups)}
	for _, g := range groups {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		groupCtx := tenant.WithCompanyID(ctx, g.CompanyID)

		_, err := j.rotationSvc.GenerateMatrix(groupCtx, rotation.GenerateMatrixRequest{
			GroupID: g.ID,
			Period:  period.String(),
		})
		if errors.Is(err, rotation.ErrOverwriteNotConfirmed) {
			summary.Skipped++
			slog.Debug("Cron: matrix already exists, skipping", "group_id", g.ID, "period", period.String())
			continue
		}
		if err != nil {
			summary.Failed++
			slog.Error("Cron: failed to generate matrix", "group_id", g.ID, "company_id", g.CompanyID, "period", period.String(), "error", err)
			continue
		}
		summary.Generated++

		report, err := j.rotationSvc.SyncMatrix(groupCtx, rotation.SyncMatrixRequest{
			GroupID: g.ID,
			Period:  period.String(),
			Confirm: true,
		})
		if err != nil {
			summary.Failed++
			slog.Error("Cron: failed to sync matrix",
				"group_id", g.ID, "company_id", g.CompanyID, "period", period.String(),
				"updated", report.Updated, "errors", len(report.Errors), "error", err)
			continue
		}
	}

	slog.Info("Cron: Matrix rollover completed",
		"period", summary.Period,
		"groups", summary.Groups,
		"generated", summary.Generated,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}
