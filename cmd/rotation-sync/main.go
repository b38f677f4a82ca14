// rotation-sync generates and syncs monthly matrices from the command line.
// It reads the same environment as the API server and is meant for backfills
// and for re-running a rollover that failed.
//
//	rotation-sync --company <id> --group <id> --period 2025-01 --generate --sync --yes
//	rotation-sync --all --period 2025-02
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/app"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/config"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
)

const (
	exitError          = 1
	exitUsage          = 2
	exitPartialFailure = 3
)

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type options struct {
	companyID string
	groupID   string
	period    rotation.Period
	all       bool
	generate  bool
	overwrite bool
	sync      bool
	yes       bool
	workers   int
	timeout   time.Duration
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var usage usageError
		switch {
		case errors.As(err, &usage):
			os.Exit(exitUsage)
		case errors.Is(err, rotation.ErrPartialBatchFailure):
			os.Exit(exitPartialFailure)
		default:
			os.Exit(exitError)
		}
	}
}

func parseFlags(args []string, now time.Time) (options, error) {
	var opts options
	var period string

	flagSet := pflag.NewFlagSet("rotation-sync", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.companyID, "company", "", "company ID owning the group")
	flagSet.StringVar(&opts.groupID, "group", "", "group shift ID")
	flagSet.StringVar(&period, "period", "", "month as YYYY-MM (default: next month)")
	flagSet.BoolVar(&opts.all, "all", false, "roll over every group with a bound pattern, like the scheduled job")
	flagSet.BoolVar(&opts.generate, "generate", false, "generate the matrix from the group's pattern")
	flagSet.BoolVar(&opts.overwrite, "overwrite", false, "replace an existing matrix when generating")
	flagSet.BoolVar(&opts.sync, "sync", false, "sync the matrix onto member schedules")
	flagSet.BoolVarP(&opts.yes, "yes", "y", false, "confirm actions that overwrite data")
	flagSet.IntVar(&opts.workers, "workers", 0, "concurrent employees during sync (default: SYNC_WORKERS)")
	flagSet.DurationVar(&opts.timeout, "timeout", 0, "per-employee sync timeout (default: SYNC_EMPLOYEE_TIMEOUT)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, usagef("usage: rotation-sync [flags]\n%s", flagSet.FlagUsages())
		}
		return opts, usagef("%v", err)
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, usagef("unexpected argument: %s", rest[0])
	}

	opts.period = rotation.PeriodOf(now.UTC()).Next()
	if period != "" {
		p, err := rotation.ParsePeriod(period)
		if err != nil {
			return opts, usagef("invalid --period %q: must be YYYY-MM", period)
		}
		opts.period = p
	}

	if opts.workers < 0 {
		return opts, usagef("--workers must be positive")
	}
	if opts.timeout < 0 {
		return opts, usagef("--timeout must be positive")
	}

	if opts.all {
		if opts.companyID != "" || opts.groupID != "" || opts.generate || opts.sync || opts.overwrite {
			return opts, usagef("--all cannot be combined with --company, --group, --generate, --sync or --overwrite")
		}
		return opts, nil
	}

	if opts.companyID == "" || opts.groupID == "" {
		return opts, usagef("--company and --group are required unless --all is set")
	}
	if !opts.generate && !opts.sync {
		return opts, usagef("nothing to do: pass --generate, --sync or both")
	}
	if opts.overwrite && !opts.generate {
		return opts, usagef("--overwrite only applies with --generate")
	}
	if (opts.sync || opts.overwrite) && !opts.yes {
		return opts, usagef("syncing or overwriting replaces planned schedules; rerun with --yes")
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, time.Now())
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.workers > 0 {
		cfg.Sync.Workers = opts.workers
	}
	if opts.timeout > 0 {
		cfg.Sync.EmployeeTimeout = opts.timeout
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	services := app.NewServices(repos, cfg.Sync)
	return execute(ctx, opts, repos, services, stdout)
}

// execute carries out the parsed options and prints a JSON result.
func execute(ctx context.Context, opts options, repos app.Repositories, services app.Services, stdout io.Writer) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if opts.all {
		summary, err := cron.NewRotationJobs(repos.Groups, services.Rotation).Rollover(ctx, opts.period)
		if encErr := enc.Encode(summary); encErr != nil {
			return encErr
		}
		return err
	}

	ctx = tenant.WithCompanyID(ctx, opts.companyID)
	result := struct {
		Matrix *rotation.MatrixResponse `json:"matrix,omitempty"`
		Sync   *rotation.SyncReport     `json:"sync,omitempty"`
	}{}

	if opts.generate {
		matrix, err := services.Rotation.GenerateMatrix(ctx, rotation.GenerateMatrixRequest{
			GroupID:          opts.groupID,
			Period:           opts.period.String(),
			ConfirmOverwrite: opts.overwrite,
		})
		if err != nil {
			if errors.Is(err, rotation.ErrOverwriteNotConfirmed) {
				return fmt.Errorf("%w: pass --overwrite --yes to replace it", err)
			}
			return err
		}
		result.Matrix = &matrix
	}

	var syncErr error
	if opts.sync {
		report, err := services.Rotation.SyncMatrix(ctx, rotation.SyncMatrixRequest{
			GroupID: opts.groupID,
			Period:  opts.period.String(),
			Confirm: opts.yes,
		})
		if err != nil && !errors.Is(err, rotation.ErrPartialBatchFailure) {
			return err
		}
		result.Sync = &report
		syncErr = err
	}

	if err := enc.Encode(result); err != nil {
		return err
	}
	return syncErr
}
