package app

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/config"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/rotation"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/database"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/memory"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-shift-rotation/internal/service/attendance"
	rotationService "github.com/cmlabs-hris/hris-shift-rotation/internal/service/rotation"
	shiftService "github.com/cmlabs-hris/hris-shift-rotation/internal/service/shift"
)

// Repositories is one storage backend's full set of repositories.
type Repositories struct {
	Transactor database.Transactor
	ShiftTypes shift.ShiftTypeRepository
	Patterns   shift.ShiftPatternRepository
	Groups     rotation.GroupShiftRepository
	Matrices   rotation.MatrixRepository
	Employees  employee.EmployeeRepository
	Schedule   attendance.ScheduleDayRepository

	// Store is set for the memory backend only.
	Store *memory.Store
}

// OpenRepositories builds the repositories for cfg.App.StorageType. The
// returned close func releases the database pool, if any.
func OpenRepositories(ctx context.Context, cfg *config.Config) (Repositories, func(), error) {
	switch cfg.App.StorageType {
	case config.StorageMemory:
		store := memory.NewStore()
		return Repositories{
			Transactor: memory.NewTransactor(),
			ShiftTypes: memory.NewShiftTypeRepository(store),
			Patterns:   memory.NewShiftPatternRepository(store),
			Groups:     memory.NewGroupShiftRepository(store),
			Matrices:   memory.NewMatrixRepository(store),
			Employees:  memory.NewEmployeeRepository(store),
			Schedule:   memory.NewScheduleDayRepository(store),
			Store:      store,
		}, func() {}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return Repositories{
			Transactor: postgresql.NewTransactor(db),
			ShiftTypes: postgresql.NewShiftTypeRepository(db),
			Patterns:   postgresql.NewShiftPatternRepository(db),
			Groups:     postgresql.NewGroupShiftRepository(db),
			Matrices:   postgresql.NewMatrixRepository(db),
			Employees:  postgresql.NewEmployeeRepository(db),
			Schedule:   postgresql.NewScheduleDayRepository(db),
		}, db.Close, nil

	default:
		return Repositories{}, nil, fmt.Errorf("unsupported storage type %q", cfg.App.StorageType)
	}
}

// Services holds the domain services built over one set of repositories.
type Services struct {
	Shift      shift.ShiftService
	Rotation   rotation.RotationService
	Attendance attendance.AttendanceService
}

func NewServices(repos Repositories, syncCfg config.SyncConfig) Services {
	syncer := rotationService.NewSynchronizer(
		repos.Transactor,
		repos.Matrices,
		repos.ShiftTypes,
		repos.Employees,
		repos.Schedule,
		rotationService.SyncConfig{
			Workers:         syncCfg.Workers,
			EmployeeTimeout: syncCfg.EmployeeTimeout,
		},
	)
	return Services{
		Shift: shiftService.NewShiftService(repos.Transactor, repos.ShiftTypes, repos.Patterns),
		Rotation: rotationService.NewRotationService(
			repos.Groups,
			repos.Matrices,
			repos.ShiftTypes,
			repos.Patterns,
			repos.Employees,
			syncer,
		),
		Attendance: attendanceService.NewAttendanceService(repos.Groups, repos.Employees, repos.Schedule),
	}
}
