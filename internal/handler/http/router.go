package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/user"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment values the router logs and enforces.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	JWTService jwt.Service,
	opts RouterOptions,
	shiftHandler ShiftHandler,
	rotationHandler RotationHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-shift-rotation"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/rotation", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.RequireCompany)

		view := middleware.RequirePermission(user.PermissionShiftView)
		manage := middleware.RequirePermission(user.PermissionShiftManage)
		sync := middleware.RequirePermission(user.PermissionShiftSync)
		report := middleware.RequirePermission(user.PermissionAttendanceViewAll)

		r.Route("/shift-types", func(r chi.Router) {
			r.With(view).Get("/", shiftHandler.ListShiftTypes)
			r.With(manage).Post("/", shiftHandler.CreateShiftType)
			r.Route("/{code}", func(r chi.Router) {
				r.With(view).Get("/", shiftHandler.GetShiftType)
				r.With(manage).Put("/", shiftHandler.UpdateShiftType)
				r.With(manage).Delete("/", shiftHandler.DeleteShiftType)
			})
		})

		r.Route("/patterns", func(r chi.Router) {
			r.With(view).Get("/", shiftHandler.ListShiftPatterns)
			r.With(manage).Post("/", shiftHandler.CreateShiftPattern)
			r.Route("/{id}", func(r chi.Router) {
				r.With(view).Get("/", shiftHandler.GetShiftPattern)
				r.With(manage).Put("/", shiftHandler.UpdateShiftPattern)
				r.With(manage).Delete("/", shiftHandler.DeleteShiftPattern)
				r.With(view).Get("/preview", shiftHandler.PreviewShiftPattern)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.With(view).Get("/", rotationHandler.ListGroups)
			r.With(manage).Post("/", rotationHandler.CreateGroup)

			r.Route("/{id}", func(r chi.Router) {
				r.With(view).Get("/", rotationHandler.GetGroup)
				r.With(manage).Put("/", rotationHandler.UpdateGroup)
				r.With(manage).Delete("/", rotationHandler.DeleteGroup)

				r.With(view).Get("/members", rotationHandler.ListMembers)
				r.With(manage).Put("/members/{employeeID}", rotationHandler.AssignMember)
				r.With(manage).Delete("/members/{employeeID}", rotationHandler.UnassignMember)

				r.Route("/matrices/{period}", func(r chi.Router) {
					r.With(view).Get("/", rotationHandler.GetMatrix)
					r.With(manage).Put("/", rotationHandler.SaveMatrix)
					r.With(manage).Post("/generate", rotationHandler.GenerateMatrix)
					r.With(sync).Post("/sync", rotationHandler.SyncMatrix)
					r.With(view).Get("/export", rotationHandler.ExportMatrix)
				})

				r.Route("/attendance/{period}", func(r chi.Router) {
					r.With(report).Get("/", attendanceHandler.GroupReport)
					r.With(report).Get("/export", attendanceHandler.ExportGroupReport)
				})
			})
		})

		r.Get("/employees/{employeeID}/attendance/{date}", attendanceHandler.DeriveDay)
	})
	return r
}
