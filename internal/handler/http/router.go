package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/rosterly/rosterly-backend-go/internal/handler/http/middleware"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	rosterHandler RosterHandler,
	shiftHandler ShiftHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rosterly"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/rosters", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRosterView)).Get("/", rosterHandler.List)
				r.With(middleware.RequirePermission(user.PermissionRosterView)).Get("/{id}", rosterHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionRosterManage)).Post("/", rosterHandler.Create)
				r.With(middleware.RequirePermission(user.PermissionRosterManage)).Put("/{id}", rosterHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionRosterManage)).Delete("/{id}", rosterHandler.Delete)
				r.With(middleware.RequirePermission(user.PermissionRosterPublish)).Post("/{id}/publish", rosterHandler.Publish)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftViewOwn)).Get("/", shiftHandler.List)
				r.With(middleware.RequirePermission(user.PermissionShiftViewOwn)).Get("/{id}", shiftHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionShiftManage)).Post("/", shiftHandler.Create)
				r.With(middleware.RequirePermission(user.PermissionShiftManage)).Put("/{id}", shiftHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionShiftManage)).Delete("/{id}", shiftHandler.Delete)
				r.With(middleware.RequirePermission(user.PermissionShiftAssign)).Post("/{id}/assign", shiftHandler.Assign)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/", attendanceHandler.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/{id}", attendanceHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/", attendanceHandler.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Put("/{id}", attendanceHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Post("/{id}/approve", attendanceHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Post("/{id}/reject", attendanceHandler.Reject)
				r.With(middleware.RequirePermission(user.PermissionAttendanceDelete)).Delete("/{id}", attendanceHandler.Delete)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/", payrollHandler.List)
				r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/{id}", payrollHandler.GetByID)
				r.With(middleware.RequirePermission(user.PermissionPayrollCreate)).Post("/", payrollHandler.Create)
				r.With(middleware.RequirePermission(user.PermissionPayrollGenerate)).Post("/generate", payrollHandler.Generate)
				r.With(middleware.RequirePermission(user.PermissionPayrollUpdate)).Put("/{id}", payrollHandler.Update)
				r.With(middleware.RequirePermission(user.PermissionPayrollApprove)).Post("/{id}/approve", payrollHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionPayrollDelete)).Delete("/{id}", payrollHandler.Delete)
			})
		})
	})
	return r
}
