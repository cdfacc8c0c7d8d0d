package main

import (
	"fmt"
	"net/http"

	"github.com/rosterly/rosterly-backend-go/internal/config"
	appHTTP "github.com/rosterly/rosterly-backend-go/internal/handler/http"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/jwt"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
	attendanceService "github.com/rosterly/rosterly-backend-go/internal/service/attendance"
	authService "github.com/rosterly/rosterly-backend-go/internal/service/auth"
	payrollService "github.com/rosterly/rosterly-backend-go/internal/service/payroll"
	rosterService "github.com/rosterly/rosterly-backend-go/internal/service/roster"
	shiftService "github.com/rosterly/rosterly-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	rosterSvc := rosterService.NewRosterService(rosterRepo)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, rosterRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, shiftRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, userRepo, companyRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		authHandler,
		rosterHandler,
		shiftHandler,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
