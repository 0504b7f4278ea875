package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"
	"github.com/gofooditalia/paycrew/internal/config"
	"github.com/gofooditalia/paycrew/internal/domain/attendance"
	"github.com/gofooditalia/paycrew/internal/domain/payroll"
	appHTTP "github.com/gofooditalia/paycrew/internal/handler/http"
	"github.com/gofooditalia/paycrew/internal/pkg/cron"
	"github.com/gofooditalia/paycrew/internal/pkg/database"
	"github.com/gofooditalia/paycrew/internal/pkg/jwt"
	"github.com/gofooditalia/paycrew/internal/repository/postgresql"
	attendanceService "github.com/gofooditalia/paycrew/internal/service/attendance"
	payrollService "github.com/gofooditalia/paycrew/internal/service/payroll"
	shiftService "github.com/gofooditalia/paycrew/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paycrew"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hoursPolicy := attendance.DefaultHoursPolicy
	payrollPolicy := payroll.DefaultPolicy

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, shiftRepo, employeeRepo, hoursPolicy)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, attendanceSvc, logger)
	payrollSvc := payrollService.NewPayrollService(db, payslipRepo, employeeRepo, payrollPolicy)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, shiftRepo, employeeRepo, hoursPolicy, db)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		logger,
		jwtService,
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
