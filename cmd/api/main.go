package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/suweldo/payroll-backend-go/internal/config"
	appHTTP "github.com/suweldo/payroll-backend-go/internal/handler/http"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/jwt"
	"github.com/suweldo/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/suweldo/payroll-backend-go/internal/service/attendance"
	authService "github.com/suweldo/payroll-backend-go/internal/service/auth"
	deductionService "github.com/suweldo/payroll-backend-go/internal/service/deduction"
	payrollService "github.com/suweldo/payroll-backend-go/internal/service/payroll"
	reportService "github.com/suweldo/payroll-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-backend"),
	)

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	snapshotRepo := postgresql.NewSnapshotRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	taxEstimator := payrollService.NewTrainLawEstimator()

	authSvc := authService.NewService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewService(attendanceRepo)
	payrollSvc := payrollService.NewService(payrollRepo, employeeRepo, attendanceRepo, logger)
	distributor := deductionService.NewDistributor(payrollRepo, deductionRepo, employeeRepo, taxEstimator, logger)
	txRunner := postgresql.NewLockedTxRunner(db)
	reportSvc := reportService.NewService(txRunner, snapshotRepo, payrollRepo, employeeRepo, attendanceRepo, userRepo, distributor, logger)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	deductionHandler := appHTTP.NewDeductionHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		payrollHandler,
		attendanceHandler,
		reportHandler,
		deductionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
