package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/attendance"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/employee"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/messaging/kafka"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/payrollrun"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/ratecard"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac/infra"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	ratecardRepo := ratecard.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRunRepo := payrollrun.NewRepository(gormDB)
	salarySheetRepo := salarysheet.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(infra.DefaultModelPath())
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, outboxRepo)
	payrollRunService := payrollrun.NewService(db, payrollRunRepo, employeeRepo, attendanceRepo, ratecardRepo, outboxRepo)
	salarySheetService := salarysheet.NewService(salarySheetRepo, payrollRunRepo, employeeRepo)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollRunHandler := payrollrun.NewHandler(payrollRunService)
	salarySheetHandler := salarysheet.NewHandler(salarySheetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payrollrun.RegisterRoutes(api, payrollRunHandler, rbacService, rdb)
		salarysheet.RegisterRoutes(api, salarySheetHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
