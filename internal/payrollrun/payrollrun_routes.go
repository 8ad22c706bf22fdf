package payrollrun

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/middleware"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	// One limiter shared by every mutating run endpoint: aggregation and
	// lifecycle changes are heavyweight, reads stay unthrottled.
	mutationLimit := middleware.RateLimitByUser(rate.Limit(5), 10)

	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetByID)
		runs.GET("/:id/export", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.Export)
		runs.POST("",
			middleware.RBACAuthorize(rbacService, "payroll_run", "create"),
			mutationLimit,
			middleware.Idempotency(rdb),
			handler.Create,
		)
		runs.PATCH("/:id/status",
			middleware.RBACAuthorize(rbacService, "payroll_run", "update"),
			mutationLimit,
			handler.UpdateStatus,
		)
		runs.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "payroll_run", "delete"),
			mutationLimit,
			handler.Delete,
		)
	}
}
