package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/middleware"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		attendances.GET("/exceptions", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Exceptions)
		attendances.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.Export)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.Create)
		attendances.POST("/import", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.Import)
		attendances.PATCH("/bulk-update", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.BulkUpdate)
		attendances.PATCH("/:id", middleware.RBACAuthorize(rbacService, "attendance", "update"), handler.Update)
	}
}
