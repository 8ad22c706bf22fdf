package salarysheet

import (
	"github.com/gin-gonic/gin"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/middleware"
	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	templates := r.Group("/salary-sheet-templates")
	templates.Use(middleware.AuthMiddleware())
	{
		templates.GET("", middleware.RBACAuthorize(rbacService, "salary_sheet", "read"), handler.GetAll)
		templates.GET("/approved-payrolls", middleware.RBACAuthorize(rbacService, "salary_sheet", "read"), handler.ApprovedRuns)
		templates.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_sheet", "read"), handler.GetByID)
		templates.GET("/:id/columns", middleware.RBACAuthorize(rbacService, "salary_sheet", "read"), handler.ListColumns)
		templates.POST("", middleware.RBACAuthorize(rbacService, "salary_sheet", "create"), handler.Create)
		templates.POST("/generate", middleware.RBACAuthorize(rbacService, "salary_sheet", "read"), handler.Generate)
		templates.POST("/:id/columns", middleware.RBACAuthorize(rbacService, "salary_sheet", "update"), handler.ReplaceColumns)
		templates.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_sheet", "update"), handler.Update)
		templates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_sheet", "delete"), handler.Delete)
	}
}
