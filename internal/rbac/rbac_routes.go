package rbac

import (
	"github.com/gin-gonic/gin"

	"github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rbac := r.Group("/rbac")
	rbac.Use(middleware.AuthMiddleware())
	{
		rbac.GET("/permissions", handler.ListPermissions)
		rbac.POST("/check-access", handler.CheckAccess)
	}
}
