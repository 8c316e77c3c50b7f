package delegation

import (
	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	delegations := r.Group("/delegations")
	delegations.Use(middleware.ExtractEmployeeID())
	{
		delegations.GET("", handler.GetMine)
		delegations.POST("", handler.Create)
		delegations.DELETE("/:id", handler.Delete)
	}
}
