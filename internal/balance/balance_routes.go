package balance

import (
	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.ExtractEmployeeID())
	{
		balances.GET("", handler.GetMine)
		balances.GET("/:leaveType", handler.GetByType)
	}
}
