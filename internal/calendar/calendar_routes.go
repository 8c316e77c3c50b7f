package calendar

import (
	"github.com/gin-gonic/gin"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cal := r.Group("/team-calendar")
	cal.Use(middleware.ExtractEmployeeID())
	{
		cal.GET("/today", handler.Today)
		cal.GET("", handler.Month)
	}
}
