package leaverequest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.ExtractEmployeeID())
	requests.Use(middleware.RateLimitByEmployee(rate.Every(time.Second), 20))
	{
		requests.POST("", middleware.Idempotency(rdb), handler.Submit)
		requests.GET("", handler.GetMine)
		requests.GET("/pending-approvals", handler.PendingApprovals)
		requests.GET("/:id", handler.GetByID)
		requests.GET("/:id/escalations", handler.EscalationHistory)
		requests.POST("/:id/approve", middleware.Idempotency(rdb), handler.Approve)
		requests.POST("/:id/reject", middleware.Idempotency(rdb), handler.Reject)
		requests.POST("/:id/cancel", handler.Cancel)
	}
}
