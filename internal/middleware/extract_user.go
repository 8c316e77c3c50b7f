package middleware

import (
	"net/http"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/response"

	"github.com/gin-gonic/gin"
)

func ExtractEmployeeID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		employeeID, exists := ctx.Get("employee_id")
		if !exists {
			response.Error(ctx, http.StatusUnauthorized, "UNAUTHORIZED", "Employee is not authenticated", nil)
			ctx.Abort()
			return
		}

		idStr, ok := employeeID.(string)
		if !ok || idStr == "" {
			response.Error(ctx, http.StatusUnauthorized, "INVALID_IDENTITY", "Malformed employee id", nil)
			ctx.Abort()
			return
		}

		// Re-set with a guaranteed string type
		ctx.Set("employee_id_validated", idStr)
		ctx.Next()
	}
}
