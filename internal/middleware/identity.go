package middleware

import (
	"net/http"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity reads the employee identity asserted by the platform
// gateway. Authentication and role resolution happen upstream; the
// approval core only requires a verified employee id to attribute
// actions to.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetHeader("X-Employee-ID")
		if employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing employee identity", nil)
			c.Abort()
			return
		}

		if _, err := uuid.Parse(employeeID); err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_IDENTITY", "Malformed employee identity", nil)
			c.Abort()
			return
		}

		c.Set("employee_id", employeeID)
		c.Next()
	}
}
