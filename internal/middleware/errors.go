package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/thiagofalasca/finance-api/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponder is the centralized error-to-response translator. It must
// be registered before any middleware or handler that can push errors onto
// the context. Recognized application errors answer with their declared
// status; anything else is logged and collapsed to a generic 500.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		var appErr *apperr.Error
		if errors.As(last.Err, &appErr) {
			c.JSON(appErr.Status(), gin.H{"error": appErr.Message})
			return
		}

		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, last.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
