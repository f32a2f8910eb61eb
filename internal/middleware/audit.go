package middleware

import (
	"github.com/thiagofalasca/finance-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit records every authenticated API call after the handler ran.
// Requests without a verified identity are not logged.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		id, ok := CallerIdentity(c)
		if !ok {
			return
		}

		userID := id.UserID
		entry := models.AuditLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: RequestIDFrom(c),
		}

		_ = db.Create(&entry).Error
	}
}
