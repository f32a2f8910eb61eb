// Package handler adapts service calls to HTTP. Dispatch is the single
// request dispatcher: it runs a service function, writes the configured
// status on success, and forwards errors untouched to the centralized
// responder.
package handler

import (
	"strconv"
	"time"

	"github.com/thiagofalasca/finance-api/internal/middleware"
	"github.com/thiagofalasca/finance-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// ServiceFunc runs the business logic for one route.
type ServiceFunc func(c *gin.Context) (interface{}, error)

// Dispatch wraps a service function. It never inspects error types; that
// is the error responder's job.
func Dispatch(status int, fn ServiceFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := fn(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(status, result)
	}
}

// caller returns the verified identity. Routes behind the auth gates
// always have one.
func caller(c *gin.Context) middleware.Identity {
	id, _ := middleware.CallerIdentity(c)
	return id
}

// Validated-form accessors. Values were already checked by the validation
// middleware, so parse failures fall back to the zero value.

func formUint(c *gin.Context, field string) uint {
	n, _ := strconv.ParseUint(validation.Value(c, field), 10, 64)
	return uint(n)
}

func formInt(c *gin.Context, field string) int {
	n, _ := strconv.Atoi(validation.Value(c, field))
	return n
}

func formFloat(c *gin.Context, field string) float64 {
	f, _ := strconv.ParseFloat(validation.Value(c, field), 64)
	return f
}

func formDate(c *gin.Context, field string) time.Time {
	t, _ := time.Parse("2006-01-02", validation.Value(c, field))
	return t
}

func formString(c *gin.Context, field string) string {
	return validation.Value(c, field)
}

// optString returns a pointer only when the field was supplied.
func optString(c *gin.Context, field string) *string {
	if !validation.Has(c, field) {
		return nil
	}
	v := validation.Value(c, field)
	return &v
}

func optFloat(c *gin.Context, field string) *float64 {
	if !validation.Has(c, field) {
		return nil
	}
	f, _ := strconv.ParseFloat(validation.Value(c, field), 64)
	return &f
}

func optDate(c *gin.Context, field string) *time.Time {
	if !validation.Has(c, field) {
		return nil
	}
	t, _ := time.Parse("2006-01-02", validation.Value(c, field))
	return &t
}
