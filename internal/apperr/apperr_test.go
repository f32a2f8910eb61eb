package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound(""), http.StatusNotFound},
		{Unauthorized(""), http.StatusUnauthorized},
		{Authentication(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Conflict(""), http.StatusConflict},
	}

	for _, c := range cases {
		if got := c.err.Status(); got != c.want {
			t.Errorf("Status() for kind %d = %d, want %d", c.err.Kind, got, c.want)
		}
	}
}

func TestDefaultMessages(t *testing.T) {
	if NotFound("").Error() != "Resource not found." {
		t.Errorf("NotFound default message = %q", NotFound("").Error())
	}
	if Conflict("Email already in use.").Error() != "Email already in use." {
		t.Errorf("explicit message not preserved")
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", NotFound("No users found."))

	var appErr *Error
	if !errors.As(wrapped, &appErr) {
		t.Fatalf("errors.As failed on wrapped *Error")
	}
	if appErr.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want 404", appErr.Status())
	}
}
