// Package validation implements declarative per-field request validation.
// Each route declares a set of rules; the Validate middleware evaluates all
// of them, accumulating failures across fields (fail-fast only inside a
// single field's chain) and short-circuiting with a 400 response when any
// rule failed. Values that pass are normalized and stored in the request
// context for the handler.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Source identifies where a field is read from.
type Source int

const (
	Body Source = iota
	Query
	Param
)

func (s Source) String() string {
	switch s {
	case Body:
		return "body"
	case Query:
		return "query"
	case Param:
		return "params"
	}
	return "unknown"
}

// FieldError is one entry of the {"errors": [...]} validation response.
type FieldError struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Message  string `json:"msg"`
	Value    string `json:"value,omitempty"`
}

// check validates and possibly normalizes a field value.
type check func(field, value string) (string, error)

// Rule is a chain of checks for one field.
type Rule struct {
	field    string
	source   Source
	optional bool
	checks   []check
}

// Field starts a rule for the named field at the given source.
func Field(name string, source Source) *Rule {
	return &Rule{field: name, source: source}
}

// Optional skips the whole chain when the field is absent.
func (r *Rule) Optional() *Rule {
	r.optional = true
	return r
}

func (r *Rule) add(c check) *Rule {
	r.checks = append(r.checks, c)
	return r
}

func (r *Rule) NotEmpty() *Rule {
	return r.add(func(field, value string) (string, error) {
		if strings.TrimSpace(value) == "" {
			return value, fmt.Errorf("The %s field must not be empty.", field)
		}
		return value, nil
	})
}

// IsInt requires an integer value >= min.
func (r *Rule) IsInt(min int) *Rule {
	return r.add(func(field, value string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min {
			return value, fmt.Errorf("The %s field must be an integer greater than or equal to %d.", field, min)
		}
		return strconv.Itoa(n), nil
	})
}

// IntRange requires an integer value within [min, max].
func (r *Rule) IntRange(min, max int) *Rule {
	return r.add(func(field, value string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min || n > max {
			return value, fmt.Errorf("The %s field must be an integer between %d and %d.", field, min, max)
		}
		return strconv.Itoa(n), nil
	})
}

// IsIn requires the value to be one of the allowed literals.
func (r *Rule) IsIn(allowed ...string) *Rule {
	return r.add(func(field, value string) (string, error) {
		for _, a := range allowed {
			if value == a {
				return value, nil
			}
		}
		return value, fmt.Errorf("The %s field must be one of: %s.", field, strings.Join(allowed, ", "))
	})
}

func (r *Rule) MaxLen(n int) *Rule {
	return r.add(func(field, value string) (string, error) {
		if len(value) > n {
			return value, fmt.Errorf("The %s field must have at most %d characters.", field, n)
		}
		return value, nil
	})
}

func (r *Rule) MinLen(n int) *Rule {
	return r.add(func(field, value string) (string, error) {
		if len(value) < n {
			return value, fmt.Errorf("The %s field must have at least %d characters.", field, n)
		}
		return value, nil
	})
}

func (r *Rule) IsFloat() *Rule {
	return r.add(func(field, value string) (string, error) {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return value, fmt.Errorf("The %s field must be a valid number.", field)
		}
		return value, nil
	})
}

// IsDate requires an ISO-8601 calendar date (YYYY-MM-DD).
func (r *Rule) IsDate() *Rule {
	return r.add(func(field, value string) (string, error) {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err != nil {
			return value, fmt.Errorf("The %s field must be a date in YYYY-MM-DD format.", field)
		}
		return strings.TrimSpace(value), nil
	})
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (r *Rule) IsEmail() *Rule {
	return r.add(func(field, value string) (string, error) {
		if !emailRe.MatchString(strings.TrimSpace(value)) {
			return value, fmt.Errorf("The %s field must be a valid email address.", field)
		}
		return value, nil
	})
}

func (r *Rule) NoWhitespace() *Rule {
	return r.add(func(field, value string) (string, error) {
		if strings.ContainsAny(value, " \t\n\r") {
			return value, fmt.Errorf("The %s field must not contain whitespace.", field)
		}
		return value, nil
	})
}

// Trim strips surrounding whitespace. Normalization is part of the
// contract: handlers see the trimmed value.
func (r *Rule) Trim() *Rule {
	return r.add(func(field, value string) (string, error) {
		return strings.TrimSpace(value), nil
	})
}

// Escape HTML-escapes the value.
func (r *Rule) Escape() *Rule {
	return r.add(func(field, value string) (string, error) {
		return html.EscapeString(value), nil
	})
}

// NormalizeEmail lowercases the address.
func (r *Rule) NormalizeEmail() *Rule {
	return r.add(func(field, value string) (string, error) {
		return strings.ToLower(strings.TrimSpace(value)), nil
	})
}

const formKey = "validation.form"

// Form returns the normalized values collected by Validate middlewares on
// this request. Missing optional fields have no entry.
func Form(c *gin.Context) map[string]string {
	if v, ok := c.Get(formKey); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return map[string]string{}
}

// Value returns one validated field, or "" when absent.
func Value(c *gin.Context, field string) string {
	return Form(c)[field]
}

// Has reports whether the field was present and validated.
func Has(c *gin.Context, field string) bool {
	_, ok := Form(c)[field]
	return ok
}

// lookup fetches the raw value for the rule and whether it was present.
func (r *Rule) lookup(c *gin.Context, body map[string]any) (string, bool) {
	switch r.source {
	case Body:
		v, ok := body[r.field]
		if !ok {
			return "", false
		}
		return coerceString(v), true
	case Query:
		vs, ok := c.Request.URL.Query()[r.field]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	case Param:
		v := c.Param(r.field)
		return v, v != ""
	}
	return "", false
}

// coerceString renders a decoded JSON value as text. Numbers keep their
// original digits (the decoder is configured with UseNumber).
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Validate evaluates all rules against the request. The JSON body is read
// at most once and restored so gin handlers can still bind it.
func Validate(rules ...*Rule) gin.HandlerFunc {
	needBody := false
	for _, r := range rules {
		if r.source == Body {
			needBody = true
		}
	}

	return func(c *gin.Context) {
		var body map[string]any
		if needBody && c.Request.Body != nil {
			raw, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			}
			if len(raw) > 0 {
				dec := json.NewDecoder(bytes.NewReader(raw))
				dec.UseNumber()
				_ = dec.Decode(&body)
			}
		}

		form := Form(c)
		var errs []FieldError

		for _, r := range rules {
			value, present := r.lookup(c, body)
			if !present && r.optional {
				continue
			}

			normalized := value
			failed := false
			for _, chk := range r.checks {
				v, err := chk(r.field, normalized)
				if err != nil {
					errs = append(errs, FieldError{
						Field:    r.field,
						Location: r.source.String(),
						Message:  err.Error(),
						Value:    value,
					})
					failed = true
					break
				}
				normalized = v
			}
			if !failed {
				form[r.field] = normalized
			}
		}

		if len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}

		c.Set(formKey, form)
		c.Next()
	}
}
