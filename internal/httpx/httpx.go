// Package httpx provides the JSON request/response plumbing shared by all
// handlers: response writers, the request decoder, and struct validation
// built on go-playground/validator.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire, not as Go identifiers.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// JSON writes v as JSON with the given status code. Encoding errors are
// silently discarded — use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a standard {"error": code, "message": message} response.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, map[string]string{"error": code, "message": message})
}

// DecodeValid decodes the JSON request body into T and validates it against
// its validate tags. On failure it writes a 400 response listing the failing
// fields and returns ok=false; the handler should simply return.
func DecodeValid[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "ValidationError", "invalid JSON body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "ValidationError",
			"message": "validation failed",
			"fields":  fieldErrors(err),
		})
		return req, false
	}
	return req, true
}

// fieldErrors converts validator.ValidationErrors into a field → message map.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, e := range ve {
		out[e.Field()] = fieldMessage(e)
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("minimum is %s", e.Param())
	case "max":
		return fmt.Sprintf("maximum is %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed %q validation", e.Tag())
	}
}
