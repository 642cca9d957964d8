package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeAndValidate reads a JSON body into target and runs struct validation.
// It writes the error response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(target); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeUnavailable
	default:
		return domain.ErrorTypeInternal
	}
}

// handleServiceError maps workflow errors to HTTP responses. Unknown errors
// are logged and reported as 500 without detail.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateOpenRequest),
		errors.Is(err, service.ErrDuplicateSubmission),
		errors.Is(err, service.ErrRequestClosed):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCost), errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBusy):
		w.Header().Set("Retry-After", "1")
		respondWithError(w, http.StatusServiceUnavailable, "The quote request is being updated, retry shortly")
	case errors.Is(err, service.ErrUserContextRequired):
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	default:
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// parseIDParam parses a UUID path parameter, writing a 400 on failure
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: must be a valid UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated caller, writing a 401 when absent
func currentUser(w http.ResponseWriter, r *http.Request) (*auth.UserContext, bool) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return userCtx, true
}

// subjectParam resolves an optional ?<name>= filter. It defaults to the
// caller; only admins may look at another user.
func subjectParam(w http.ResponseWriter, r *http.Request, userCtx *auth.UserContext, name string) (uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return userCtx.UserID, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: must be a valid UUID", name))
		return uuid.Nil, false
	}
	if id != userCtx.UserID && !userCtx.IsAdmin() {
		respondWithError(w, http.StatusForbidden, "You are not allowed to perform this action")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}
