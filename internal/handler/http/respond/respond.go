// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"magazine-catalog/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments are substrings of messages that are fine to show to clients.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot be",
	"immutable",
	"rate limit",
	"unauthorized",
	"forbidden",
	"too large",
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors are returned as "internal server error", with details logged for debugging.
// Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	lowerMsg := strings.ToLower(msg)
	isSafe := false
	for _, safe := range safeFragments {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500エラーは常に内部エラーとして扱う
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// StatusFor maps a use-case error onto an HTTP status code.
// Errors matching any of notFound yield 404; domain type and value errors yield 400;
// immutable attribute errors yield 409; an oversized body yields 413; anything else is a 500.
func StatusFor(err error, notFound ...error) int {
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return http.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, entity.ErrType), errors.Is(err, entity.ErrValue), errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrImmutableAttribute):
		return http.StatusConflict
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err with the status chosen by StatusFor.
func FromError(w http.ResponseWriter, err error, notFound ...error) {
	SafeError(w, StatusFor(err, notFound...), err)
}
