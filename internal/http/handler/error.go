package handler

import (
	"errors"
	"fmt"

	"docstore/internal/http/middleware"
	"docstore/internal/model"
	"docstore/internal/repository"
	"docstore/internal/schema"
	"docstore/internal/service"
	"github.com/gofiber/fiber/v2"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details,omitempty"`
}

// errorDetail points at one offending input field.
type errorDetail struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
// - details: optional field-level problems
func writeError(c *fiber.Ctx, status int, code, message string, details ...errorDetail) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service and storage errors into responses.
// Validator rejections become 400 with one detail per field; constraint violations become 409.
func writeServiceError(c *fiber.Ctx, err error, notFound string) error {
	var (
		ve *schema.ValidationError
		ce *repository.ConstraintError
	)
	switch {
	case errors.As(err, &ve):
		details := make([]errorDetail, 0, len(ve.Issues))
		for _, is := range ve.Issues {
			details = append(details, errorDetail{Field: is.Field, Code: string(is.Code), Message: is.Message})
		}
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", details...)
	case errors.As(err, &ce):
		field := fieldName(ce.Table, ce.Column)
		msg := fmt.Sprintf("%s violates a %s constraint", field, ce.Kind)
		if ce.Kind == repository.Unique {
			msg = field + " already exists"
		}
		return writeError(c, fiber.StatusConflict, "CONFLICT", msg,
			errorDetail{Field: field, Code: string(ce.Kind), Message: msg})
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// fieldName maps a storage column back to its shape field name.
func fieldName(table, column string) string {
	for _, t := range model.Tables() {
		if t.Name() != table {
			continue
		}
		for _, col := range t.Columns() {
			if col.Name == column {
				return col.Field
			}
		}
	}
	return column
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
