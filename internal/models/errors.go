// Package models defines the persisted documents and the API error contract.
package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing group, post, comment or identity.
func NewNotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// NewValidationError reports a malformed request or a resource/route mismatch.
func NewValidationError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

// NewConflictError reports a uniqueness violation. It is surfaced as 400, like
// every other client mistake.
func NewConflictError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "CONFLICT", Message: message}
}

// NewUnauthorizedError reports a missing or unusable credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// NewForbiddenError reports a membership or ownership failure.
func NewForbiddenError(code, message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Code: code, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusOf returns the HTTP status carried by err, 500 for anything that is
// not an *AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes a standardized error response. Internal details are
// never sent to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Message: "Internal server error", Code: "INTERNAL_ERROR"}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Code = appErr.Code
		if status < fiber.StatusInternalServerError {
			response.Message = appErr.Message
		}
	} else if status < fiber.StatusInternalServerError {
		response.Message = err.Error()
		response.Code = ""
	}

	return c.Status(status).JSON(response)
}
