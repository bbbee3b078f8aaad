package admin

import (
	"github.com/gofiber/fiber/v2"
)

// Standard error codes
const (
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeUnsupported    = "NOT_IMPLEMENTED"
)

// Response builder functions for Fiber handlers. These provide a
// unified interface for API responses.

// RespondSuccess sends a successful response with data.
func RespondSuccess(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// RespondMessage sends a successful response with a message only.
func RespondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// RespondError sends an error response with a custom status code.
func RespondError(c *fiber.Ctx, status int, code, message, details string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// RespondBadRequest sends a 400 Bad Request error.
func RespondBadRequest(c *fiber.Ctx, message, details string) error {
	return RespondError(c, fiber.StatusBadRequest, ErrCodeBadRequest, message, details)
}

// RespondValidationError sends a 400 Bad Request error for validation
// failures.
func RespondValidationError(c *fiber.Ctx, message, details string) error {
	return RespondError(c, fiber.StatusBadRequest, ErrCodeValidation, message, details)
}

// RespondNotFound sends a 404 Not Found error.
func RespondNotFound(c *fiber.Ctx, resource, details string) error {
	return RespondError(c, fiber.StatusNotFound, ErrCodeNotFound, resource+" not found", details)
}

// RespondServiceUnavailable sends a 503 Service Unavailable error.
func RespondServiceUnavailable(c *fiber.Ctx, message, details string) error {
	return RespondError(c, fiber.StatusServiceUnavailable, ErrCodeUnavailable, message, details)
}

// RespondNotImplemented sends a 501 Not Implemented error.
func RespondNotImplemented(c *fiber.Ctx, message, details string) error {
	return RespondError(c, fiber.StatusNotImplemented, ErrCodeUnsupported, message, details)
}

// RespondInternalError sends a 500 Internal Server Error.
func RespondInternalError(c *fiber.Ctx, message, details string) error {
	return RespondError(c, fiber.StatusInternalServerError, ErrCodeInternalServer, message, details)
}
