package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// APIError is an error response with optional details and login redirect
type APIError struct {
	Code     int
	Message  string
	Details  string
	Redirect string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// fail converts a service error into an HTTP error. fallback is the
// client-facing message for errors that are not the caller's fault.
func fail(err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{Code: fiber.StatusBadRequest, Message: verr.Error()}
	case errors.Is(err, domain.ErrValidation):
		return &APIError{Code: fiber.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrLocationNotFound):
		return &APIError{Code: fiber.StatusNotFound, Message: "Location not found", Details: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return &APIError{Code: fiber.StatusNotFound, Message: "Not found", Details: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return &APIError{Code: fiber.StatusUnauthorized, Message: "Unauthorized"}
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return &APIError{Code: fiber.StatusConflict, Message: err.Error()}
	}

	log.Printf("%s: %v", fallback, err)
	return &APIError{Code: fiber.StatusInternalServerError, Message: fallback, Details: err.Error()}
}

// ErrorHandler renders every error as {error, message[, details][, redirect]}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	body := fiber.Map{
		"error":   true,
		"message": "Internal Server Error",
	}

	var apiErr *APIError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
		body["message"] = apiErr.Message
		if apiErr.Details != "" {
			body["details"] = apiErr.Details
		}
		if apiErr.Redirect != "" {
			body["redirect"] = apiErr.Redirect
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		body["message"] = fiberErr.Message
	default:
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(body)
}
