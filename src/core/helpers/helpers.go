package helpers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ctan76-dev/suckthumb/src/core/faults"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
func Validate(val interface{}) error {
	return Validator.Struct(val)
}

// HandleSuccess sends a structured JSON response for successful requests.
func HandleSuccess(context *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"error":   nil,
		"data":    data,
	})
}

// HandleError sends a structured JSON response for errors.
func HandleError(context *fiber.Ctx, statusCode int, message string, err error) error {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return context.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"error":   errMsg,
		"data":    nil,
	})
}

// FaultStatus maps a store failure to its HTTP status code.
func FaultStatus(err error) int {
	switch {
	case errors.Is(err, faults.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, faults.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, faults.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, faults.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, faults.ErrBackend):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleFault sends the store failure with its mapped status code.
func HandleFault(context *fiber.Ctx, message string, err error) error {
	return HandleError(context, FaultStatus(err), message, err)
}
