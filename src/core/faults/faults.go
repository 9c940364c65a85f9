package faults

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every store. Handlers translate these to HTTP
// statuses; stores never see a fiber.Ctx.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrBackend         = errors.New("backend failure")
)

// Backend wraps a database or storage error so callers can match it with
// errors.Is(err, ErrBackend) while keeping the original cause in the chain.
func Backend(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrBackend, err)
}

// Validation wraps a human-readable reason for a rejected input.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
