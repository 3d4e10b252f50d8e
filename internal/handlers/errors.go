package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrInputTooShort),
		errors.Is(err, services.ErrUnsupportedFile):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrSessionNotFound),
		errors.Is(err, repositories.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrRequestInProgress):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUnparsableOutput):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrMissingCredential),
		errors.Is(err, services.ErrNoCandidates):
		return fiber.StatusInternalServerError
	case errors.Is(err, services.ErrAuthFailure),
		errors.Is(err, services.ErrAllModelsFailed),
		errors.Is(err, services.ErrProfileAnalysis):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the fiber error handler for the API.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		logger.Get().WithError(err).WithField("path", c.Path()).Error("❌ Request failed")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
