package controller

import (
	"errors"

	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// mapServiceError turns service sentinels into client errors. Anything else
// is left for the central error handler to log and hide.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrFileNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidPath),
		errors.Is(err, service.ErrInvalidLogKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
