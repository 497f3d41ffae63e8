package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"event-manager-api/internal/domain/common/errorz"
)

// respondError maps the domain error taxonomy onto the HTTP contract.
// Unknown errors become a generic 500; the cause is left to the request
// logger and never exposed to the caller.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errorz.ErrInvalidToken), errors.Is(err, errorz.ErrInvalidCredentials):
		return respondStatus(c, fiber.StatusUnauthorized, err)
	case errors.Is(err, errorz.ErrAdminsOnly),
		errors.Is(err, errorz.ErrOrganizersOnly),
		errors.Is(err, errorz.ErrReservedUsername),
		errors.Is(err, errorz.ErrForbidden):
		return respondStatus(c, fiber.StatusForbidden, err)
	case errors.Is(err, errorz.ErrUserNotFound), errors.Is(err, errorz.ErrEventNotFound):
		return respondStatus(c, fiber.StatusNotFound, err)
	case errors.Is(err, errorz.ErrUsernameTaken),
		errors.Is(err, errorz.ErrEventFull),
		errors.Is(err, errorz.ErrAlreadyRegistered),
		errors.Is(err, errorz.ErrNotRegistered):
		return respondStatus(c, fiber.StatusBadRequest, err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

func respondStatus(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// respondValidation reports which fields failed which rule.
func respondValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldError.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}
