package handlers

import (
	"github.com/gofiber/fiber/v2"

	"event-manager-api/internal/domain/service"
)

type ParticipationHandler struct {
	attendeeService *service.EventAttendeeService
}

func NewParticipationHandler(attendeeService *service.EventAttendeeService) *ParticipationHandler {
	return &ParticipationHandler{
		attendeeService: attendeeService,
	}
}

func (h *ParticipationHandler) Join(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	if _, err = h.attendeeService.Join(c.UserContext(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully registered for the event"})
}

func (h *ParticipationHandler) Leave(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	if err = h.attendeeService.Leave(c.UserContext(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully unregistered from the event"})
}
