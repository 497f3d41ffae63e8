package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"event-manager-api/internal/domain/dto"
	"event-manager-api/internal/domain/service"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *validator.Validate
}

func NewEventHandler(eventService *service.EventService, validator *validator.Validate) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

// Create persists a new event for the requesting organizer.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var draft dto.EventCreate
	if err := c.BodyParser(&draft); err != nil {
		return respondValidation(c, err)
	}
	if err := h.validator.Struct(draft); err != nil {
		return respondValidation(c, err)
	}

	event, err := h.eventService.Create(c.UserContext(), claimsFrom(c), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewEventResponse(event))
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	var patch dto.EventUpdate
	if err = c.BodyParser(&patch); err != nil {
		return respondValidation(c, err)
	}
	if err = h.validator.Struct(patch); err != nil {
		return respondValidation(c, err)
	}

	event, err := h.eventService.Update(c.UserContext(), claimsFrom(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewEventResponse(event))
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	if err = h.eventService.Delete(c.UserContext(), claimsFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}

// Get is public and includes the attendee list as user ids.
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, err)
	}

	event, err := h.eventService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewEventResponse(event))
}

// List is public and returns every event with its attendee list.
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.eventService.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewEventResponses(events))
}
