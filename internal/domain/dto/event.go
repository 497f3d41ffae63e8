package dto

import (
	"time"

	"event-manager-api/internal/domain/entity"
)

type EventCreate struct {
	Title        string    `json:"title" validate:"required,min=3,max=100"`
	Description  string    `json:"description" validate:"omitempty,max=500"`
	Location     string    `json:"location" validate:"required,min=3,max=200"`
	Date         time.Time `json:"date" validate:"required,futuredate"`
	Status       string    `json:"status" validate:"omitempty,eventstatus"`
	MaxAttendees *int      `json:"max_attendees" validate:"omitempty,gt=0"`
	Tags         []string  `json:"tags" validate:"omitempty,dive,required"`
}

// EventUpdate carries partial semantics: nil fields stay untouched.
type EventUpdate struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Location    *string    `json:"location" validate:"omitempty,min=3,max=200"`
	Date        *time.Time `json:"date" validate:"omitempty,futuredate"`
	Status      *string    `json:"status" validate:"omitempty,eventstatus"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,required"`
}

// AttendeeResponse exposes only the user id of a registration.
type AttendeeResponse struct {
	UserID uint `json:"user_id"`
}

type EventResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Location     string             `json:"location"`
	Date         time.Time          `json:"date"`
	Status       string             `json:"status"`
	OrganizerID  uint               `json:"organizer_id"`
	MaxAttendees *int               `json:"max_attendees"`
	Tags         []string           `json:"tags,omitempty"`
	Attendees    []AttendeeResponse `json:"attendees"`
}

func NewEventResponse(event *entity.Event) EventResponse {
	attendees := make([]AttendeeResponse, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		attendees = append(attendees, AttendeeResponse{UserID: attendee.UserID})
	}

	return EventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		Location:     event.Location,
		Date:         event.Date,
		Status:       string(event.Status),
		OrganizerID:  event.OrganizerID,
		MaxAttendees: event.MaxAttendees,
		Tags:         event.Tags,
		Attendees:    attendees,
	}
}

func NewEventResponses(events []entity.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, NewEventResponse(&events[i]))
	}
	return responses
}
