package service

import (
	"context"
	"errors"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/dto"
	"event-manager-api/internal/domain/entity"
	"event-manager-api/internal/domain/policy"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id uint) (*entity.Event, error)
	GetAll(ctx context.Context) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id uint) error
}

type eventUserStorage interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type EventService struct {
	eventStorage EventStorage
	userStorage  eventUserStorage
	policy       policy.Policy
}

func NewEventService(eventStorage EventStorage, userStorage eventUserStorage, policy policy.Policy) *EventService {
	return &EventService{
		eventStorage: eventStorage,
		userStorage:  userStorage,
		policy:       policy,
	}
}

// resolveActor turns token claims into an actor for authorization. The
// master admin has no stored row and resolves to a virtual admin-role
// identity instead.
func (s *EventService) resolveActor(ctx context.Context, claims Claims) (*entity.User, error) {
	if s.policy.IsMaster(claims.Subject) {
		return &entity.User{Username: claims.Subject, Role: entity.Admin}, nil
	}

	user, err := s.userStorage.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return nil, errorz.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Create persists a draft event owned by the requesting organizer.
func (s *EventService) Create(ctx context.Context, claims Claims, draft dto.EventCreate) (*entity.Event, error) {
	actor, err := s.resolveActor(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !actor.HasRole(entity.Organizer) {
		return nil, errorz.ErrOrganizersOnly
	}

	status := entity.EventStatus(draft.Status)
	if status == "" {
		status = entity.StatusScheduled
	}

	return s.eventStorage.Create(ctx, &entity.Event{
		Title:        draft.Title,
		Description:  draft.Description,
		Location:     draft.Location,
		Date:         draft.Date,
		Status:       status,
		OrganizerID:  actor.ID,
		MaxAttendees: draft.MaxAttendees,
		Tags:         draft.Tags,
	})
}

// Update applies only the provided patch fields. Allowed for the owning
// organizer and for admin or master admin.
func (s *EventService) Update(ctx context.Context, claims Claims, id uint, patch dto.EventUpdate) (*entity.Event, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.resolveActor(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !s.policy.IsOwnerOrAdmin(actor, event) {
		return nil, errorz.ErrAdminsOnly
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Status != nil {
		event.Status = entity.EventStatus(*patch.Status)
	}
	if patch.Tags != nil {
		event.Tags = patch.Tags
	}

	return s.eventStorage.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, claims Claims, id uint) error {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.resolveActor(ctx, claims)
	if err != nil {
		return err
	}
	if !s.policy.IsOwnerOrAdmin(actor, event) {
		return errorz.ErrAdminsOnly
	}

	return s.eventStorage.Delete(ctx, id)
}

func (s *EventService) Get(ctx context.Context, id uint) (*entity.Event, error) {
	return s.eventStorage.Get(ctx, id)
}

func (s *EventService) GetAll(ctx context.Context) ([]entity.Event, error) {
	return s.eventStorage.GetAll(ctx)
}
