package service

import (
	"context"
	"errors"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
	"event-manager-api/pkg/logger/types"
)

// EventAttendeeStorage is the transactional gateway for registrations.
// Register must evaluate the capacity and duplicate checks and the insert
// against one consistent transactional scope; Unregister does the same
// for the membership check and the delete.
type EventAttendeeStorage interface {
	Register(ctx context.Context, event *entity.Event, userID uint) (*entity.EventAttendee, error)
	Unregister(ctx context.Context, eventID, userID uint) error
}

type attendeeEventStorage interface {
	Get(ctx context.Context, id uint) (*entity.Event, error)
}

type attendeeUserStorage interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// EventAttendeeService is the join/leave state machine for a
// (event, user) pair.
type EventAttendeeService struct {
	logger *types.Logger

	storage      EventAttendeeStorage
	eventStorage attendeeEventStorage
	userStorage  attendeeUserStorage
}

func NewEventAttendeeService(
	logger *types.Logger,
	storage EventAttendeeStorage,
	eventStorage attendeeEventStorage,
	userStorage attendeeUserStorage,
) *EventAttendeeService {
	return &EventAttendeeService{
		logger: logger,

		storage:      storage,
		eventStorage: eventStorage,
		userStorage:  userStorage,
	}
}

// resolveActor requires a stored user row. The virtual master admin has
// none and therefore cannot hold registrations.
func (s *EventAttendeeService) resolveActor(ctx context.Context, claims Claims) (*entity.User, error) {
	user, err := s.userStorage.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, errorz.ErrUserNotFound) {
			return nil, errorz.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Join registers the actor for the event. Capacity is only enforced when
// the event carries a limit; an unset limit means unlimited.
func (s *EventAttendeeService) Join(ctx context.Context, claims Claims, eventID uint) (*entity.EventAttendee, error) {
	actor, err := s.resolveActor(ctx, claims)
	if err != nil {
		return nil, err
	}

	event, err := s.eventStorage.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registration, err := s.storage.Register(ctx, event, actor.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("user %d registered for event %d", actor.ID, event.ID)
	return registration, nil
}

// Leave removes the actor's registration. Leaving without a prior
// registration is an error, not a silent no-op.
func (s *EventAttendeeService) Leave(ctx context.Context, claims Claims, eventID uint) error {
	actor, err := s.resolveActor(ctx, claims)
	if err != nil {
		return err
	}

	if err = s.storage.Unregister(ctx, eventID, actor.ID); err != nil {
		return err
	}

	s.logger.Infof("user %d unregistered from event %d", actor.ID, eventID)
	return nil
}
