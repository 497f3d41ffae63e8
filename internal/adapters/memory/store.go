// Package memory provides mutex-guarded in-memory implementations of the
// service storage interfaces. They mirror the postgres adapters' error
// contract and back the unit and HTTP tests.
package memory

import (
	"context"
	"sync"
	"time"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
)

type UserStorage struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]entity.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		nextID: 1,
		users:  make(map[uint]entity.User),
	}
}

func (s *UserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return user, nil
}

func (s *UserStorage) Get(_ context.Context, id uint) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errorz.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStorage) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, errorz.ErrUserNotFound
}

func (s *UserStorage) GetAll(_ context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *UserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, errorz.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return user, nil
}

func (s *UserStorage) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

type registrationKey struct {
	eventID uint
	userID  uint
}

type EventStorage struct {
	mu            sync.RWMutex
	nextID        uint
	events        map[uint]entity.Event
	registrations *EventAttendeeStorage
}

// NewEventStorage builds an event store that derives attendee lists from
// the given registration store, like the postgres preload does.
func NewEventStorage(registrations *EventAttendeeStorage) *EventStorage {
	return &EventStorage{
		nextID:        1,
		events:        make(map[uint]entity.Event),
		registrations: registrations,
	}
}

func (s *EventStorage) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = s.nextID
	s.nextID++
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	s.events[event.ID] = *event
	return event, nil
}

func (s *EventStorage) Get(_ context.Context, id uint) (*entity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, errorz.ErrEventNotFound
	}
	event.Attendees = s.registrations.byEventID(id)
	return &event, nil
}

func (s *EventStorage) GetAll(_ context.Context) ([]entity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]entity.Event, 0, len(s.events))
	for _, event := range s.events {
		event.Attendees = s.registrations.byEventID(event.ID)
		events = append(events, event)
	}
	return events, nil
}

func (s *EventStorage) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return nil, errorz.ErrEventNotFound
	}
	event.UpdatedAt = time.Now()
	stored := *event
	stored.Attendees = nil
	s.events[event.ID] = stored
	return event, nil
}

func (s *EventStorage) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
	return nil
}

type EventAttendeeStorage struct {
	mu            sync.Mutex
	nextID        uint
	registrations map[registrationKey]entity.EventAttendee
}

func NewEventAttendeeStorage() *EventAttendeeStorage {
	return &EventAttendeeStorage{
		nextID:        1,
		registrations: make(map[registrationKey]entity.EventAttendee),
	}
}

func (s *EventAttendeeStorage) Register(_ context.Context, event *entity.Event, userID uint) (*entity.EventAttendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.MaxAttendees != nil {
		var count int64
		for key := range s.registrations {
			if key.eventID == event.ID {
				count++
			}
		}
		if !event.HasCapacityFor(count) {
			return nil, errorz.ErrEventFull
		}
	}

	key := registrationKey{eventID: event.ID, userID: userID}
	if _, ok := s.registrations[key]; ok {
		return nil, errorz.ErrAlreadyRegistered
	}

	registration := entity.EventAttendee{
		ID:       s.nextID,
		EventID:  event.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	s.nextID++
	s.registrations[key] = registration
	return &registration, nil
}

func (s *EventAttendeeStorage) Unregister(_ context.Context, eventID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := registrationKey{eventID: eventID, userID: userID}
	if _, ok := s.registrations[key]; !ok {
		return errorz.ErrNotRegistered
	}
	delete(s.registrations, key)
	return nil
}

func (s *EventAttendeeStorage) byEventID(eventID uint) []entity.EventAttendee {
	s.mu.Lock()
	defer s.mu.Unlock()

	var attendees []entity.EventAttendee
	for key, registration := range s.registrations {
		if key.eventID == eventID {
			attendees = append(attendees, registration)
		}
	}
	return attendees
}

// TokenStorage is the in-memory counterpart of the redis revoked-token
// storage.
type TokenStorage struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenStorage() *TokenStorage {
	return &TokenStorage{
		revoked: make(map[string]time.Time),
	}
}

func (s *TokenStorage) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (s *TokenStorage) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}
