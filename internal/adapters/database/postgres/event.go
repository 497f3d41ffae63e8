package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets an event from the database by id, with its
// registrations preloaded.
func (s *EventStorage) Get(ctx context.Context, id uint) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Preload("Attendees").Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrEventNotFound
	}
	return &event, err
}

// GetAll is a function that gets all events from the database, with their
// registrations preloaded.
func (s *EventStorage) GetAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Preload("Attendees").Find(&events).Error
	return events, err
}

// Update is a function that updates an event in the database. Loaded
// registrations are read-only here and stay untouched.
func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&event).Error
	return event, err
}

// Delete is a function that deletes an event from the database by id.
func (s *EventStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.Event{}, id).Error
}
