package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/entity"
)

type EventAttendeeStorage struct {
	db *gorm.DB
}

func NewEventAttendeeStorage(db *gorm.DB) *EventAttendeeStorage {
	return &EventAttendeeStorage{
		db: db,
	}
}

// Register inserts a registration for (event, user). The capacity check,
// the duplicate check and the insert run in one transaction so they see
// the same instant; any failure rolls the whole thing back.
func (s *EventAttendeeStorage) Register(ctx context.Context, event *entity.Event, userID uint) (*entity.EventAttendee, error) {
	registration := &entity.EventAttendee{
		EventID: event.ID,
		UserID:  userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if event.MaxAttendees != nil {
			var count int64
			if err := tx.Model(&entity.EventAttendee{}).Where("event_id = ?", event.ID).Count(&count).Error; err != nil {
				return err
			}
			if !event.HasCapacityFor(count) {
				return errorz.ErrEventFull
			}
		}

		var existing entity.EventAttendee
		err := tx.Where("event_id = ? AND user_id = ?", event.ID, userID).First(&existing).Error
		if err == nil {
			return errorz.ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(registration).Error
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// Unregister removes the registration for (event, user) in one
// transaction. A missing row is an error, not a no-op.
func (s *EventAttendeeStorage) Unregister(ctx context.Context, eventID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration entity.EventAttendee
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorz.ErrNotRegistered
		}
		if err != nil {
			return err
		}

		return tx.Delete(&registration).Error
	})
}
