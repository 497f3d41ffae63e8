package entity

import (
	"time"

	"github.com/lib/pq"
)

type EventStatus string

const (
	StatusScheduled EventStatus = "Scheduled"
	StatusOngoing   EventStatus = "Ongoing"
	StatusCompleted EventStatus = "Completed"
	StatusCancelled EventStatus = "Cancelled"
)

type Event struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"not null"`
	Description string
	Location    string      `gorm:"not null"`
	Date        time.Time   `gorm:"not null"`
	Status      EventStatus `gorm:"not null;default:Scheduled"`
	OrganizerID uint        `gorm:"not null"`
	// nil means the event has no attendee limit.
	MaxAttendees *int
	Tags         pq.StringArray  `gorm:"type:text[]"`
	Attendees    []EventAttendee `gorm:"foreignKey:EventID"`
}

// HasCapacityFor reports whether one more registration fits given the
// current attendee count.
func (e *Event) HasCapacityFor(count int64) bool {
	if e.MaxAttendees == nil {
		return true
	}
	return count < int64(*e.MaxAttendees)
}
