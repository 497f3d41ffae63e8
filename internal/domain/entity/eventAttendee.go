package entity

import "time"

// EventAttendee links one user to one event. The composite unique index
// backs the "one registration per (event, user)" invariant at the store
// level as well.
type EventAttendee struct {
	ID       uint      `gorm:"primarykey"`
	EventID  uint      `gorm:"not null;uniqueIndex:idx_event_attendees_event_user"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_event_attendees_event_user"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}
