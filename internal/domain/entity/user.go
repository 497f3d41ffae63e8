package entity

import (
	"strings"
	"time"
)

// Role is the closed set of user roles. Master admin is a virtual,
// configuration-defined identity and is never stored as a row, but the
// role name stays reserved so nobody can register it.
type Role string

const (
	Attendee    Role = "attendee"
	Organizer   Role = "organizer"
	Admin       Role = "admin"
	MasterAdmin Role = "masteradmin"
)

// ParseRole normalizes a role string to the closed enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(s)) {
	case Attendee:
		return Attendee, true
	case Organizer:
		return Organizer, true
	case Admin:
		return Admin, true
	case MasterAdmin:
		return MasterAdmin, true
	}
	return "", false
}

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"` // bcrypt hash, never the raw credential
	Role      Role   `gorm:"not null"`
	IsActive  bool   `gorm:"not null;default:true"`
}

func (u *User) HasRole(role Role) bool {
	return strings.EqualFold(string(u.Role), string(role))
}
