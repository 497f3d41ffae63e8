package errorz

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAdminsOnly     = errors.New("access denied, admins only")
	ErrOrganizersOnly = errors.New("only event organizers can create events")
	ErrForbidden      = errors.New("forbidden")

	ErrReservedUsername = errors.New("this username is reserved for the system")
	ErrUsernameTaken    = errors.New("username already exists")

	ErrUserNotFound  = errors.New("user not found")
	ErrEventNotFound = errors.New("event not found")

	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("user already registered for this event")
	ErrNotRegistered     = errors.New("you are not registered for this event")
)
