// Package policy holds the pure authorization decisions shared by the
// lifecycle services. The master admin is compared against an injected
// username, never against a stored row.
package policy

import (
	"strings"

	"event-manager-api/internal/domain/entity"
)

type Policy struct {
	masterUsername string
}

func New(masterUsername string) Policy {
	return Policy{masterUsername: masterUsername}
}

// IsMaster reports whether the given subject is the configured master
// admin identity.
func (p Policy) IsMaster(username string) bool {
	return username == p.masterUsername
}

// IsReservedUsername guards registration: the master username may not be
// taken by a stored user, regardless of case.
func (p Policy) IsReservedUsername(username string) bool {
	return strings.EqualFold(username, p.masterUsername)
}

func (p Policy) IsAdminOrMaster(actor *entity.User) bool {
	if actor == nil {
		return false
	}
	return actor.HasRole(entity.Admin) || p.IsMaster(actor.Username)
}

func (p Policy) IsOwnerOrAdmin(actor *entity.User, event *entity.Event) bool {
	if actor == nil || event == nil {
		return false
	}
	return actor.ID == event.OrganizerID || p.IsAdminOrMaster(actor)
}

// IsAdminOrMasterClaims decides from token claims alone, without
// reloading the actor. Used by the user-management routes.
func (p Policy) IsAdminOrMasterClaims(role, subject string) bool {
	return strings.EqualFold(role, string(entity.Admin)) || p.IsMaster(subject)
}

// CanRegisterUsers requires the literal admin role claim. There is no
// master-username bypass here: the master login token itself carries the
// admin role, while a stored user merely named like the master does not
// get special treatment.
func (p Policy) CanRegisterUsers(role string) bool {
	return strings.EqualFold(role, string(entity.Admin))
}
