// Package authz contains the client-side moderation gate: pure predicates
// deciding whether the acting session may perform a privileged action on a
// target account. The authoritative check is server-side; these rules exist
// for UX and defense in depth.
//
// Rule set: an admin may act on any non-admin target other than themselves
// and the super-admin; acting on another admin is reserved to the super-admin.
package authz

import "github.com/x3alone/01blog/internal/models"

// SuperAdminID is the distinguished privileged identity exempt from
// demotion and bans: the first account ever registered.
const SuperAdminID int64 = 1

// Actor is the acting session's identity, taken from the token claims.
type Actor struct {
	ID   int64
	Role models.Role
}

// canModerate is the shared gate for all privileged actions. Deterministic in
// (actor, target) with no hidden state.
func canModerate(actor Actor, target models.User) bool {
	if actor.Role != models.RoleAdmin {
		return false
	}
	if target.ID == SuperAdminID {
		return false
	}
	if target.ID == actor.ID {
		return false
	}
	if target.Role == models.RoleAdmin {
		return actor.ID == SuperAdminID
	}
	return true
}

// CanPromote reports whether actor may change target's role upward.
func CanPromote(actor Actor, target models.User) bool {
	return canModerate(actor, target)
}

// CanDemote reports whether actor may change target's role downward.
func CanDemote(actor Actor, target models.User) bool {
	return canModerate(actor, target)
}

// CanBan reports whether actor may toggle target's banned flag.
func CanBan(actor Actor, target models.User) bool {
	return canModerate(actor, target)
}
