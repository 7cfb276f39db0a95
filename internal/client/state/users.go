package state

import (
	"context"
	"sync"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/client/authz"
	"github.com/x3alone/01blog/internal/client/session"
	"github.com/x3alone/01blog/internal/models"
)

// UserList is the moderation dashboard's local view of all accounts. Role and
// ban toggles are gated by the authz rules before anything is applied or sent.
type UserList struct {
	mu    sync.Mutex
	users []models.User

	coord   *Coordinator
	api     *api.Client
	session *session.Publisher
}

// NewUserList builds an empty user list for the acting session.
func NewUserList(coord *Coordinator, client *api.Client, sess *session.Publisher) *UserList {
	return &UserList{coord: coord, api: client, session: sess}
}

// Refresh replaces the list with the server's state.
func (l *UserList) Refresh(ctx context.Context) error {
	users, err := l.api.AllUsers(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.users = users
	l.mu.Unlock()
	return nil
}

// Users returns a snapshot of the list.
func (l *UserList) Users() []models.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.User, len(l.users))
	copy(out, l.users)
	return out
}

// Get returns the user with the given id from the local list.
func (l *UserList) Get(id int64) (models.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, u := range l.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (l *UserList) patch(id int64, fn func(*models.User)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.users {
		if l.users[i].ID == id {
			fn(&l.users[i])
			return
		}
	}
}

// actor derives the acting identity from the session claims.
func (l *UserList) actor() (authz.Actor, bool) {
	claims, ok := l.session.Claims()
	if !ok {
		return authz.Actor{}, false
	}
	return authz.Actor{ID: claims.UserID, Role: claims.Role}, true
}

// ToggleRole promotes a regular user or demotes an admin, optimistically
// patching the local record. Forbidden by the rules → no-op, returns false.
func (l *UserList) ToggleRole(ctx context.Context, userID int64) bool {
	target, ok := l.Get(userID)
	if !ok {
		return false
	}
	actor, ok := l.actor()
	if !ok {
		return false
	}

	demoting := target.Role == models.RoleAdmin
	if demoting && !authz.CanDemote(actor, target) {
		return false
	}
	if !demoting && !authz.CanPromote(actor, target) {
		return false
	}

	newRole := models.RoleAdmin
	if demoting {
		newRole = models.RoleUser
	}

	return l.coord.Do(ctx, Key{ItemID: userID, Action: "change role"}, Mutation{
		Apply: func() {
			l.patch(userID, func(u *models.User) { u.Role = newRole })
		},
		Revert: func() {
			l.patch(userID, func(u *models.User) { u.Role = target.Role })
		},
		Confirm: func(ctx context.Context) error {
			if demoting {
				return l.api.Demote(ctx, userID)
			}
			return l.api.Promote(ctx, userID)
		},
	})
}

// ToggleBan flips the banned flag optimistically and confirms in the
// background. Forbidden by the rules → no-op, returns false.
func (l *UserList) ToggleBan(ctx context.Context, userID int64) bool {
	target, ok := l.Get(userID)
	if !ok {
		return false
	}
	actor, ok := l.actor()
	if !ok || !authz.CanBan(actor, target) {
		return false
	}

	return l.coord.Do(ctx, Key{ItemID: userID, Action: "toggle ban"}, Mutation{
		Apply: func() {
			l.patch(userID, func(u *models.User) { u.Banned = !target.Banned })
		},
		Revert: func() {
			l.patch(userID, func(u *models.User) { u.Banned = target.Banned })
		},
		Confirm: func(ctx context.Context) error {
			return l.api.ToggleBan(ctx, userID)
		},
	})
}
