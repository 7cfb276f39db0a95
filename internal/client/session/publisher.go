package session

import (
	"sync"

	"github.com/x3alone/01blog/internal/models"
)

// State is an immutable snapshot of the session handed to subscribers.
type State struct {
	Authenticated bool
	Banned        bool
	UserID        int64
	Username      string
	Role          models.Role
	AvatarURL     string
}

// Publisher derives the authenticated/banned/role view from the token store
// and broadcasts changes to any number of subscribers, so independent UI
// regions never couple to each other. Publishing is synchronous: every
// subscriber observes the new state before the mutating call returns.
type Publisher struct {
	mu    sync.Mutex
	store *Store
	subs  []func(State)
}

// NewPublisher wires a publisher to the store's change hook.
func NewPublisher(store *Store) *Publisher {
	p := &Publisher{store: store}
	store.OnChange(p.publish)
	return p
}

// Subscribe registers fn to be called with every subsequent state change.
func (p *Publisher) Subscribe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *Publisher) publish() {
	st := p.State()
	p.mu.Lock()
	subs := make([]func(State), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// State assembles the current snapshot from the store and the token claims.
func (p *Publisher) State() State {
	st := State{
		Banned:    p.store.Banned(),
		Username:  p.store.Username(),
		AvatarURL: p.store.AvatarURL(),
	}
	token := p.store.Token()
	if claims, ok := DecodeClaims(token); ok {
		st.UserID = claims.UserID
		st.Role = claims.Role
		if claims.Username() != "" {
			st.Username = claims.Username()
		}
	}
	st.Authenticated = token != "" && !st.Banned
	return st
}

// IsAuthenticated reports whether a token is present and the account is not
// banned. A ban signal forces false regardless of token presence.
func (p *Publisher) IsAuthenticated() bool {
	return p.store.Token() != "" && !p.store.Banned()
}

// Claims returns the decoded token claims, or ok=false when signed out or the
// token payload is malformed.
func (p *Publisher) Claims() (Claims, bool) {
	return DecodeClaims(p.store.Token())
}

// Role returns the role claim, or ok=false when no claim is available.
func (p *Publisher) Role() (models.Role, bool) {
	claims, ok := p.Claims()
	if !ok {
		return "", false
	}
	return claims.Role, true
}

// UserID returns the identity claim, or ok=false when no claim is available.
func (p *Publisher) UserID() (int64, bool) {
	claims, ok := p.Claims()
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// Username returns the best available display name: the token subject when
// decodable, otherwise the cached display field.
func (p *Publisher) Username() string {
	if claims, ok := p.Claims(); ok && claims.Username() != "" {
		return claims.Username()
	}
	return p.store.Username()
}

// IsAdmin reports whether the current token carries the admin role.
func (p *Publisher) IsAdmin() bool {
	role, ok := p.Role()
	return ok && role == models.RoleAdmin
}

// Token exposes the raw bearer token for the request authenticator.
func (p *Publisher) Token() string {
	return p.store.Token()
}

// SetToken stores a freshly issued token.
func (p *Publisher) SetToken(token string) error {
	return p.store.SetToken(token)
}

// SetBanned persists the ban flag and immediately recomputes the
// authenticated state for all subscribers.
func (p *Publisher) SetBanned(banned bool) error {
	return p.store.SetBanned(banned)
}

// Clear signs the session out.
func (p *Publisher) Clear() error {
	return p.store.Clear()
}
