// Package notify delivers transient user-visible notifications (toasts).
// Failures of background work surface here instead of blocking dialogs.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a single transient notification.
type Toast struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Notifier broadcasts toasts to subscribers synchronously.
type Notifier struct {
	mu   sync.Mutex
	subs []func(Toast)
}

func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn to receive every subsequent toast.
func (n *Notifier) Subscribe(fn func(Toast)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *Notifier) publish(level Level, msg string) {
	t := Toast{ID: uuid.NewString(), Level: level, Message: msg, At: time.Now()}
	n.mu.Lock()
	subs := make([]func(Toast), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()
	for _, fn := range subs {
		fn(t)
	}
}

// Success publishes a success toast.
func (n *Notifier) Success(msg string) { n.publish(LevelSuccess, msg) }

// Error publishes an error toast.
func (n *Notifier) Error(msg string) { n.publish(LevelError, msg) }

// Info publishes an informational toast.
func (n *Notifier) Info(msg string) { n.publish(LevelInfo, msg) }
