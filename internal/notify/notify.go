// Package notify keeps a process-wide queue of transient operator-facing
// messages. Each entry expires on its own timer, so concurrent entries
// come and go independently. Nothing is persisted.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for display
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultTTL is how long an entry stays visible
const DefaultTTL = 3 * time.Second

// Notification is one transient message
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type entry struct {
	notification Notification
	timer        *time.Timer
}

// Notifier holds active notifications and their expiry timers
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
}

// New creates a Notifier whose entries expire after ttl
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Push appends a notification and schedules its expiry
func (n *Notifier) Push(kind Kind, message string) Notification {
	notification := Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries[notification.ID] = &entry{
		notification: notification,
		timer: time.AfterFunc(n.ttl, func() {
			n.Dismiss(notification.ID)
		}),
	}
	return notification
}

// Active returns the notifications that have not expired, oldest first
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	active := make([]Notification, 0, len(n.entries))
	for _, e := range n.entries {
		active = append(active, e.notification)
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].ID < active[j].ID
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// Dismiss removes an entry and cancels its timer. It reports whether the
// entry was still active.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	e, ok := n.entries[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(n.entries, id)
	return true
}

// Close cancels every pending expiry timer
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, e := range n.entries {
		e.timer.Stop()
		delete(n.entries, id)
	}
}

// std is the process-wide notifier used by the HTTP handlers
var std = New(DefaultTTL)

// Push appends a notification to the process-wide notifier
func Push(kind Kind, message string) Notification {
	return std.Push(kind, message)
}

// Active returns the process-wide notifier's active notifications
func Active() []Notification {
	return std.Active()
}

// Dismiss removes an entry from the process-wide notifier
func Dismiss(id string) bool {
	return std.Dismiss(id)
}
