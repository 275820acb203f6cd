// Package confirm gates destructive operations behind single-use tokens.
// The first delete request receives a token bound to the exact action;
// resubmitting with that token confirms it. A token that expires or is
// never resubmitted counts as a cancellation.
package confirm

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a pending confirmation stays valid
const DefaultTTL = 30 * time.Second

type pending struct {
	action  string
	expires time.Time
}

// Manager issues and redeems confirmation tokens
type Manager struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]pending
	now    func() time.Time
}

// NewManager creates a Manager whose tokens expire after ttl
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		ttl:    ttl,
		tokens: make(map[string]pending),
		now:    time.Now,
	}
}

// Issue creates a token bound to an action, e.g. "brands:delete:42"
func (m *Manager) Issue(action string) string {
	token := uuid.New().String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune()
	m.tokens[token] = pending{action: action, expires: m.now().Add(m.ttl)}
	return token
}

// Confirm redeems a token. It succeeds at most once per token, and only
// for the action the token was issued for. Expired tokens fail.
func (m *Manager) Confirm(action, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.tokens[token]
	if !ok {
		return false
	}
	delete(m.tokens, token)
	if p.action != action {
		return false
	}
	return m.now().Before(p.expires)
}

// Cancel discards a pending token
func (m *Manager) Cancel(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

// prune drops expired tokens; callers must hold the lock
func (m *Manager) prune() {
	now := m.now()
	for token, p := range m.tokens {
		if !now.Before(p.expires) {
			delete(m.tokens, token)
		}
	}
}

// std is the process-wide manager used by the HTTP handlers
var std = NewManager(DefaultTTL)

// Issue creates a token on the process-wide manager
func Issue(action string) string {
	return std.Issue(action)
}

// Confirm redeems a token on the process-wide manager
func Confirm(action, token string) bool {
	return std.Confirm(action, token)
}
