package confirm

import (
	"testing"
	"time"
)

func TestIssueAndConfirm(t *testing.T) {
	m := NewManager(time.Minute)

	token := m.Issue("brands:delete:42")
	if token == "" {
		t.Fatal("expected a token")
	}
	if !m.Confirm("brands:delete:42", token) {
		t.Error("expected confirmation with matching action to succeed")
	}
}

func TestTokenIsSingleUse(t *testing.T) {
	m := NewManager(time.Minute)

	token := m.Issue("brands:delete:42")
	if !m.Confirm("brands:delete:42", token) {
		t.Fatal("first confirmation should succeed")
	}
	if m.Confirm("brands:delete:42", token) {
		t.Error("expected replayed token to be rejected")
	}
}

func TestTokenBoundToAction(t *testing.T) {
	m := NewManager(time.Minute)

	token := m.Issue("brands:delete:42")
	if m.Confirm("brands:delete:7", token) {
		t.Error("expected token issued for another action to be rejected")
	}
	// The mismatch consumed the token
	if m.Confirm("brands:delete:42", token) {
		t.Error("expected token to be spent after a mismatched confirm")
	}
}

func TestExpiredTokenFails(t *testing.T) {
	m := NewManager(time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	token := m.Issue("sizes:delete:3")

	current = current.Add(2 * time.Minute)
	if m.Confirm("sizes:delete:3", token) {
		t.Error("expected expired token to be rejected")
	}
}

func TestIssuePrunesExpired(t *testing.T) {
	m := NewManager(time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	m.Issue("colors:delete:1")
	m.Issue("colors:delete:2")
	current = current.Add(2 * time.Minute)

	m.Issue("colors:delete:3")
	if got := len(m.tokens); got != 1 {
		t.Errorf("expected expired tokens to be pruned, %d remain", got)
	}
}

func TestCancelDiscardsToken(t *testing.T) {
	m := NewManager(time.Minute)

	token := m.Issue("sellers:delete:9")
	m.Cancel(token)
	if m.Confirm("sellers:delete:9", token) {
		t.Error("expected cancelled token to be rejected")
	}
}

func TestUnknownToken(t *testing.T) {
	m := NewManager(time.Minute)
	if m.Confirm("brands:delete:1", "not-a-token") {
		t.Error("expected unknown token to be rejected")
	}
}
