package notify

import (
	"sync"
	"testing"
	"time"
)

func TestPushAndActive(t *testing.T) {
	n := New(time.Minute)
	defer n.Close()

	first := n.Push(KindSuccess, "Brand added successfully")
	second := n.Push(KindError, "Brand with this name already exists")

	active := n.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active notifications, got %d", len(active))
	}
	if active[0].ID != first.ID || active[1].ID != second.ID {
		t.Errorf("expected oldest-first ordering, got %v then %v", active[0].ID, active[1].ID)
	}
	if active[0].Kind != KindSuccess || active[1].Kind != KindError {
		t.Errorf("unexpected kinds: %v, %v", active[0].Kind, active[1].Kind)
	}
}

func TestEntriesExpireIndependently(t *testing.T) {
	n := New(50 * time.Millisecond)
	defer n.Close()

	n.Push(KindInfo, "first")
	time.Sleep(30 * time.Millisecond)
	kept := n.Push(KindInfo, "second")

	// First entry expires, second is still inside its window
	time.Sleep(40 * time.Millisecond)
	active := n.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(active))
	}
	if active[0].ID != kept.ID {
		t.Errorf("wrong survivor: %v", active[0].ID)
	}

	time.Sleep(60 * time.Millisecond)
	if remaining := n.Active(); len(remaining) != 0 {
		t.Errorf("expected all notifications to expire, %d remain", len(remaining))
	}
}

func TestDismissCancelsTimer(t *testing.T) {
	n := New(time.Minute)
	defer n.Close()

	notification := n.Push(KindWarning, "heads up")
	if !n.Dismiss(notification.ID) {
		t.Fatal("expected dismiss of active notification to succeed")
	}
	if n.Dismiss(notification.ID) {
		t.Error("expected second dismiss to report not found")
	}
	if active := n.Active(); len(active) != 0 {
		t.Errorf("expected no active notifications, got %d", len(active))
	}
}

func TestDismissUnknownID(t *testing.T) {
	n := New(time.Minute)
	defer n.Close()

	if n.Dismiss("no-such-id") {
		t.Error("expected dismiss of unknown id to report false")
	}
}

func TestConcurrentPush(t *testing.T) {
	n := New(time.Minute)
	defer n.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Push(KindSuccess, "done")
		}()
	}
	wg.Wait()

	if got := len(n.Active()); got != 50 {
		t.Errorf("expected 50 active notifications, got %d", got)
	}
}

func TestCloseDropsEverything(t *testing.T) {
	n := New(time.Minute)
	n.Push(KindInfo, "a")
	n.Push(KindInfo, "b")
	n.Close()

	if active := n.Active(); len(active) != 0 {
		t.Errorf("expected no active notifications after close, got %d", len(active))
	}
}
