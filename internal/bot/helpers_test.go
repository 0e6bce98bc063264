package bot

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/Thinguy99/bot-discord/internal/session"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"court", 10, "court"},
		{"exactement", 10, "exactement"},
		{"0123456789ABC", 10, "0123456..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", 20) // 2 bytes per rune

	for n := 1; n < len(s); n++ {
		got := truncate(s, n)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%d) produced invalid UTF-8: %q", n, got)
		}
		if len(got) > n {
			t.Fatalf("truncate(%d) returned %d bytes", n, len(got))
		}
	}
}

func TestRunLockedRejectsConcurrentUser(t *testing.T) {
	store := session.NewStore()
	started := make(chan struct{})
	finish := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = runLocked(store, "alice", func() {
			close(started)
			<-finish
		})
	}()
	<-started

	ran := false
	err := runLocked(store, "alice", func() { ran = true })
	if !errors.Is(err, session.ErrBusy) {
		t.Errorf("expected ErrBusy while alice is occupied, got %v", err)
	}
	if ran {
		t.Error("second operation must not run while the first holds the slot")
	}

	// Another user is not blocked.
	if err := runLocked(store, "bob", func() {}); err != nil {
		t.Errorf("bob should not be affected: %v", err)
	}

	close(finish)
	wg.Wait()

	if err := runLocked(store, "alice", func() {}); err != nil {
		t.Errorf("slot should be free again after release: %v", err)
	}
}
