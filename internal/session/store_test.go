package session

import (
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	token := store.Create("user-1")
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	userID, ok := store.Get(token)
	if !ok {
		t.Fatal("expected session to resolve")
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}
}

func TestGetUnknownToken(t *testing.T) {
	store := NewStore(time.Hour)

	if _, ok := store.Get("nope"); ok {
		t.Error("expected unknown token to miss")
	}
}

func TestDestroy(t *testing.T) {
	store := NewStore(time.Hour)

	token := store.Create("user-1")
	store.Destroy(token)

	if _, ok := store.Get(token); ok {
		t.Error("expected destroyed session to miss")
	}

	// destroying again is a no-op
	store.Destroy(token)
}

func TestExpiredSessionTreatedAsAbsent(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	token := store.Create("user-1")
	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(token); ok {
		t.Error("expected expired session to miss")
	}
}

func TestDefaultTTLApplied(t *testing.T) {
	store := NewStore(0)
	if store.TTL() != DefaultTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultTTL, store.TTL())
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := NewStore(time.Hour)

	a := store.Create("user-1")
	b := store.Create("user-1")
	if a == b {
		t.Error("expected distinct tokens for separate sessions")
	}
}
