package client

import (
	"path/filepath"
	"testing"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	saved := &Session{
		Token: "tok-123",
		Role:  "advisor",
		Name:  "Mai Tran",
		Email: "advisor@advisorhub.app",
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil session")
	}
	if *loaded != *saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestSessionStoreLoadMissingFile(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "absent.json"))

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil", session)
	}
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))

	if err := store.Save(&Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if session != nil {
		t.Errorf("session = %+v, want nil", session)
	}

	// Clearing again is a no-op
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
