package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testKey = "1234567890ABCDEF1234567890ABCDEF"

// Helper to create a store in a temp directory
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "credentials.json"), testKey)
}

func TestSaveAndLoadSession(t *testing.T) {
	store := setupTestStore(t)

	session := &Session{
		Name:            "demo",
		AccessKeyID:     "AKIATEST1234",
		SecretAccessKey: "SecretKey1234",
		SessionToken:    "Token1234",
		Expiration:      time.Now().Add(1 * time.Hour),
		Region:          "eu-west-1",
		RoleARN:         "arn:aws:iam::123:role/TestRole",
		SourceProfile:   "default",
	}

	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(store.Path); os.IsNotExist(err) {
		t.Fatal("Store file was not created")
	}

	loaded, err := store.Load("demo")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.AccessKeyID != session.AccessKeyID {
		t.Errorf("AccessKeyID mismatch. Got %s, want %s", loaded.AccessKeyID, session.AccessKeyID)
	}
	if loaded.SecretAccessKey != session.SecretAccessKey {
		t.Errorf("SecretAccessKey mismatch")
	}
	if loaded.Region != "eu-west-1" || loaded.SourceProfile != "default" {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Expiration.Format(time.RFC3339) != session.Expiration.Format(time.RFC3339) {
		t.Errorf("Expiration mismatch. Got %v, want %v", loaded.Expiration, session.Expiration)
	}
}

func TestStaticSessionHasNoExpiration(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Save(&Session{Name: "static", AccessKeyID: "k"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load("static")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Expiration.IsZero() {
		t.Errorf("expected zero expiration, got %v", loaded.Expiration)
	}
	if loaded.Expired(time.Now()) {
		t.Error("static session should never be expired")
	}
}

func TestLoadWithWrongSecret(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Save(&Session{Name: "p1", AccessKeyID: "k1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other := NewStore(store.Path, "TOTAL_DIFFERENT_KEY_1234567890AB")
	if _, err := other.Load("p1"); err == nil {
		t.Error("Expected error when loading with the wrong secret")
	}
}

func TestListSortedByName(t *testing.T) {
	store := setupTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.Save(&Session{Name: name, AccessKeyID: "k-" + name}); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
	}

	sessions, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "alpha" || sessions[2].Name != "zeta" {
		t.Errorf("unexpected order: %s, %s, %s", sessions[0].Name, sessions[1].Name, sessions[2].Name)
	}
	if sessions[1].AccessKeyID != "k-mid" {
		t.Errorf("AccessKeyID mismatch for mid: %s", sessions[1].AccessKeyID)
	}
}

func TestCorruptJSONHandling(t *testing.T) {
	store := setupTestStore(t)

	os.WriteFile(store.Path, []byte("{ invalid json..."), 0600)

	err := store.Save(&Session{Name: "new", AccessKeyID: "k"})
	if err == nil {
		t.Error("Expected error when saving to corrupt file, got nil")
	}
}

func TestInvalidSessionNameRejected(t *testing.T) {
	store := setupTestStore(t)

	for _, name := range []string{"", ".", "..", "../escape", "a/b", "with space"} {
		if err := store.Save(&Session{Name: name}); err == nil {
			t.Errorf("expected error for session name %q", name)
		}
	}
}

func TestActiveSession(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Active(); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	store.Save(&Session{Name: "p1", AccessKeyID: "k1"})
	store.Save(&Session{Name: "p2", AccessKeyID: "k2"})

	if err := store.SetActive("missing"); err == nil {
		t.Error("expected error activating unknown session")
	}
	if err := store.SetActive("p2"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	active, err := store.Active()
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active.Name != "p2" || active.AccessKeyID != "k2" {
		t.Errorf("unexpected active session: %+v", active)
	}
}

func TestRemoveSession(t *testing.T) {
	store := setupTestStore(t)

	store.Save(&Session{Name: "p1", AccessKeyID: "k1"})
	store.Save(&Session{Name: "p2", AccessKeyID: "k2"})
	store.SetActive("p1")

	if err := store.Remove("p1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.Load("p1"); err == nil {
		t.Error("expected p1 to be gone")
	}
	if _, err := store.Active(); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("removing the active session should clear it, got %v", err)
	}

	if err := store.Remove("p2"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(store.Path); !os.IsNotExist(err) {
		t.Error("store file should be deleted after the last session is removed")
	}

	if err := store.Remove("p2"); err == nil {
		t.Error("expected error removing a missing session")
	}
}
