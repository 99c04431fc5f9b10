package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"saraha/config"
	"saraha/db"
	"saraha/models"
)

// setupTestStore creates a FileStore over a temporary data directory.
func setupTestStore(t *testing.T) (*FileStore, string, func()) {
	dir, err := os.MkdirTemp("", "saraha-data-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(dir)
	}

	return store, dir, cleanup
}

func TestUserRoundTrip(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	alice := models.NewUser(1, "alice", "pw1")
	bob := models.NewUser(2, "bob", "pw2")
	alice.AddContact("bob", 2)
	alice.SendMessage(bob, "hello", false)
	alice.SendMessage(bob, "psst", true)
	bob.SendMessage(alice, "hey", false)
	bob.SendMessage(alice, "again", true)
	alice.AddFavorite()

	if err := store.SaveUser(alice); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	fresh := models.NewUser(1, "alice", "pw1")
	if err := store.LoadUser(fresh); err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}

	if !reflect.DeepEqual(fresh.Contacts(), alice.Contacts()) {
		t.Errorf("Contacts mismatch: want %v, got %v", alice.Contacts(), fresh.Contacts())
	}
	if !reflect.DeepEqual(fresh.Sent(), alice.Sent()) {
		t.Errorf("Sent mismatch: want %+v, got %+v", alice.Sent(), fresh.Sent())
	}
	if !reflect.DeepEqual(fresh.Received(), alice.Received()) {
		t.Errorf("Received mismatch: want %+v, got %+v", alice.Received(), fresh.Received())
	}
	if !reflect.DeepEqual(fresh.Favorites(), alice.Favorites()) {
		t.Errorf("Favorites mismatch: want %+v, got %+v", alice.Favorites(), fresh.Favorites())
	}
}

func TestFileLayout(t *testing.T) {
	store, dir, cleanup := setupTestStore(t)
	defer cleanup()

	alice := models.NewUser(3, "alice", "pw1")
	if err := store.SaveUser(alice); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := store.SaveUsers([]*models.User{alice}); err != nil {
		t.Fatalf("SaveUsers failed: %v", err)
	}

	for _, name := range []string{
		"users.txt",
		"user_3_contacts.txt",
		"user_3_sent.txt",
		"user_3_received.txt",
		"user_3_fav.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	roster, err := os.ReadFile(filepath.Join(dir, "users.txt"))
	if err != nil {
		t.Fatalf("Failed to read roster: %v", err)
	}
	if string(roster) != "3 alice pw1\n" {
		t.Errorf("Unexpected roster content %q", roster)
	}
}

func TestLoadMissingFilesKeepsState(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	users, err := store.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers on empty dir failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("Expected no users, got %d", len(users))
	}

	alice := models.NewUser(1, "alice", "pw1")
	bob := models.NewUser(2, "bob", "pw2")
	bob.SendMessage(alice, "unsaved", false)

	if err := store.LoadUser(alice); err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if len(alice.Received()) != 1 {
		t.Errorf("Expected in-memory messages kept when no files exist, got %d", len(alice.Received()))
	}
}

func TestLoadTruncatesMalformedFile(t *testing.T) {
	store, dir, cleanup := setupTestStore(t)
	defer cleanup()

	content := "2\n1\n0\n100\nkept\n2\n1\nnot-a-flag\n101\nlost\n"
	if err := os.WriteFile(filepath.Join(dir, "user_1_received.txt"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	alice := models.NewUser(1, "alice", "pw1")
	if err := store.LoadUser(alice); err != nil {
		t.Fatalf("Expected truncated load to succeed, got %v", err)
	}
	received := alice.Received()
	if len(received) != 1 || received[0].Text != "kept" {
		t.Errorf("Expected only the first record, got %+v", received)
	}
}

func TestLoadUsersRoundTrip(t *testing.T) {
	store, _, cleanup := setupTestStore(t)
	defer cleanup()

	in := []*models.User{
		models.NewUser(2, "bob", "pw2"),
		models.NewUser(1, "alice", "pw1"),
	}
	if err := store.SaveUsers(in); err != nil {
		t.Fatalf("SaveUsers failed: %v", err)
	}

	out, err := store.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers failed: %v", err)
	}
	if len(out) != 2 || out[0].Username != "alice" || out[1].Username != "bob" {
		t.Errorf("Expected alice then bob, got %+v", out)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir, err := os.MkdirTemp("", "saraha-open-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	fileStore, err := Open(&config.Config{DataDir: dir, Store: config.StoreFile})
	if err != nil {
		t.Fatalf("Open file store failed: %v", err)
	}
	defer fileStore.Close()
	if _, ok := fileStore.(*FileStore); !ok {
		t.Errorf("Expected *FileStore, got %T", fileStore)
	}

	sqlStore, err := Open(&config.Config{DataDir: dir, Store: config.StoreSQLite})
	if err != nil {
		t.Fatalf("Open sqlite store failed: %v", err)
	}
	defer sqlStore.Close()
	if _, ok := sqlStore.(*db.DB); !ok {
		t.Errorf("Expected *db.DB, got %T", sqlStore)
	}

	if _, err := Open(&config.Config{DataDir: dir, Store: "bogus"}); err == nil {
		t.Error("Expected an error for an unknown store")
	}
}
