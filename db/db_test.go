package db

import (
	"os"
	"reflect"
	"testing"

	"saraha/models"
)

// setupTestDB creates a database in a temporary file.
func setupTestDB(t *testing.T) (*DB, string, func()) {
	tmpfile, err := os.CreateTemp("", "saraha-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpfile.Close()
	os.Remove(tmpfile.Name())

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}

	cleanup := func() {
		database.Close()
		os.Remove(tmpfile.Name())
		os.Remove(tmpfile.Name() + "-wal")
		os.Remove(tmpfile.Name() + "-shm")
	}

	return database, tmpfile.Name(), cleanup
}

func TestSaveAndLoadUsers(t *testing.T) {
	database, _, cleanup := setupTestDB(t)
	defer cleanup()

	users := []*models.User{
		models.NewUser(2, "bob", "pw2"),
		models.NewUser(1, "alice", "pw1"),
	}
	if err := database.SaveUsers(users); err != nil {
		t.Fatalf("SaveUsers failed: %v", err)
	}

	// Saving again must update in place rather than duplicate.
	users[0].Password = "changed"
	if err := database.SaveUsers(users); err != nil {
		t.Fatalf("Second SaveUsers failed: %v", err)
	}

	loaded, err := database.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(loaded))
	}
	if loaded[0].ID != 1 || loaded[0].Username != "alice" {
		t.Errorf("Expected alice first, got %+v", loaded[0])
	}
	if loaded[1].Password != "changed" {
		t.Errorf("Expected updated password, got %q", loaded[1].Password)
	}
}

func TestSaveAndLoadUser(t *testing.T) {
	database, path, cleanup := setupTestDB(t)
	defer cleanup()

	alice := models.NewUser(1, "alice", "pw1")
	bob := models.NewUser(2, "bob", "pw2")
	alice.AddContact("bob", 2)
	alice.SendMessage(bob, "first", false)
	alice.SendMessage(bob, "second\nline", true)
	bob.SendMessage(alice, "reply", false)
	alice.AddFavorite()

	if err := database.SaveUser(alice); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	database.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	fresh := models.NewUser(1, "alice", "pw1")
	if err := reopened.LoadUser(fresh); err != nil {
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

func TestSaveUserReplacesPreviousRows(t *testing.T) {
	database, _, cleanup := setupTestDB(t)
	defer cleanup()

	alice := models.NewUser(1, "alice", "pw1")
	bob := models.NewUser(2, "bob", "pw2")
	alice.SendMessage(bob, "one", false)
	alice.SendMessage(bob, "two", false)
	if err := database.SaveUser(alice); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	alice.UndoLastMessage(bob.ID, bob)
	if err := database.SaveUser(alice); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	fresh := models.NewUser(1, "alice", "pw1")
	if err := database.LoadUser(fresh); err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	sent := fresh.Sent()
	if len(sent) != 1 || sent[0].Text != "one" {
		t.Errorf("Expected only the remaining message, got %+v", sent)
	}
}
