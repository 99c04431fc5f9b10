package models

import (
	"testing"
	"time"
)

// freezeClock pins NewMessage timestamps until the returned func is called.
func freezeClock(t *testing.T, at time.Time) func() {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	return func() { now = prev }
}

func TestSendMessageCopiesToBothSides(t *testing.T) {
	alice := NewUser(1, "alice", "pw1")
	bob := NewUser(2, "bob", "pw2")

	m := alice.SendMessage(bob, "hi", true)

	sent := alice.Sent()
	received := bob.Received()
	if len(sent) != 1 || len(received) != 1 {
		t.Fatalf("Expected one sent and one received message, got %d and %d", len(sent), len(received))
	}
	if sent[0].ReceiverID != bob.ID {
		t.Errorf("Expected receiver %d, got %d", bob.ID, sent[0].ReceiverID)
	}
	if received[0].SenderID != alice.ID {
		t.Errorf("Expected sender %d, got %d", alice.ID, received[0].SenderID)
	}
	if sent[0] != received[0] || sent[0] != m {
		t.Errorf("Expected identical copies, got %+v and %+v", sent[0], received[0])
	}
	if !received[0].Anonymous {
		t.Error("Expected anonymous flag to be kept")
	}

	// Views are copies; editing one never reaches the user.
	sent[0].Text = "changed"
	if alice.Sent()[0].Text != "hi" || bob.Received()[0].Text != "hi" {
		t.Error("Expected stored messages to be unaffected by edits to a view")
	}
}

func TestUndoLastMessage(t *testing.T) {
	alice := NewUser(1, "alice", "pw1")
	bob := NewUser(2, "bob", "pw2")
	carol := NewUser(3, "carol", "pw3")

	if alice.UndoLastMessage(bob.ID, bob) {
		t.Fatal("Expected undo with no sent messages to fail")
	}

	alice.SendMessage(bob, "first", false)
	alice.SendMessage(carol, "second", false)

	if alice.UndoLastMessage(bob.ID, bob) {
		t.Fatal("Expected undo to fail when the last message went to someone else")
	}
	if len(alice.Sent()) != 2 {
		t.Fatalf("Expected failed undo to leave sent untouched, got %d", len(alice.Sent()))
	}

	if !alice.UndoLastMessage(carol.ID, carol) {
		t.Fatal("Expected undo to succeed")
	}
	if len(alice.Sent()) != 1 {
		t.Errorf("Expected sent count 1 after undo, got %d", len(alice.Sent()))
	}
	if len(carol.Received()) != 0 {
		t.Errorf("Expected carol's copy removed, got %d", len(carol.Received()))
	}
	if len(bob.Received()) != 1 {
		t.Errorf("Expected bob's message kept, got %d", len(bob.Received()))
	}
}

func TestUndoRemovesIdenticalDuplicates(t *testing.T) {
	defer freezeClock(t, time.Unix(1700000000, 0))()

	alice := NewUser(1, "alice", "pw1")
	bob := NewUser(2, "bob", "pw2")

	alice.SendMessage(bob, "same", false)
	alice.SendMessage(bob, "same", false)
	alice.SendMessage(bob, "other", false)
	alice.SendMessage(bob, "same", false)

	if !alice.UndoLastMessage(bob.ID, bob) {
		t.Fatal("Expected undo to succeed")
	}
	if len(alice.Sent()) != 3 {
		t.Errorf("Expected exactly one sent message removed, got %d left", len(alice.Sent()))
	}
	received := bob.Received()
	if len(received) != 1 || received[0].Text != "other" {
		t.Errorf("Expected every matching copy removed, got %+v", received)
	}
}

func TestFavoritesDrainInInsertionOrder(t *testing.T) {
	alice := NewUser(1, "alice", "pw1")
	bob := NewUser(2, "bob", "pw2")

	if bob.AddFavorite() {
		t.Fatal("Expected AddFavorite to fail with no received messages")
	}
	if bob.RemoveOldestFavorite() {
		t.Fatal("Expected RemoveOldestFavorite to fail with no favorites")
	}

	for _, text := range []string{"one", "two", "three"} {
		alice.SendMessage(bob, text, false)
		if !bob.AddFavorite() {
			t.Fatalf("Expected AddFavorite to succeed after %q", text)
		}
	}

	for _, want := range []string{"one", "two", "three"} {
		favs := bob.Favorites()
		if len(favs) == 0 || favs[0].Text != want {
			t.Fatalf("Expected oldest favorite %q, got %+v", want, favs)
		}
		if !bob.RemoveOldestFavorite() {
			t.Fatalf("Expected removal of %q to succeed", want)
		}
	}
	if len(bob.Favorites()) != 0 {
		t.Errorf("Expected favorites drained, got %d", len(bob.Favorites()))
	}
}

func TestFavoriteIsIndependentOfReceived(t *testing.T) {
	alice := NewUser(1, "alice", "pw1")
	bob := NewUser(2, "bob", "pw2")

	alice.SendMessage(bob, "keep me", false)
	bob.AddFavorite()
	alice.UndoLastMessage(bob.ID, bob)

	if len(bob.Received()) != 0 {
		t.Fatalf("Expected received emptied by undo, got %d", len(bob.Received()))
	}
	if favs := bob.Favorites(); len(favs) != 1 || favs[0].Text != "keep me" {
		t.Errorf("Expected favorite copy to survive undo, got %+v", favs)
	}
}

func TestContacts(t *testing.T) {
	u := NewUser(1, "alice", "pw")
	u.AddContact("bob", 2)
	u.AddContact("carol", 3)
	u.AddContact("bob", 4)

	if !u.IsContactID(4) {
		t.Error("Expected overwritten id to be a contact")
	}
	if u.IsContactID(2) {
		t.Error("Expected old id to be gone after overwrite")
	}

	contacts := u.SortedContacts()
	if len(contacts) != 2 || contacts[0].Username != "bob" || contacts[1].Username != "carol" {
		t.Errorf("Expected [bob carol], got %+v", contacts)
	}

	u.MergeContacts(map[string]int{"dave": 5, "carol": 6})
	got := u.Contacts()
	if got["bob"] != 4 || got["carol"] != 6 || got["dave"] != 5 {
		t.Errorf("Unexpected merged contacts: %v", got)
	}
}

func TestFormattedTime(t *testing.T) {
	at := time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local)
	m := Message{Timestamp: at.Unix()}
	if got := m.FormattedTime(); got != "2024-03-05 07:08:09" {
		t.Errorf("Expected %q, got %q", "2024-03-05 07:08:09", got)
	}

	far := Message{Timestamp: 1 << 40}
	if got := far.FormattedTime(); got != "Time Error" {
		t.Errorf("Expected fallback for out of range timestamp, got %q", got)
	}
}
