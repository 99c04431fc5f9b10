package directory

import (
	"fmt"
	"strconv"

	"saraha/models"
)

// ReceivedEntry is a received message paired with the sender label a
// recipient is allowed to see.
type ReceivedEntry struct {
	models.Message
	Sender string
}

func (e ReceivedEntry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.FormattedTime(), e.Sender, e.Text)
}

// NameFunc resolves a user id to a username.
type NameFunc func(id int) (string, bool)

// SenderLabel hides the sender of anonymous messages and of messages from
// non-contacts behind "Sender ID <id>".
func SenderLabel(m models.Message, contactIDs map[int]bool, names NameFunc) string {
	if m.Anonymous || !contactIDs[m.SenderID] {
		label := "Sender ID " + strconv.Itoa(m.SenderID)
		if m.Anonymous {
			label += " (Anonymous)"
		}
		return label
	}
	if name, ok := names(m.SenderID); ok {
		return name
	}
	return "Sender ID " + strconv.Itoa(m.SenderID)
}

// LabelReceived labels every message, newest first.
func LabelReceived(received []models.Message, contactIDs map[int]bool, names NameFunc) []ReceivedEntry {
	entries := make([]ReceivedEntry, 0, len(received))
	for i := len(received) - 1; i >= 0; i-- {
		m := received[i]
		entries = append(entries, ReceivedEntry{Message: m, Sender: SenderLabel(m, contactIDs, names)})
	}
	return entries
}

// FilterReceivedFrom keeps the non-anonymous messages from senderID in
// arrival order, labelled with name.
func FilterReceivedFrom(received []models.Message, senderID int, name string) []ReceivedEntry {
	var entries []ReceivedEntry
	for _, m := range received {
		if m.SenderID != senderID || m.Anonymous {
			continue
		}
		entries = append(entries, ReceivedEntry{Message: m, Sender: name})
	}
	return entries
}

// AllReceived is me's inbox as the recipient may see it, newest first.
func (d *Directory) AllReceived(me *models.User) []ReceivedEntry {
	return LabelReceived(me.Received(), me.ContactIDs(), d.Username)
}

// ReceivedFrom lists the identified messages me received from contact
// senderID. Callers check the contact relation first (see ContactID).
func (d *Directory) ReceivedFrom(me *models.User, senderID int) []ReceivedEntry {
	name, ok := d.Username(senderID)
	if !ok {
		return nil
	}
	return FilterReceivedFrom(me.Received(), senderID, name)
}

// Favorites labels me's favorites oldest first using the same rules as the
// inbox.
func (d *Directory) Favorites(me *models.User) []ReceivedEntry {
	favs := me.Favorites()
	contactIDs := me.ContactIDs()
	entries := make([]ReceivedEntry, 0, len(favs))
	for _, m := range favs {
		entries = append(entries, ReceivedEntry{Message: m, Sender: SenderLabel(m, contactIDs, d.Username)})
	}
	return entries
}
