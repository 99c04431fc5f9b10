package models

import "sort"

// User owns its contact directory and message collections. The collections
// are only reachable through methods; every accessor returns a copy.
type User struct {
	ID       int
	Username string
	Password string

	contacts  map[string]int
	sent      []Message
	received  []Message
	favorites []Message // oldest first
}

func NewUser(id int, username, password string) *User {
	return &User{
		ID:       id,
		Username: username,
		Password: password,
		contacts: make(map[string]int),
	}
}

// AddContact inserts or overwrites the entry for name. Callers check for
// duplicates and self-contact.
func (u *User) AddContact(name string, id int) {
	if u.contacts == nil {
		u.contacts = make(map[string]int)
	}
	u.contacts[name] = id
}

func (u *User) HasContact(name string) bool {
	_, ok := u.contacts[name]
	return ok
}

func (u *User) IsContactID(id int) bool {
	for _, contactID := range u.contacts {
		if contactID == id {
			return true
		}
	}
	return false
}

// ContactIDs returns the set of ids present in the contact directory.
func (u *User) ContactIDs() map[int]bool {
	ids := make(map[int]bool, len(u.contacts))
	for _, id := range u.contacts {
		ids[id] = true
	}
	return ids
}

// SendMessage appends one message to the sender's sent list and a copy of it
// to the receiver's received list.
func (u *User) SendMessage(receiver *User, text string, anonymous bool) Message {
	m := NewMessage(u.ID, receiver.ID, text, anonymous)
	u.sent = append(u.sent, m)
	receiver.received = append(receiver.received, m)
	return m
}

// UndoLastMessage retracts the last sent message if it went to receiverID.
// Every received entry of receiver matching the retracted message on
// (timestamp, text, sender) is removed, so identical duplicates go too.
func (u *User) UndoLastMessage(receiverID int, receiver *User) bool {
	if len(u.sent) == 0 {
		return false
	}

	last := u.sent[len(u.sent)-1]
	if last.ReceiverID != receiverID {
		return false
	}
	u.sent = u.sent[:len(u.sent)-1]

	kept := receiver.received[:0]
	for _, m := range receiver.received {
		if m.Timestamp == last.Timestamp && m.Text == last.Text && m.SenderID == last.SenderID {
			continue
		}
		kept = append(kept, m)
	}
	receiver.received = kept
	return true
}

// LastSent returns the most recently sent message.
func (u *User) LastSent() (Message, bool) {
	if len(u.sent) == 0 {
		return Message{}, false
	}
	return u.sent[len(u.sent)-1], true
}

func (u *User) AddFavorite() bool {
	if len(u.received) == 0 {
		return false
	}
	u.favorites = append(u.favorites, u.received[len(u.received)-1])
	return true
}

func (u *User) RemoveOldestFavorite() bool {
	if len(u.favorites) == 0 {
		return false
	}
	u.favorites = u.favorites[1:]
	return true
}

func (u *User) Contacts() map[string]int {
	out := make(map[string]int, len(u.contacts))
	for name, id := range u.contacts {
		out[name] = id
	}
	return out
}

// SortedContacts lists contacts ordered by username.
func (u *User) SortedContacts() []Contact {
	out := make([]Contact, 0, len(u.contacts))
	for name, id := range u.contacts {
		out = append(out, Contact{Username: name, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (u *User) Sent() []Message      { return copyMessages(u.sent) }
func (u *User) Received() []Message  { return copyMessages(u.received) }
func (u *User) Favorites() []Message { return copyMessages(u.favorites) }

// MergeContacts overwrites contacts key by key; entries absent from contacts
// are kept.
func (u *User) MergeContacts(contacts map[string]int) {
	for name, id := range contacts {
		u.AddContact(name, id)
	}
}

func (u *User) ReplaceSent(msgs []Message)      { u.sent = copyMessages(msgs) }
func (u *User) ReplaceReceived(msgs []Message)  { u.received = copyMessages(msgs) }
func (u *User) ReplaceFavorites(msgs []Message) { u.favorites = copyMessages(msgs) }

func copyMessages(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
