package models

import "time"

const timeLayout = "2006-01-02 15:04:05"

// now is swapped in tests that need identical timestamps.
var now = time.Now

type Message struct {
	SenderID   int
	ReceiverID int
	Timestamp  int64 // Unix seconds
	Text       string
	Anonymous  bool
}

// NewMessage stamps a message with the current wall clock. Messages restored
// from storage are built as struct literals with their stored timestamp.
func NewMessage(senderID, receiverID int, text string, anonymous bool) Message {
	return Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Timestamp:  now().Unix(),
		Text:       text,
		Anonymous:  anonymous,
	}
}

func (m Message) Time() time.Time {
	return time.Unix(m.Timestamp, 0)
}

// FormattedTime renders the timestamp in local time as YYYY-MM-DD HH:MM:SS.
// Timestamps outside four-digit years render as "Time Error".
func (m Message) FormattedTime() string {
	t := m.Time().Local()
	if t.Year() < 0 || t.Year() > 9999 {
		return "Time Error"
	}
	return t.Format(timeLayout)
}

type Contact struct {
	Username string
	ID       int
}
