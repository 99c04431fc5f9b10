package db

import (
	"database/sql"
	"fmt"

	"saraha/models"

	_ "github.com/mattn/go-sqlite3"
)

const (
	boxSent      = "sent"
	boxReceived  = "received"
	boxFavorites = "fav"
)

// DB stores the same records as the flat files in one SQLite database.
type DB struct {
	conn *sql.DB
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			owner INTEGER NOT NULL,
			username TEXT NOT NULL,
			contact_id INTEGER NOT NULL,
			UNIQUE(owner, username)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			owner INTEGER NOT NULL,
			box TEXT NOT NULL,
			position INTEGER NOT NULL,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			anonymous INTEGER NOT NULL DEFAULT 0,
			timestamp INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY(owner, box, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts(owner)`,
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// LoadUsers returns every roster entry ordered by id.
func (db *DB) LoadUsers() ([]*models.User, error) {
	rows, err := db.conn.Query("SELECT id, username, password FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var id int
		var username, password string
		if err := rows.Scan(&id, &username, &password); err != nil {
			return nil, err
		}
		users = append(users, models.NewUser(id, username, password))
	}

	return users, rows.Err()
}

func (db *DB) SaveUsers(users []*models.User) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO users (id, username, password) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, password = excluded.password`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range users {
		if _, err := stmt.Exec(u.ID, u.Username, u.Password); err != nil {
			return fmt.Errorf("save user %d: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

// LoadUser merges stored contacts into u and replaces its message collections.
func (db *DB) LoadUser(u *models.User) error {
	contacts, err := db.getContacts(u.ID)
	if err != nil {
		return err
	}
	u.MergeContacts(contacts)

	sent, err := db.getMessages(u.ID, boxSent)
	if err != nil {
		return err
	}
	received, err := db.getMessages(u.ID, boxReceived)
	if err != nil {
		return err
	}
	favorites, err := db.getMessages(u.ID, boxFavorites)
	if err != nil {
		return err
	}

	u.ReplaceSent(sent)
	u.ReplaceReceived(received)
	u.ReplaceFavorites(favorites)
	return nil
}

// SaveUser rewrites all rows owned by u in one transaction.
func (db *DB) SaveUser(u *models.User) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM contacts WHERE owner = ?", u.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM messages WHERE owner = ?", u.ID); err != nil {
		return err
	}

	for name, id := range u.Contacts() {
		if _, err := tx.Exec(
			"INSERT INTO contacts (owner, username, contact_id) VALUES (?, ?, ?)",
			u.ID, name, id,
		); err != nil {
			return err
		}
	}

	boxes := map[string][]models.Message{
		boxSent:      u.Sent(),
		boxReceived:  u.Received(),
		boxFavorites: u.Favorites(),
	}
	for box, msgs := range boxes {
		for i, m := range msgs {
			if _, err := tx.Exec(
				`INSERT INTO messages (owner, box, position, sender_id, receiver_id, anonymous, timestamp, text)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				u.ID, box, i, m.SenderID, m.ReceiverID, m.Anonymous, m.Timestamp, m.Text,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (db *DB) getContacts(owner int) (map[string]int, error) {
	rows, err := db.conn.Query("SELECT username, contact_id FROM contacts WHERE owner = ?", owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make(map[string]int)
	for rows.Next() {
		var name string
		var id int
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		contacts[name] = id
	}

	return contacts, rows.Err()
}

func (db *DB) getMessages(owner int, box string) ([]models.Message, error) {
	query := `
		SELECT sender_id, receiver_id, anonymous, timestamp, text
		FROM messages
		WHERE owner = ? AND box = ?
		ORDER BY position ASC
	`

	rows, err := db.conn.Query(query, owner, box)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.SenderID, &m.ReceiverID, &m.Anonymous, &m.Timestamp, &m.Text); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
