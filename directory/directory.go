// Package directory is the registry of all users. It owns every User,
// keeps the username index in step with the id map, and runs the session
// commands shared by the console and the terminal UI.
package directory

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"saraha/models"
	"saraha/storage"
)

var (
	ErrEmptyCredentials   = errors.New("username and password cannot be empty")
	ErrInvalidCredentials = errors.New("username and password cannot contain spaces")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrBadCredentials     = errors.New("wrong username or password")
	ErrSelfContact        = errors.New("cannot add yourself as a contact")
	ErrContactExists      = errors.New("already in your contacts")
	ErrNotContact         = errors.New("not in your contact list")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrNothingToUndo      = errors.New("no message to undo for this receiver")
	ErrNoReceived         = errors.New("no received messages")
	ErrNoFavorites        = errors.New("no favorites to remove")
)

type Directory struct {
	store        storage.Store
	users        map[int]*models.User
	usernameToID map[string]int
	nextID       int
}

// New builds a directory over store and loads the persisted roster.
func New(store storage.Store) (*Directory, error) {
	d := &Directory{
		store:        store,
		users:        make(map[int]*models.User),
		usernameToID: make(map[string]int),
		nextID:       1,
	}
	if err := d.LoadUsers(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadUsers adds every stored roster entry and advances the id counter past
// the highest stored id.
func (d *Directory) LoadUsers() error {
	users, err := d.store.LoadUsers()
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		d.insert(u)
		if u.ID >= d.nextID {
			d.nextID = u.ID + 1
		}
	}

	log.Printf("Loaded %d users", len(users))
	return nil
}

func (d *Directory) SaveUsers() error {
	return d.store.SaveUsers(d.Users())
}

// SaveUser persists one user's contacts and message collections.
func (d *Directory) SaveUser(u *models.User) error {
	return d.store.SaveUser(u)
}

// LoadUser reloads one user's contacts and message collections from the store.
func (d *Directory) LoadUser(u *models.User) error {
	return d.store.LoadUser(u)
}

func (d *Directory) insert(u *models.User) {
	d.users[u.ID] = u
	d.usernameToID[u.Username] = u.ID
}

func (d *Directory) Register(username, password string) (*models.User, error) {
	if d.UserExists(username) {
		return nil, ErrUserExists
	}
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	if strings.ContainsAny(username, " \t\r\n") || strings.ContainsAny(password, " \t\r\n") {
		return nil, ErrInvalidCredentials
	}

	u := models.NewUser(d.nextID, username, password)
	d.insert(u)
	d.nextID++

	if err := d.store.SaveUser(u); err != nil {
		log.Printf("Failed to save files for user %d: %v", u.ID, err)
	}
	if err := d.SaveUsers(); err != nil {
		log.Printf("Failed to save users: %v", err)
	}

	log.Printf("Registered user %s with id %d", username, u.ID)
	return u, nil
}

// Login checks credentials and reloads the user's stored state. The returned
// user stays owned by the directory.
func (d *Directory) Login(username, password string) (*models.User, error) {
	u, ok := d.UserByUsername(username)
	if !ok {
		log.Printf("Login failed for %s: unknown user", username)
		return nil, ErrUserNotFound
	}
	if u.Password != password {
		log.Printf("Login failed for %s: bad credentials", username)
		return nil, ErrBadCredentials
	}

	if err := d.store.LoadUser(u); err != nil {
		log.Printf("Failed to load files for user %d: %v", u.ID, err)
	}

	log.Printf("User %s logged in", username)
	return u, nil
}

// Logout persists the user and the roster.
func (d *Directory) Logout(u *models.User) error {
	if err := d.store.SaveUser(u); err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	if err := d.SaveUsers(); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	log.Printf("User %s logged out", u.Username)
	return nil
}

func (d *Directory) UserExists(username string) bool {
	_, ok := d.usernameToID[username]
	return ok
}

func (d *Directory) UserByID(id int) (*models.User, bool) {
	u, ok := d.users[id]
	return u, ok
}

func (d *Directory) UserByUsername(username string) (*models.User, bool) {
	id, ok := d.usernameToID[username]
	if !ok {
		return nil, false
	}
	return d.UserByID(id)
}

// Username resolves an id to its username.
func (d *Directory) Username(id int) (string, bool) {
	u, ok := d.users[id]
	if !ok {
		return "", false
	}
	return u.Username, true
}

// Users lists all users ordered by id.
func (d *Directory) Users() []*models.User {
	users := make([]*models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
