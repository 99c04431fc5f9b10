package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"saraha/codec"
	"saraha/models"
)

const rosterFile = "users.txt"

// FileStore keeps the canonical flat-file layout:
//
//	users.txt               id username password
//	user_<id>_contacts.txt  username id
//	user_<id>_sent.txt      5-line message records
//	user_<id>_received.txt
//	user_<id>_fav.txt
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) userPath(id int, kind string) string {
	return filepath.Join(fs.dir, "user_"+strconv.Itoa(id)+"_"+kind+".txt")
}

func (fs *FileStore) LoadUsers() ([]*models.User, error) {
	var accounts []codec.Account
	found, err := fs.read(filepath.Join(fs.dir, rosterFile), func(r io.Reader) error {
		var err error
		accounts, err = codec.ReadUsers(r)
		return err
	})
	if err != nil && !errors.Is(err, codec.ErrMalformedRecord) {
		return nil, err
	}
	if err != nil {
		log.Printf("Roster truncated: %v", err)
	}
	if !found {
		return nil, nil
	}

	users := make([]*models.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, models.NewUser(a.ID, a.Username, a.Password))
	}
	return users, nil
}

func (fs *FileStore) SaveUsers(users []*models.User) error {
	accounts := make([]codec.Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, codec.Account{ID: u.ID, Username: u.Username, Password: u.Password})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return fs.write(filepath.Join(fs.dir, rosterFile), func(w io.Writer) error {
		return codec.WriteUsers(w, accounts)
	})
}

// LoadUser merges stored contacts into u and replaces each message collection
// whose file exists. Malformed files keep the records read before the damage.
func (fs *FileStore) LoadUser(u *models.User) error {
	var contacts map[string]int
	found, err := fs.read(fs.userPath(u.ID, "contacts"), func(r io.Reader) error {
		var err error
		contacts, err = codec.ReadContacts(r)
		return err
	})
	if err := fs.tolerate(u, "contacts", err); err != nil {
		return err
	}
	if found {
		u.MergeContacts(contacts)
	}

	boxes := []struct {
		kind    string
		replace func([]models.Message)
	}{
		{"received", u.ReplaceReceived},
		{"sent", u.ReplaceSent},
		{"fav", u.ReplaceFavorites},
	}
	for _, box := range boxes {
		var msgs []models.Message
		found, err := fs.read(fs.userPath(u.ID, box.kind), func(r io.Reader) error {
			var err error
			msgs, err = codec.ReadMessages(r)
			return err
		})
		if err := fs.tolerate(u, box.kind, err); err != nil {
			return err
		}
		if found {
			box.replace(msgs)
		}
	}
	return nil
}

func (fs *FileStore) SaveUser(u *models.User) error {
	if err := fs.write(fs.userPath(u.ID, "contacts"), func(w io.Writer) error {
		return codec.WriteContacts(w, u.Contacts())
	}); err != nil {
		return err
	}

	boxes := []struct {
		kind string
		msgs []models.Message
	}{
		{"received", u.Received()},
		{"sent", u.Sent()},
		{"fav", u.Favorites()},
	}
	for _, box := range boxes {
		msgs := box.msgs
		if err := fs.write(fs.userPath(u.ID, box.kind), func(w io.Writer) error {
			return codec.WriteMessages(w, msgs)
		}); err != nil {
			return err
		}
	}
	return nil
}

// tolerate logs truncated loads and passes real I/O errors through.
func (fs *FileStore) tolerate(u *models.User, kind string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, codec.ErrMalformedRecord) {
		log.Printf("User %d %s file truncated: %v", u.ID, kind, err)
		return nil
	}
	return fmt.Errorf("load user %d %s: %w", u.ID, kind, err)
}

// read opens path and hands it to decode. A missing file reports
// found=false and no error.
func (fs *FileStore) read(path string, decode func(io.Reader) error) (found bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer file.Close()

	return true, decode(file)
}

// write encodes into a temp file and renames it over path.
func (fs *FileStore) write(path string, encode func(io.Writer) error) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	if err := encode(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
