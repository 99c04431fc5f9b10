package directory

import (
	"fmt"
	"log"

	"saraha/models"
)

// AddContact adds the registered user name to me's contacts.
func (d *Directory) AddContact(me *models.User, name string) error {
	target, ok := d.UserByUsername(name)
	if !ok {
		return ErrUserNotFound
	}
	if target.ID == me.ID {
		return ErrSelfContact
	}
	if me.HasContact(name) {
		return ErrContactExists
	}

	me.AddContact(name, target.ID)
	d.persist(me)
	return nil
}

// Send delivers text from me to receiverName. The receiver's stored state is
// reloaded first so messages saved by an earlier session are not overwritten,
// then both users are saved.
func (d *Directory) Send(me *models.User, receiverName, text string, anonymous bool) (models.Message, error) {
	if text == "" {
		return models.Message{}, ErrEmptyMessage
	}
	receiver, ok := d.UserByUsername(receiverName)
	if !ok {
		return models.Message{}, ErrUserNotFound
	}

	if receiver.ID != me.ID {
		if err := d.store.LoadUser(receiver); err != nil {
			log.Printf("Failed to load files for user %d: %v", receiver.ID, err)
		}
	}

	m := me.SendMessage(receiver, text, anonymous)
	d.persist(me)
	if receiver.ID != me.ID {
		d.persist(receiver)
	}
	return m, nil
}

// Undo retracts me's last message if it went to receiverName.
func (d *Directory) Undo(me *models.User, receiverName string) error {
	receiver, ok := d.UserByUsername(receiverName)
	if !ok {
		return ErrUserNotFound
	}

	if receiver.ID != me.ID {
		if err := d.store.LoadUser(receiver); err != nil {
			log.Printf("Failed to load files for user %d: %v", receiver.ID, err)
		}
	}

	if !me.UndoLastMessage(receiver.ID, receiver) {
		return ErrNothingToUndo
	}

	d.persist(me)
	if receiver.ID != me.ID {
		d.persist(receiver)
	}
	return nil
}

func (d *Directory) AddFavorite(me *models.User) error {
	if !me.AddFavorite() {
		return ErrNoReceived
	}
	d.persist(me)
	return nil
}

func (d *Directory) RemoveOldestFavorite(me *models.User) error {
	if !me.RemoveOldestFavorite() {
		return ErrNoFavorites
	}
	d.persist(me)
	return nil
}

// ContactID resolves name to an id that must be in me's contacts.
func (d *Directory) ContactID(me *models.User, name string) (int, error) {
	u, ok := d.UserByUsername(name)
	if !ok {
		return 0, ErrUserNotFound
	}
	if !me.IsContactID(u.ID) {
		return 0, fmt.Errorf("%s is %w", name, ErrNotContact)
	}
	return u.ID, nil
}

// persist saves u, logging rather than returning I/O failures.
func (d *Directory) persist(u *models.User) {
	if err := d.store.SaveUser(u); err != nil {
		log.Printf("Failed to save files for user %d: %v", u.ID, err)
	}
}
