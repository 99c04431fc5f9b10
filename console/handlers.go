package console

import (
	"errors"
	"log"

	"saraha/directory"
)

func (c *Console) handleRegister() error {
	username, err := c.prompt("Enter username: ")
	if err != nil {
		return err
	}
	password, err := c.promptPassword("Enter password: ")
	if err != nil {
		return err
	}

	u, err := c.dir.Register(username, password)
	if err != nil {
		c.printf("Error: %v\n", err)
		return nil
	}

	c.printf("Registered successfully! Your ID: %d\n", u.ID)
	return nil
}

func (c *Console) handleLogin() (*Session, error) {
	username, err := c.prompt("Enter username: ")
	if err != nil {
		return nil, err
	}
	password, err := c.promptPassword("Enter password: ")
	if err != nil {
		return nil, err
	}

	u, err := c.dir.Login(username, password)
	if err != nil {
		c.printf("Error: %v\n", err)
		return nil, nil
	}

	c.printf("Logged in successfully!\n")
	return &Session{User: u}, nil
}

func (c *Console) handleLogout(session *Session) {
	if err := c.dir.Logout(session.User); err != nil {
		log.Printf("Logout error: %v", err)
	}
	session.User = nil
	c.printf("Logged out.\n")
}

func (c *Console) handleAddContact(session *Session) error {
	name, err := c.prompt("Enter contact username: ")
	if err != nil {
		return err
	}

	if err := c.dir.AddContact(session.User, name); err != nil {
		c.printf("Error: %v\n", err)
		return nil
	}

	c.printf("Contact added.\n")
	return nil
}

func (c *Console) handleSend(session *Session) error {
	receiver, err := c.prompt("Enter receiver username: ")
	if err != nil {
		return err
	}
	if !c.dir.UserExists(receiver) {
		c.printf("Error: %v\n", directory.ErrUserNotFound)
		return nil
	}

	choice, err := c.prompt("Send as (1) Known / (2) Unknown? [1/2]: ")
	if err != nil {
		return err
	}
	anonymous := false
	switch choice {
	case "1":
	case "2":
		anonymous = true
	default:
		c.printf("Invalid choice. Sending as Known.\n")
	}

	text, err := c.prompt("Enter message: ")
	if err != nil {
		return err
	}

	if _, err := c.dir.Send(session.User, receiver, text, anonymous); err != nil {
		c.printf("Error: %v\n", err)
		return nil
	}

	if anonymous {
		c.printf("Message sent (Anonymously).\n")
	} else {
		c.printf("Message sent.\n")
	}
	return nil
}

func (c *Console) handleUndo(session *Session) error {
	receiver, err := c.prompt("Enter receiver username to undo last: ")
	if err != nil {
		return err
	}

	if err := c.dir.Undo(session.User, receiver); err != nil {
		c.printf("Error: %v\n", err)
		return nil
	}

	c.printf("Last message deleted.\n")
	return nil
}

func (c *Console) handleViewContacts(session *Session) {
	contacts := session.User.SortedContacts()
	if len(contacts) == 0 {
		c.printf("No contacts.\n")
		return
	}

	c.printf("Contacts:\n")
	for _, contact := range contacts {
		c.printf("- %s (ID: %d)\n", contact.Username, contact.ID)
	}
}

func (c *Console) handleViewSent(session *Session) {
	sent := session.User.Sent()
	if len(sent) == 0 {
		c.printf("No sent messages.\n")
		return
	}

	c.printf("Sent Messages (latest first):\n")
	for i := len(sent) - 1; i >= 0; i-- {
		m := sent[i]
		suffix := ""
		if m.Anonymous {
			suffix = " (Sent Anonymously)"
		}
		c.printf("[%s] To ID %d: %s%s\n", m.FormattedTime(), m.ReceiverID, m.Text, suffix)
	}
}

func (c *Console) handleReceivedFrom(session *Session) error {
	name, err := c.prompt("Enter contact username: ")
	if err != nil {
		return err
	}

	senderID, err := c.dir.ContactID(session.User, name)
	if err != nil {
		if errors.Is(err, directory.ErrNotContact) {
			c.printf("Error: %v. Use Option 10 to see all received messages.\n", err)
		} else {
			c.printf("Error: %v\n", err)
		}
		return nil
	}

	entries := c.dir.ReceivedFrom(session.User, senderID)
	if len(entries) == 0 {
		c.printf("No defined messages found from this contact.\n")
		return nil
	}
	for _, e := range entries {
		c.printf("%s\n", e)
	}
	return nil
}

func (c *Console) handleAddFavorite(session *Session) {
	if err := c.dir.AddFavorite(session.User); err != nil {
		c.printf("No received messages.\n")
		return
	}
	c.printf("Last received message added to favorites.\n")
}

func (c *Console) handleRemoveFavorite(session *Session) {
	if err := c.dir.RemoveOldestFavorite(session.User); err != nil {
		c.printf("No favorites to remove.\n")
		return
	}
	c.printf("Oldest favorite removed.\n")
}

func (c *Console) handleViewFavorites(session *Session) {
	favorites := session.User.Favorites()
	if len(favorites) == 0 {
		c.printf("No favorite messages.\n")
		return
	}

	c.printf("Favorite Messages:\n")
	for _, m := range favorites {
		c.printf("%s (From ID: %d, Anonymous: %s)\n", m.Text, m.SenderID, yesNo(m.Anonymous))
	}
}

func (c *Console) handleViewAllReceived(session *Session) {
	entries := c.dir.AllReceived(session.User)
	if len(entries) == 0 {
		c.printf("No received messages.\n")
		return
	}

	c.printf("Received Messages (latest first):\n")
	for _, e := range entries {
		c.printf("%s\n", e)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
