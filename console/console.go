package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"saraha/directory"
	"saraha/models"
)

// Console runs the numbered menus over a line-oriented reader and writer.
type Console struct {
	dir          *directory.Directory
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

// Session is one logged-in user. The user is borrowed from the directory
// and dropped at logout.
type Session struct {
	User *models.User
}

func New(dir *directory.Directory, in io.Reader, out io.Writer) *Console {
	c := &Console{
		dir: dir,
		in:  bufio.NewReader(in),
		out: out,
	}
	c.readPassword = c.readLine
	return c
}

// SetPasswordReader replaces how passwords are read, e.g. without echo on a
// terminal.
func (c *Console) SetPasswordReader(fn func() (string, error)) {
	c.readPassword = fn
}

// Run shows the top-level menu until the user exits or input ends.
func (c *Console) Run() error {
	for {
		c.printf("\n===== Saraha (Anonymous Enabled) =====\n")
		c.printf("1- Register\n2- Login\n3- Exit\nChoose: ")

		choice, err := c.readChoice()
		if err == io.EOF {
			c.printf("\nGoodbye!\n")
			return nil
		}
		if err != nil {
			c.printf("Invalid input. Please try again.\n")
			continue
		}

		switch choice {
		case 1:
			if err := c.handleRegister(); err == io.EOF {
				return nil
			}
		case 2:
			session, err := c.handleLogin()
			if err == io.EOF {
				return nil
			}
			if session == nil {
				continue
			}
			if err := c.userMenu(session); err == io.EOF {
				return nil
			}
		case 3:
			c.printf("Goodbye!\n")
			return nil
		default:
			c.printf("Invalid choice.\n")
		}
	}
}

// userMenu dispatches logged-in commands until logout. Input ending logs the
// user out before returning io.EOF.
func (c *Console) userMenu(session *Session) error {
	for {
		c.printf("\n--- User Menu (%s) ---\n", session.User.Username)
		c.printf("1 Add Contact\n2 Send Message\n3 Undo Last\n4 View Contacts\n")
		c.printf("5 View Sent\n6 View Received From Contact (Only Known Messages)\n")
		c.printf("7 Add Favorite\n8 Remove Oldest Favorite\n9 View Favorites\n10 View All Received\n0 Logout\nChoose: ")

		choice, err := c.readChoice()
		if err == io.EOF {
			c.handleLogout(session)
			return io.EOF
		}
		if err != nil {
			c.printf("Invalid input. Please try again.\n")
			continue
		}

		switch choice {
		case 0:
			c.handleLogout(session)
			return nil
		case 1:
			err = c.handleAddContact(session)
		case 2:
			err = c.handleSend(session)
		case 3:
			err = c.handleUndo(session)
		case 4:
			c.handleViewContacts(session)
		case 5:
			c.handleViewSent(session)
		case 6:
			err = c.handleReceivedFrom(session)
		case 7:
			c.handleAddFavorite(session)
		case 8:
			c.handleRemoveFavorite(session)
		case 9:
			c.handleViewFavorites(session)
		case 10:
			c.handleViewAllReceived(session)
		default:
			c.printf("Invalid choice.\n")
		}

		if err == io.EOF {
			c.handleLogout(session)
			return io.EOF
		}
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns the next trimmed input line. A last line without a
// newline still counts; io.EOF is returned only when nothing is left.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) readChoice() (int, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}

func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	return c.readLine()
}

func (c *Console) promptPassword(label string) (string, error) {
	c.printf("%s", label)
	return c.readPassword()
}
