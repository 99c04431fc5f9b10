package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"saraha/models"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
)

// Account is one roster line: id username password.
type Account struct {
	ID       int
	Username string
	Password string
}

// WriteUsers writes the roster, one "id username password" line per account.
func WriteUsers(w io.Writer, accounts []Account) error {
	bw := bufio.NewWriter(w)
	for _, a := range accounts {
		if _, err := fmt.Fprintf(bw, "%d %s %s\n", a.ID, a.Username, a.Password); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadUsers parses the roster as a stream of whitespace separated tokens.
// Reading stops at the first triple whose id is not a number.
func ReadUsers(r io.Reader) ([]Account, error) {
	var accounts []Account
	tokens, err := readTokens(r)
	for i := 0; i+2 < len(tokens); i += 3 {
		id, convErr := strconv.Atoi(tokens[i])
		if convErr != nil {
			return accounts, fmt.Errorf("%w: user id %q", ErrMalformedRecord, tokens[i])
		}
		accounts = append(accounts, Account{ID: id, Username: tokens[i+1], Password: tokens[i+2]})
	}
	return accounts, err
}

// WriteContacts writes "username id" lines sorted by username.
func WriteContacts(w io.Writer, contacts map[string]int) error {
	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Strings(names)

	bw := bufio.NewWriter(w)
	for _, name := range names {
		if _, err := fmt.Fprintf(bw, "%s %d\n", name, contacts[name]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func ReadContacts(r io.Reader) (map[string]int, error) {
	contacts := make(map[string]int)
	tokens, err := readTokens(r)
	for i := 0; i+1 < len(tokens); i += 2 {
		id, convErr := strconv.Atoi(tokens[i+1])
		if convErr != nil {
			return contacts, fmt.Errorf("%w: contact id %q", ErrMalformedRecord, tokens[i+1])
		}
		contacts[tokens[i]] = id
	}
	return contacts, err
}

// WriteMessages writes 5-line records: sender, receiver, anonymous (0/1),
// timestamp, escaped body.
func WriteMessages(w io.Writer, msgs []models.Message) error {
	bw := bufio.NewWriter(w)
	for _, m := range msgs {
		anon := 0
		if m.Anonymous {
			anon = 1
		}
		if _, err := fmt.Fprintf(bw, "%d\n%d\n%d\n%d\n%s\n", m.SenderID, m.ReceiverID, anon, m.Timestamp, Escape(m.Text)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadMessages decodes records until EOF. A record with a non-numeric header
// line or a missing body ends the read: the records decoded so far are
// returned together with ErrMalformedRecord.
func ReadMessages(r io.Reader) ([]models.Message, error) {
	br := bufio.NewReader(r)
	var msgs []models.Message

	for {
		line, ok, err := readLine(br)
		if err != nil {
			return msgs, err
		}
		if !ok {
			return msgs, nil
		}

		var header [4]int64
		header[0], err = strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return msgs, fmt.Errorf("%w: sender %q", ErrMalformedRecord, line)
		}
		for i := 1; i < len(header); i++ {
			line, ok, err = readLine(br)
			if err != nil {
				return msgs, err
			}
			if !ok {
				return msgs, fmt.Errorf("%w: truncated record", ErrMalformedRecord)
			}
			header[i], err = strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				return msgs, fmt.Errorf("%w: field %d %q", ErrMalformedRecord, i, line)
			}
		}

		body, ok, err := readLine(br)
		if err != nil {
			return msgs, err
		}
		if !ok {
			return msgs, fmt.Errorf("%w: missing body", ErrMalformedRecord)
		}

		msgs = append(msgs, models.Message{
			SenderID:   int(header[0]),
			ReceiverID: int(header[1]),
			Anonymous:  header[2] != 0,
			Timestamp:  header[3],
			Text:       unescape(body),
		})
	}
}

// readLine returns the next line without its terminator. ok is false at a
// clean EOF. A final line without a trailing newline is still returned.
func readLine(br *bufio.Reader) (string, bool, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

func readTokens(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}

// Escape protects the characters that would break the one-line body.
func Escape(s string) string {
	var result strings.Builder

	for _, r := range s {
		switch r {
		case '\\':
			result.WriteString("\\\\")
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// unescape reverses Escape. Unknown sequences and a trailing backslash are
// kept literally.
func unescape(s string) string {
	var result strings.Builder
	escape := false

	for _, r := range s {
		if escape {
			switch r {
			case '\\':
				result.WriteRune('\\')
			case 'n':
				result.WriteRune('\n')
			case 'r':
				result.WriteRune('\r')
			default:
				result.WriteRune('\\')
				result.WriteRune(r)
			}
			escape = false
			continue
		}

		if r == '\\' {
			escape = true
			continue
		}

		result.WriteRune(r)
	}

	if escape {
		result.WriteRune('\\')
	}

	return result.String()
}
