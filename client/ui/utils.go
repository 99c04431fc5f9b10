package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"saraha/directory"
	"saraha/models"
)

const previewLimit = 100

// truncate shortens s to limit runes, marking the cut with "...".
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// preview flattens a body to one escaped line for the content pane.
func preview(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	return tview.Escape(truncate(text, previewLimit))
}

func stamp(m models.Message) string {
	return tview.Escape("[" + m.FormattedTime() + "]")
}

func renderReceived(entries []directory.ReceivedEntry, suffix string) string {
	if len(entries) == 0 {
		return "[gray]No messages.[-]"
	}

	var b strings.Builder
	for _, e := range entries {
		color := "white"
		if e.Anonymous {
			color = "fuchsia"
		} else if strings.HasPrefix(e.Sender, "Sender ID ") {
			color = "gray"
		}
		fmt.Fprintf(&b, "[aqua]%s[-] [%s]%s[-]: %s%s\n",
			stamp(e.Message), color, tview.Escape(e.Sender), preview(e.Text), suffix)
	}
	return b.String()
}

// renderSent lists sent messages newest first. names resolves receiver ids.
func renderSent(sent []models.Message, names directory.NameFunc) string {
	if len(sent) == 0 {
		return "[gray]No sent messages.[-]"
	}

	var b strings.Builder
	for i := len(sent) - 1; i >= 0; i-- {
		m := sent[i]
		to := fmt.Sprintf("ID %d", m.ReceiverID)
		if name, ok := names(m.ReceiverID); ok {
			to = name
		}
		fmt.Fprintf(&b, "[yellow]%s[-] To %s: %s", stamp(m), tview.Escape(to), preview(m.Text))
		if m.Anonymous {
			b.WriteString(" [fuchsia](Sent Anonymously)[-]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderContacts(contacts []models.Contact) string {
	if len(contacts) == 0 {
		return "[gray]No contacts. Press F2 to add one.[-]"
	}

	var b strings.Builder
	for _, c := range contacts {
		fmt.Fprintf(&b, "%s [gray](ID: %d)[-]\n", tview.Escape(c.Username), c.ID)
	}
	return b.String()
}
