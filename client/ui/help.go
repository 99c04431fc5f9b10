package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (a *App) showHelp() {
	helpText := `
 [yellow]Main Screen[-]
 ───────────────────────────────────────────────────────────────
   [white]F1[-]       Show this help
   [white]F2[-]       Add new contact
   [white]F3[-]       Send message (to the selected "From" contact by default)
   [white]F4[-]       Undo your last sent message
   [white]F5[-]       Reload your messages from disk
   [white]F7[-]       Add the last received message to favorites
   [white]F8[-]       Remove the oldest favorite
   [white]Tab[-]      Next view (Shift+Tab: previous)
   [white]↑ ↓[-]      Choose a view
   [white]PgUp/Dn[-]  Scroll messages
   [white]F10/Esc[-]  Logout and quit

 [yellow]Views[-]
 ───────────────────────────────────────────────────────────────
   All Received    Every message you received, newest first
   Favorites       Saved copies, oldest first
   Sent            Messages you sent, newest first
   Contacts        Your contact list
   From <name>     Identified messages from one contact

 [yellow]Anonymity[-]
 ───────────────────────────────────────────────────────────────
   [fuchsia]Sender ID 3 (Anonymous)[-]  sent anonymously, never resolved
   [gray]Sender ID 3[-]              sender is not in your contacts
   Add a sender to your contacts to see their name on known messages.
`

	helpView := tview.NewTextView()
	helpView.SetText(helpText)
	helpView.SetBackgroundColor(ColorBg)
	helpView.SetTextColor(ColorFg)
	helpView.SetDynamicColors(true)
	helpView.SetBorder(true)
	helpView.SetBorderColor(ColorBorder)
	helpView.SetTitle(" Help ")
	helpView.SetTitleColor(ColorTitle)
	helpView.SetScrollable(true)

	// Status bar
	statusBar := tview.NewTextView()
	statusBar.SetBackgroundColor(ColorButton)
	statusBar.SetTextColor(ColorTitle)
	statusBar.SetTextAlign(tview.AlignCenter)
	statusBar.SetText(" ↑↓/PgUp/PgDn: Scroll | Esc/Enter/F1: Close ")

	// Layout
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(helpView, 0, 1, true).
		AddItem(statusBar, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)

	// Handle keyboard
	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyEnter, tcell.KeyF1:
			a.pages.RemovePage("help")
			a.app.SetFocus(a.viewList)
			return nil
		case tcell.KeyUp:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row-1, col)
			return nil
		case tcell.KeyDown:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row+1, col)
			return nil
		case tcell.KeyPgUp:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row-10, col)
			return nil
		case tcell.KeyPgDn:
			row, col := helpView.GetScrollOffset()
			helpView.ScrollTo(row+10, col)
			return nil
		case tcell.KeyHome:
			helpView.ScrollToBeginning()
			return nil
		case tcell.KeyEnd:
			helpView.ScrollToEnd()
			return nil
		}
		return event
	})

	a.pages.AddPage("help", flex, true, true)
}

