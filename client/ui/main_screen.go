package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Fixed entries at the top of the view list; contacts follow.
const (
	viewReceived = iota
	viewFavorites
	viewSent
	viewContacts
	fixedViews
)

var viewNames = [fixedViews]string{"All Received", "Favorites", "Sent", "Contacts"}

const statusHint = " F1 Help | F2 Add | F3 Send | F4 Undo | F5 Refresh | F7 Fav | F8 Unfav | Tab View | F10 Quit "

func (a *App) showMainScreen() {
	a.pages.RemovePage("auth")
	a.pages.RemovePage("background")

	a.pages.AddPage("main", a.createMainPage(), true, true)
	a.refresh()
	a.setStatus("")

	a.app.SetFocus(a.viewList)
}

func (a *App) createMainPage() tview.Primitive {
	a.viewList = tview.NewList()
	a.viewList.SetBorder(true)
	a.viewList.SetBorderColor(ColorBorder)
	a.viewList.SetBackgroundColor(ColorBg)
	a.viewList.SetTitleColor(ColorTitle)
	a.viewList.SetMainTextColor(ColorFg)
	a.viewList.SetMainTextStyle(tcell.StyleDefault.Foreground(ColorFg).Background(ColorBg))
	a.viewList.SetSelectedTextColor(ColorTitle)
	a.viewList.SetSelectedBackgroundColor(ColorButton)
	a.viewList.SetHighlightFullLine(true)
	a.viewList.ShowSecondaryText(false)
	a.viewList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.renderView(index)
	})

	a.content = tview.NewTextView()
	a.content.SetBorder(true)
	a.content.SetBorderColor(ColorBorder)
	a.content.SetBackgroundColor(ColorBg)
	a.content.SetTitleColor(ColorTitle)
	a.content.SetTextColor(ColorFg)
	a.content.SetDynamicColors(true)
	a.content.SetScrollable(true)
	a.content.SetWordWrap(true)

	a.statusBar = tview.NewTextView()
	a.statusBar.SetBackgroundColor(ColorButton)
	a.statusBar.SetTextColor(ColorTitle)
	a.statusBar.SetTextAlign(tview.AlignCenter)

	body := tview.NewFlex().
		AddItem(a.viewList, 28, 0, true).
		AddItem(a.content, 0, 1, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)
	mainFlex.SetBackgroundColor(ColorBg)

	mainFlex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			a.showHelp()
			return nil
		case tcell.KeyF2:
			a.showAddContactDialog()
			return nil
		case tcell.KeyF3:
			a.showSendDialog()
			return nil
		case tcell.KeyF4:
			a.showUndoDialog()
			return nil
		case tcell.KeyF5:
			if err := a.dir.LoadUser(a.user); err != nil {
				a.setStatus(fmt.Sprintf("Reload failed: %v", err))
			} else {
				a.setStatus("Refreshed.")
			}
			a.refresh()
			return nil
		case tcell.KeyF7:
			a.addFavorite()
			return nil
		case tcell.KeyF8:
			a.removeOldestFavorite()
			return nil
		case tcell.KeyTab:
			a.cycleView(1)
			return nil
		case tcell.KeyBacktab:
			a.cycleView(-1)
			return nil
		case tcell.KeyPgUp, tcell.KeyPgDn:
			row, col := a.content.GetScrollOffset()
			if event.Key() == tcell.KeyPgUp {
				row -= 10
			} else {
				row += 10
			}
			a.content.ScrollTo(row, col)
			return nil
		case tcell.KeyF10, tcell.KeyEsc:
			a.quit()
			return nil
		}
		return event
	})

	return mainFlex
}

// refresh rebuilds the view list from the user's contacts and redraws the
// selected view.
func (a *App) refresh() {
	current := a.viewList.GetCurrentItem()
	a.contacts = a.user.SortedContacts()

	a.viewList.Clear()
	for _, name := range viewNames {
		a.viewList.AddItem(name, "", 0, nil)
	}
	for _, c := range a.contacts {
		a.viewList.AddItem("From "+c.Username, "", 0, nil)
	}
	a.viewList.SetTitle(fmt.Sprintf(" %s (ID %d) ", a.user.Username, a.user.ID))

	if current < 0 || current >= a.viewList.GetItemCount() {
		current = viewReceived
	}
	a.viewList.SetCurrentItem(current)
	a.renderView(current)
}

func (a *App) cycleView(step int) {
	count := a.viewList.GetItemCount()
	if count == 0 {
		return
	}
	next := (a.viewList.GetCurrentItem() + step + count) % count
	a.viewList.SetCurrentItem(next)
}

func (a *App) renderView(index int) {
	if a.user == nil {
		return
	}

	var title, text string
	switch {
	case index == viewReceived:
		title = " Received (latest first) "
		text = renderReceived(a.dir.AllReceived(a.user), "")
	case index == viewFavorites:
		title = " Favorites "
		text = renderReceived(a.dir.Favorites(a.user), " (FAVORITE)")
	case index == viewSent:
		title = " Sent (latest first) "
		text = renderSent(a.user.Sent(), a.dir.Username)
	case index == viewContacts:
		title = " Contacts "
		text = renderContacts(a.contacts)
	case index >= fixedViews && index-fixedViews < len(a.contacts):
		c := a.contacts[index-fixedViews]
		title = fmt.Sprintf(" From %s (known messages only) ", c.Username)
		entries := a.dir.ReceivedFrom(a.user, c.ID)
		text = renderReceived(entries, "")
		if len(entries) == 0 {
			text = "[gray]No defined messages found from this contact.[-]"
		}
	default:
		return
	}

	a.content.SetTitle(title)
	a.content.SetText(text)
	a.content.ScrollToBeginning()
}

// selectedContact is the contact behind the current "From" entry, if any.
func (a *App) selectedContact() string {
	index := a.viewList.GetCurrentItem() - fixedViews
	if index < 0 || index >= len(a.contacts) {
		return ""
	}
	return a.contacts[index].Username
}

func (a *App) setStatus(msg string) {
	if msg == "" {
		a.statusBar.SetText(statusHint)
		return
	}
	a.statusBar.SetText(" " + msg + " |" + statusHint)
}

func (a *App) addFavorite() {
	if err := a.dir.AddFavorite(a.user); err != nil {
		a.setStatus("No received messages.")
		return
	}
	a.setStatus("Last received message added to favorites.")
	a.refresh()
}

func (a *App) removeOldestFavorite() {
	if err := a.dir.RemoveOldestFavorite(a.user); err != nil {
		a.setStatus("No favorites to remove.")
		return
	}
	a.setStatus("Oldest favorite removed.")
	a.refresh()
}
