package ui

import (
	"strings"

	"github.com/rivo/tview"
)

func newForm(title string) *tview.Form {
	form := tview.NewForm()
	form.SetBackgroundColor(ColorBg)
	form.SetFieldBackgroundColor(ColorField)
	form.SetFieldTextColor(ColorFg)
	form.SetLabelColor(ColorHighlight)
	form.SetButtonBackgroundColor(ColorButton)
	form.SetButtonTextColor(ColorTitle)
	form.SetBorder(true)
	form.SetBorderColor(ColorBorder)
	form.SetTitle(title)
	form.SetTitleColor(ColorTitle)
	return form
}

func newStatusLabel() *tview.TextView {
	label := tview.NewTextView()
	label.SetBackgroundColor(ColorBg)
	label.SetTextColor(ColorError)
	return label
}

// centered places p in the middle of the screen at the given size.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(p, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)
}

// showDialog stacks a form and its status line over the main page.
func (a *App) showDialog(form *tview.Form, statusLabel *tview.TextView, width, height int) {
	form.SetCancelFunc(a.closeDialog)
	form.AddButton("Cancel", a.closeDialog)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, height, 0, true).
		AddItem(statusLabel, 1, 0, false)
	flex.SetBackgroundColor(ColorBg)

	a.pages.AddPage("dialog", centered(flex, width, height+1), true, true)
	a.app.SetFocus(form)
}

func (a *App) closeDialog() {
	a.pages.RemovePage("dialog")
	a.app.SetFocus(a.viewList)
}

// completeContact offers contact names starting with the typed prefix.
func (a *App) completeContact(current string) []string {
	if current == "" {
		return nil
	}
	var matches []string
	for _, c := range a.contacts {
		if strings.HasPrefix(c.Username, current) {
			matches = append(matches, c.Username)
		}
	}
	return matches
}

func (a *App) showAddContactDialog() {
	form := newForm(" Add Contact ")
	statusLabel := newStatusLabel()

	nameField := tview.NewInputField()
	nameField.SetLabel("Username: ")
	nameField.SetFieldWidth(30)
	form.AddFormItem(nameField)

	form.AddButton("Add", func() {
		if err := a.dir.AddContact(a.user, nameField.GetText()); err != nil {
			statusLabel.SetText(err.Error())
			return
		}
		a.closeDialog()
		a.setStatus("Contact added.")
		a.refresh()
	})

	a.showDialog(form, statusLabel, 50, 7)
}

func (a *App) showSendDialog() {
	form := newForm(" Send Message ")
	statusLabel := newStatusLabel()

	toField := tview.NewInputField()
	toField.SetLabel("To: ")
	toField.SetFieldWidth(30)
	toField.SetText(a.selectedContact())
	toField.SetAutocompleteFunc(a.completeContact)

	anonBox := tview.NewCheckbox()
	anonBox.SetLabel("Anonymous: ")

	textField := tview.NewInputField()
	textField.SetLabel("Message: ")
	textField.SetFieldWidth(50)

	form.AddFormItem(toField)
	form.AddFormItem(anonBox)
	form.AddFormItem(textField)

	form.AddButton("Send", func() {
		m, err := a.dir.Send(a.user, toField.GetText(), textField.GetText(), anonBox.IsChecked())
		if err != nil {
			statusLabel.SetText(err.Error())
			return
		}
		a.closeDialog()
		if m.Anonymous {
			a.setStatus("Message sent (Anonymously).")
		} else {
			a.setStatus("Message sent.")
		}
		a.refresh()
	})

	a.showDialog(form, statusLabel, 70, 11)
	if toField.GetText() != "" {
		form.SetFocus(2)
		a.app.SetFocus(form)
	}
}

func (a *App) showUndoDialog() {
	last, ok := a.user.LastSent()
	if !ok {
		a.showInfo("No sent messages.")
		return
	}

	form := newForm(" Undo: " + tview.Escape(truncate(last.Text, 30)) + " ")
	statusLabel := newStatusLabel()

	toField := tview.NewInputField()
	toField.SetLabel("Receiver: ")
	toField.SetFieldWidth(30)
	if name, ok := a.dir.Username(last.ReceiverID); ok {
		toField.SetText(name)
	}
	toField.SetAutocompleteFunc(a.completeContact)
	form.AddFormItem(toField)

	form.AddButton("Undo", func() {
		if err := a.dir.Undo(a.user, toField.GetText()); err != nil {
			statusLabel.SetText(err.Error())
			return
		}
		a.closeDialog()
		a.setStatus("Last message deleted.")
		a.refresh()
	})

	a.showDialog(form, statusLabel, 60, 7)
}

// showInfo shows a one-button message box.
func (a *App) showInfo(text string) {
	modal := tview.NewModal()
	modal.SetText(text)
	modal.SetBackgroundColor(ColorBg)
	modal.SetTextColor(ColorFg)
	modal.SetButtonBackgroundColor(ColorButton)
	modal.SetButtonTextColor(ColorTitle)
	modal.AddButtons([]string{"OK"})
	modal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		a.closeDialog()
	})

	a.pages.AddPage("dialog", modal, true, true)
	a.app.SetFocus(modal)
}
