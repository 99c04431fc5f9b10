package ui

import (
	"github.com/rivo/tview"
)

func (a *App) showAuthDialog() {
	form := newForm(" Saraha (Anonymous Enabled) ")

	statusText := tview.NewTextView()
	statusText.SetBackgroundColor(ColorBg)
	statusText.SetTextColor(ColorError)
	statusText.SetTextAlign(tview.AlignCenter)

	loginField := tview.NewInputField()
	loginField.SetLabel("Username: ")
	loginField.SetFieldWidth(30)
	loginField.SetBackgroundColor(ColorBg)

	passwordField := tview.NewInputField()
	passwordField.SetLabel("Password: ")
	passwordField.SetFieldWidth(30)
	passwordField.SetMaskCharacter('*')
	passwordField.SetBackgroundColor(ColorBg)

	form.AddFormItem(loginField)
	form.AddFormItem(passwordField)

	form.AddButton("Login", func() {
		a.doAuth(loginField.GetText(), passwordField.GetText(), statusText, false)
	})

	form.AddButton("Register", func() {
		a.doAuth(loginField.GetText(), passwordField.GetText(), statusText, true)
	})

	form.AddButton("Quit", func() {
		a.app.Stop()
	})
	form.SetCancelFunc(a.app.Stop)

	formFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(statusText, 1, 0, false)

	a.pages.AddPage("auth", centered(formFlex, 54, 12), true, true)
	a.app.SetFocus(form)
}

// doAuth registers first when asked to, then logs in.
func (a *App) doAuth(username, password string, statusText *tview.TextView, register bool) {
	if register {
		if _, err := a.dir.Register(username, password); err != nil {
			statusText.SetText(err.Error())
			return
		}
	}

	u, err := a.dir.Login(username, password)
	if err != nil {
		statusText.SetText(err.Error())
		return
	}

	a.user = u
	a.showMainScreen()
}
