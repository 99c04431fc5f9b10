package ui

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"saraha/directory"
	"saraha/models"
)

// App is the terminal front end. All directory calls run on the tview event
// goroutine.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	dir      *directory.Directory
	user     *models.User
	contacts []models.Contact

	viewList  *tview.List
	content   *tview.TextView
	statusBar *tview.TextView
}

func NewApp(dir *directory.Directory) *App {
	return &App{dir: dir}
}

// Run starts the application
func (a *App) Run() error {
	a.app = tview.NewApplication()
	a.pages = tview.NewPages()

	background := tview.NewBox()
	background.SetBackgroundColor(tcell.NewRGBColor(64, 64, 64))
	a.pages.AddPage("background", background, true, true)

	a.showAuthDialog()

	return a.app.SetRoot(a.pages, true).EnableMouse(false).Run()
}

// quit logs the current user out and exits.
func (a *App) quit() {
	if a.user != nil {
		if err := a.dir.Logout(a.user); err != nil {
			log.Printf("Logout error: %v", err)
		}
		a.user = nil
	}
	a.app.Stop()
}
