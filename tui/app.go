// Package tui provides an optional terminal progress view for a
// filtering run, used in place of plain console log lines when
// --tui is set. Adapted from the teacher's tui/app.go: the same
// tview.Application/Pages/Flex construction, QueueUpdateDraw for
// thread-safe updates from a background goroutine, and
// SetInputCapture for key bindings — reduced to a single scrolling
// log view plus a status bar, since logfilter has no per-result
// visualization analogous to the teacher's trie/CIDR panels.
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App is a minimal progress view: a scrolling log panel and a status
// bar, quittable with 'q' or Ctrl-C.
type App struct {
	app        *tview.Application
	logView    *tview.TextView
	statusBar  *tview.TextView
	mu         sync.Mutex
	quitCalled bool
}

// New builds the view but does not start it; call Run to block until
// the user quits or Stop is called from elsewhere.
func New() *App {
	a := &App{app: tview.NewApplication()}
	a.setupUI()
	return a
}

func (a *App) setupUI() {
	a.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(5000).
		SetChangedFunc(func() { a.app.Draw() })
	a.logView.SetBorder(true).SetTitle(" logfilter progress ")

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]running...[white]  ('q' to quit)")
	a.statusBar.SetBorder(false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.logView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	pages := tview.NewPages().AddPage("progress", layout, true, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				a.Stop()
				return nil
			}
		}
		return event
	})

	a.app.SetRoot(pages, true)
}

// Log appends a line to the scrolling panel. Safe to call from any
// goroutine.
func (a *App) Log(line string) {
	a.app.QueueUpdateDraw(func() {
		fmt.Fprintln(a.logView, line)
	})
}

// SetStatus replaces the status bar's text. Safe to call from any
// goroutine.
func (a *App) SetStatus(text string) {
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetText(text)
	})
}

// Run blocks until Stop is called (by the key binding or by the
// caller once the underlying work finishes).
func (a *App) Run() error {
	return a.app.Run()
}

// Stop tears down the view. Safe to call more than once, and from
// any goroutine.
func (a *App) Stop() {
	a.mu.Lock()
	already := a.quitCalled
	a.quitCalled = true
	a.mu.Unlock()
	if already {
		return
	}
	a.app.Stop()
}
