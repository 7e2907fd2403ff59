package overlay

import (
	"time"

	"mindfulpause/internal/core/coordinator"

	"fyne.io/fyne/v2"
)

var _ coordinator.Presenter = (*Presenter)(nil)

// Presenter drives the overlays on behalf of the coordinator. Its methods
// are called from the dispatch loop and hand the work to the fyne goroutine.
type Presenter struct {
	pause   *Window
	warning *WarningWindow
}

// NewPresenter wraps the two overlay windows.
func NewPresenter(pause *Window, warning *WarningWindow) *Presenter {
	return &Presenter{pause: pause, warning: warning}
}

func (presenter *Presenter) ShowWarning(countdown time.Duration) {
	fyne.Do(func() {
		presenter.warning.Show(countdown)
	})
}

func (presenter *Presenter) DismissWarning() {
	fyne.Do(presenter.warning.Hide)
}

func (presenter *Presenter) ShowSession(session coordinator.Session) {
	fyne.Do(func() {
		presenter.pause.Show(session)
	})
}

func (presenter *Presenter) CloseSession() {
	fyne.Do(presenter.pause.Hide)
}
