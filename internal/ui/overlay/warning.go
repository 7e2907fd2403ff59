package overlay

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// WarningActions are the user responses to the pre-break warning.
type WarningActions struct {
	OnPostpone func()
	OnStartNow func()
}

// WarningWindow counts down to the next big break and offers to postpone it
// or start it right away. All methods must be called on the fyne goroutine.
type WarningWindow struct {
	window         fyne.Window
	countdownLabel *widget.Label
	postponeButton *widget.Button
	startButton    *widget.Button
	actions        WarningActions
	cancelCtx      context.CancelFunc
	visible        bool
}

// NewWarningWindow creates the warning window. postpone is only used for
// the button label.
func NewWarningWindow(app fyne.App, postpone time.Duration, actions WarningActions) *WarningWindow {
	window := app.NewWindow("Break soon")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	countdownLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	warning := &WarningWindow{
		window:         window,
		countdownLabel: countdownLabel,
		actions:        actions,
	}
	warning.postponeButton = widget.NewButton(postponeLabel(postpone), warning.handlePostpone)
	warning.startButton = widget.NewButton("Start now", warning.handleStartNow)
	warning.startButton.Importance = widget.HighImportance

	buttons := container.NewHBox(layout.NewSpacer(), warning.postponeButton, warning.startButton, layout.NewSpacer())
	window.SetContent(container.NewVBox(countdownLabel, buttons))
	window.SetFixedSize(true)
	// Closing only hides the window; the break still starts when the countdown ends.
	window.SetCloseIntercept(warning.Hide)

	return warning
}

// Show displays the countdown until the big break.
func (warning *WarningWindow) Show(countdown time.Duration) {
	warning.stopTicking()
	warning.setCountdown(countdown)
	warning.visible = true
	warning.window.Show()
	warning.window.CenterOnScreen()
	warning.window.RequestFocus()

	ctx, cancel := context.WithCancel(context.Background())
	warning.cancelCtx = cancel
	go warning.tick(ctx, time.Now().Add(countdown))
}

// Hide closes the window.
func (warning *WarningWindow) Hide() {
	warning.stopTicking()
	warning.visible = false
	warning.window.Hide()
}

// Visible reports whether the countdown is on screen.
func (warning *WarningWindow) Visible() bool {
	return warning.visible
}

func (warning *WarningWindow) handlePostpone() {
	warning.Hide()
	if warning.actions.OnPostpone != nil {
		warning.actions.OnPostpone()
	}
}

func (warning *WarningWindow) handleStartNow() {
	warning.Hide()
	if warning.actions.OnStartNow != nil {
		warning.actions.OnStartNow()
	}
}

func (warning *WarningWindow) tick(ctx context.Context, deadline time.Time) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := time.Until(deadline)
			fyne.Do(func() {
				if ctx.Err() == nil {
					warning.setCountdown(remaining)
				}
			})
		}
	}
}

func (warning *WarningWindow) stopTicking() {
	if warning.cancelCtx != nil {
		warning.cancelCtx()
		warning.cancelCtx = nil
	}
}

func (warning *WarningWindow) setCountdown(remaining time.Duration) {
	warning.countdownLabel.SetText(fmt.Sprintf("Big break in %s", formatDuration(remaining)))
}

func postponeLabel(postpone time.Duration) string {
	minutes := int(postpone.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		return "Postpone"
	}
	return fmt.Sprintf("Postpone %d min", minutes)
}
