package overlay

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"mindfulpause/internal/core/coordinator"
	"mindfulpause/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	// Opacity is the background alpha of darkened overlays.
	Opacity uint8
	// Title names the overlay window.
	Title string
}

// DefaultConfig returns the overlay visuals used by the application.
func DefaultConfig() Config {
	return Config{Opacity: 235, Title: "MindfulPause"}
}

// Window is the pause overlay shown while a session runs. All methods must
// be called on the fyne goroutine.
type Window struct {
	window      fyne.Window
	config      Config
	background  *canvas.Rectangle
	titleLabel  *canvas.Text
	textLabel   *widget.Label
	cueLabel    *canvas.Text
	timerLabel  *canvas.Text
	skipButton  *widget.Button
	engine      *animation.Engine
	session     *coordinator.Session
	cancelCtx   context.CancelFunc
	onInterrupt func(sessionID string)
	confirming  bool
}

const (
	overlayWidthFraction  = float32(0.32)
	overlayHeightFraction = float32(0.24)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
	windowedAlpha         = uint8(255)
)

var (
	textColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	timerColor = color.NRGBA{R: 150, G: 214, B: 170, A: 255}
	cueColor   = color.NRGBA{R: 190, G: 200, B: 230, A: 255}
	darkColor  = color.NRGBA{R: 16, G: 24, B: 32, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the pause overlay. onInterrupt receives the session ID when
// the user ends a session early.
func New(app fyne.App, config Config, onInterrupt func(sessionID string)) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(darkColor)

	titleLabel := canvas.NewText(config.Title, textColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 22

	textLabel := widget.NewLabel("")
	textLabel.Alignment = fyne.TextAlignCenter
	textLabel.Wrapping = fyne.TextWrapWord

	cueLabel := canvas.NewText("", cueColor)
	cueLabel.Alignment = fyne.TextAlignCenter
	cueLabel.TextSize = 18

	timerLabel := canvas.NewText("--:--", timerColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 28

	skipButton := widget.NewButton("Skip", nil)

	column := container.New(&columnLayout{}, titleLabel, textLabel, cueLabel, timerLabel, skipButton)
	window.SetContent(container.NewStack(background, column))

	overlay := &Window{
		window:      window,
		config:      config,
		background:  background,
		titleLabel:  titleLabel,
		textLabel:   textLabel,
		cueLabel:    cueLabel,
		timerLabel:  timerLabel,
		skipButton:  skipButton,
		onInterrupt: onInterrupt,
	}
	overlay.engine = animation.New(animation.DefaultConfig(), func(phase animation.Phase, _ time.Duration) {
		fyne.Do(func() {
			overlay.cueLabel.Text = phase.Label()
			overlay.cueLabel.Refresh()
		})
	})

	skipButton.OnTapped = overlay.requestInterrupt
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			overlay.requestInterrupt()
		}
	})
	// Closing through the window manager counts as Escape.
	window.SetCloseIntercept(overlay.requestInterrupt)

	return overlay
}

// Show opens the overlay for session, replacing any session on screen.
func (overlay *Window) Show(session coordinator.Session) {
	overlay.stopTicking()
	overlay.bind(session)
	overlay.applyWindowMode(session)
	overlay.window.Show()
	overlay.window.RequestFocus()

	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	go overlay.tick(ctx, session.EndsAt())
	if session.Kind == coordinator.SessionBig {
		overlay.engine.Start(ctx)
	}
}

// Hide closes the overlay and stops its timers.
func (overlay *Window) Hide() {
	overlay.stopTicking()
	overlay.session = nil
	overlay.confirming = false
	overlay.window.SetFullScreen(false)
	overlay.window.Hide()
}

func (overlay *Window) bind(session coordinator.Session) {
	overlay.session = &session
	overlay.confirming = false

	overlay.titleLabel.Text = sessionTitle(session.Kind)
	overlay.titleLabel.Refresh()
	overlay.textLabel.SetText(session.Text)
	overlay.cueLabel.Text = ""
	overlay.cueLabel.Refresh()
	overlay.setRemaining(session.Duration)

	if session.Kind == coordinator.SessionBig {
		overlay.timerLabel.Show()
	} else {
		overlay.timerLabel.Hide()
	}
	if escapePolicy(session) == escapeIgnore {
		overlay.skipButton.Disable()
	} else {
		overlay.skipButton.Enable()
	}
}

func (overlay *Window) requestInterrupt() {
	if overlay.session == nil || overlay.confirming {
		return
	}
	sessionID := overlay.session.ID
	switch escapePolicy(*overlay.session) {
	case escapeIgnore:
		return
	case escapeConfirm:
		overlay.confirming = true
		dialog.ShowConfirm("End the break?", "Finish this break early and return to work?", func(confirmed bool) {
			overlay.confirming = false
			if confirmed {
				overlay.interrupt(sessionID)
			}
		}, overlay.window)
	default:
		overlay.interrupt(sessionID)
	}
}

func (overlay *Window) interrupt(sessionID string) {
	if overlay.session == nil || overlay.session.ID != sessionID {
		return
	}
	if overlay.onInterrupt != nil {
		overlay.onInterrupt(sessionID)
	}
}

func (overlay *Window) tick(ctx context.Context, endsAt time.Time) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining := time.Until(endsAt)
			fyne.Do(func() {
				if ctx.Err() == nil {
					overlay.setRemaining(remaining)
				}
			})
		}
	}
}

func (overlay *Window) stopTicking() {
	overlay.engine.Stop()
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
}

func (overlay *Window) setRemaining(remaining time.Duration) {
	overlay.timerLabel.Text = formatDuration(remaining)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) applyWindowMode(session coordinator.Session) {
	if session.Darken || session.Kind == coordinator.SessionBig {
		overlay.background.FillColor = color.NRGBA{R: darkColor.R, G: darkColor.G, B: darkColor.B, A: overlay.config.Opacity}
		overlay.background.Refresh()
		overlay.window.SetFullScreen(true)
		overlay.applyNativeOpacity(overlay.config.Opacity)
		return
	}
	overlay.background.FillColor = darkColor
	overlay.background.Refresh()
	overlay.window.SetFullScreen(false)
	overlay.applyNativeOpacity(windowedAlpha)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

type escapeAction int

const (
	escapeEnd escapeAction = iota
	escapeConfirm
	escapeIgnore
)

// escapePolicy decides what Escape or Skip does for a session. Strict big
// breaks cannot be skipped and other big breaks ask first.
func escapePolicy(session coordinator.Session) escapeAction {
	if session.Kind != coordinator.SessionBig {
		return escapeEnd
	}
	if session.Strict {
		return escapeIgnore
	}
	return escapeConfirm
}

func sessionTitle(kind coordinator.SessionKind) string {
	if kind == coordinator.SessionBig {
		return "Time for a break"
	}
	return "A short pause"
}

func formatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int((value + time.Second - 1) / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// columnLayout stacks the overlay items in a centred column, with the skip
// button pinned to the bottom.
type columnLayout struct{}

func (layout *columnLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	skip := objects[len(objects)-1]
	items := objects[:len(objects)-1]

	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}
	if limit := float32(720); availableWidth > limit {
		availableWidth = limit
	}
	x := (size.Width - availableWidth) / 2

	height := float32(0)
	for _, item := range items {
		if item.Visible() {
			height += item.MinSize().Height + 10
		}
	}
	y := (size.Height - height) / 2
	if y < pad {
		y = pad
	}
	for _, item := range items {
		if !item.Visible() {
			continue
		}
		itemHeight := item.MinSize().Height
		item.Move(fyne.NewPos(x, y))
		item.Resize(fyne.NewSize(availableWidth, itemHeight))
		y += itemHeight + 10
	}

	skipSize := skip.MinSize()
	skipWidth := skipSize.Width * 1.4
	if skipWidth > size.Width {
		skipWidth = size.Width
	}
	skipY := size.Height - pad - skipSize.Height
	if skipY < y {
		skipY = y
	}
	skip.Move(fyne.NewPos((size.Width-skipWidth)/2, skipY))
	skip.Resize(fyne.NewSize(skipWidth, skipSize.Height))
}

func (layout *columnLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		if !object.Visible() {
			continue
		}
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height + 10
	}
	return fyne.NewSize(width+40, height+20)
}
