package tray

import (
	"fmt"
	"time"

	"mindfulpause/internal/core/coordinator"
	"mindfulpause/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// DisableHours are the choices of the "Disable for" submenu.
var DisableHours = []int{1, 2, 3, 8}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnBigBreak    func()
	OnShortPause  func()
	OnTogglePause func()
	OnDisableFor  func(hours int)
	OnPreferences func()
	OnQuit        func()
}

// Icons are the tray icons for the active and the paused state.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state. All methods must be called on the
// fyne goroutine.
type Manager struct {
	app        desktop.App
	icons      Icons
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	bigItem    *fyne.MenuItem
	shortItem  *fyne.MenuItem
	disableFor *fyne.MenuItem
	menu       *fyne.Menu
	paused     bool
	iconSet    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:   app,
		icons: icons,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.bigItem = fyne.NewMenuItem("Take a big break now", invoke(callbacks.OnBigBreak))
	manager.shortItem = fyne.NewMenuItem("Take a short pause now", invoke(callbacks.OnShortPause))
	manager.pauseItem = fyne.NewMenuItem(pauseLabel(coordinator.ModeNormal), invoke(callbacks.OnTogglePause))

	hours := make([]*fyne.MenuItem, 0, len(DisableHours))
	for _, value := range DisableHours {
		hours = append(hours, fyne.NewMenuItem(hoursLabel(value), func() {
			if callbacks.OnDisableFor != nil {
				callbacks.OnDisableFor(value)
			}
		}))
	}
	manager.disableFor = fyne.NewMenuItem("Disable for", nil)
	manager.disableFor.ChildMenu = fyne.NewMenu("", hours...)

	preferences := fyne.NewMenuItem("Settings...", invoke(callbacks.OnPreferences))
	quit := fyne.NewMenuItem("Quit", invoke(callbacks.OnQuit))
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("MindfulPause",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.bigItem,
		manager.shortItem,
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.disableFor,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}
	manager.setPaused(false)

	return manager
}

// Update reflects a coordinator status in the menu and the icon.
func (manager *Manager) Update(status coordinator.Status, now time.Time) {
	line := statusLine(status, now)
	label := pauseLabel(status.Mode)
	inSession := status.Session != nil
	manager.setPaused(status.Mode != coordinator.ModeNormal)
	if line == manager.statusItem.Label && label == manager.pauseItem.Label && inSession == manager.bigItem.Disabled {
		return
	}

	manager.statusItem.Label = line
	manager.pauseItem.Label = label
	manager.bigItem.Disabled = inSession
	manager.shortItem.Disabled = inSession
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func (manager *Manager) setPaused(paused bool) {
	if manager.iconSet && manager.paused == paused {
		return
	}
	manager.paused = paused
	manager.iconSet = true
	icon := manager.icons.Active
	if paused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}

func statusLine(status coordinator.Status, now time.Time) string {
	if status.Session != nil {
		if status.Session.Kind == coordinator.SessionBig {
			return "Big break in progress"
		}
		return "Short pause in progress"
	}
	switch status.Mode {
	case coordinator.ModeUserPaused:
		return "Paused"
	case coordinator.ModeTemporarilyDisabled:
		if status.DisabledUntil.IsZero() {
			return "Disabled"
		}
		return fmt.Sprintf("Disabled until %s", status.DisabledUntil.In(now.Location()).Format("15:04"))
	}
	if status.WarningPending {
		return "Big break starting soon"
	}
	kind, remaining, ok := status.NextBreak()
	if !ok {
		return "No breaks scheduled"
	}
	if kind == timekeeper.KindShortPause {
		return fmt.Sprintf("Short pause in %s", formatRemaining(remaining))
	}
	return fmt.Sprintf("Big break in %s", formatRemaining(remaining))
}

func pauseLabel(mode coordinator.Mode) string {
	if mode == coordinator.ModeUserPaused {
		return "Resume"
	}
	return "Pause"
}

func hoursLabel(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
