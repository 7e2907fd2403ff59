package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"mindfulpause/internal/core/activity"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

const (
	idleMonitorDestination = "org.gnome.Mutter.IdleMonitor"
	idleMonitorObjectPath  = "/org/gnome/Mutter/IdleMonitor/Core"
	idleMonitorMethod      = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// idleProvider asks Mutter's IdleMonitor over the session bus, which also
// works on Wayland, and falls back to xprintidle on other X11 desktops.
type idleProvider struct {
	mu             sync.Mutex
	conn           *dbus.Conn
	mutterDisabled bool
	xprintidlePath string
	logger         zerolog.Logger
}

func newIdleProvider(logger zerolog.Logger) activity.IdleProvider {
	path, _ := exec.LookPath("xprintidle")
	return &idleProvider{xprintidlePath: path, logger: logger}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if !provider.mutterDisabled {
		idle, err := provider.mutterIdleLocked()
		if err == nil {
			return idle, nil
		}
		provider.mutterDisabled = true
		provider.closeLocked()
		provider.logger.Debug().Err(err).Msg("Mutter IdleMonitor unavailable, falling back to xprintidle")
	}

	if provider.xprintidlePath == "" {
		return 0, activity.ErrIdleUnsupported
	}
	return xprintidle(provider.xprintidlePath)
}

// Close releases the session bus connection.
func (provider *idleProvider) Close() error {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	return provider.closeLocked()
}

func (provider *idleProvider) mutterIdleLocked() (time.Duration, error) {
	if provider.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return 0, fmt.Errorf("connect session bus: %w", err)
		}
		provider.conn = conn
	}

	call := provider.conn.Object(idleMonitorDestination, dbus.ObjectPath(idleMonitorObjectPath)).Call(idleMonitorMethod, 0)
	if call.Err != nil {
		return 0, fmt.Errorf("call IdleMonitor.GetIdletime: %w", call.Err)
	}

	var idleMillis uint64
	if err := call.Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("parse IdleMonitor response: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (provider *idleProvider) closeLocked() error {
	if provider.conn == nil {
		return nil
	}
	err := provider.conn.Close()
	provider.conn = nil
	return err
}

func xprintidle(path string) (time.Duration, error) {
	output, err := exec.Command(path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func parseIdleMillis(value string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
