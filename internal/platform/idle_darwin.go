package platform

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"mindfulpause/internal/core/activity"

	"github.com/rs/zerolog"
)

var hidIdlePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

type idleProvider struct {
	ioregPath string
	logger    zerolog.Logger
}

func newIdleProvider(logger zerolog.Logger) activity.IdleProvider {
	path, _ := exec.LookPath("ioreg")
	return &idleProvider{ioregPath: path, logger: logger}
}

// IdleDuration reads HIDIdleTime (nanoseconds) from the IOHIDSystem registry entry.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if provider.ioregPath == "" {
		return 0, activity.ErrIdleUnsupported
	}
	output, err := exec.Command(provider.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	match := hidIdlePattern.FindSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("ioreg: HIDIdleTime not found: %w", activity.ErrIdleUnsupported)
	}
	idleNanos, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle nanoseconds: %w", err)
	}
	return time.Duration(idleNanos), nil
}
