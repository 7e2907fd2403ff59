package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"mindfulpause/internal/core/activity"

	"github.com/rs/zerolog"
)

var (
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount64   = syscall.NewLazyDLL("kernel32.dll").NewProc("GetTickCount64")
)

type idleProvider struct {
	logger zerolog.Logger
}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider(logger zerolog.Logger) activity.IdleProvider {
	return &idleProvider{logger: logger}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	tickResult, _, _ := procGetTickCount64.Call()
	// dwTime is the 32-bit tick count of the last input and wraps every 49.7 days.
	now := uint32(tickResult)
	if now < info.dwTime {
		return 0, nil
	}
	return time.Duration(now-info.dwTime) * time.Millisecond, nil
}
