package platform

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrInputLockUnsupported indicates input blocking is not available on this OS.
var ErrInputLockUnsupported = errors.New("input lock unsupported")

// InputLock blocks keyboard and mouse input for strict breaks.
type InputLock struct {
	logger zerolog.Logger
}

// NewInputLock returns the input lock for this OS.
func NewInputLock(logger zerolog.Logger) *InputLock {
	return &InputLock{logger: logger.With().Str("component", "input_lock").Logger()}
}

// Block stops input from reaching other applications.
func (lock *InputLock) Block() error {
	if err := blockInput(true); err != nil {
		return err
	}
	lock.logger.Info().Msg("Input blocked")
	return nil
}

// Unblock restores input.
func (lock *InputLock) Unblock() error {
	if err := blockInput(false); err != nil {
		return err
	}
	lock.logger.Info().Msg("Input unblocked")
	return nil
}
