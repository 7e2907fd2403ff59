//go:build !windows

package platform

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInputLockUnsupported(t *testing.T) {
	lock := NewInputLock(zerolog.Nop())

	assert.ErrorIs(t, lock.Block(), ErrInputLockUnsupported)
	assert.ErrorIs(t, lock.Unblock(), ErrInputLockUnsupported)
}
