package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceLockRejectsSecondInstance(t *testing.T) {
	name := "MindfulPause Test " + t.Name()
	first, err := AcquireInstanceLock(name)
	require.NoError(t, err)
	defer first.Release()

	_, err = AcquireInstanceLock(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	again, err := AcquireInstanceLock(name)
	require.NoError(t, err)
	assert.Equal(t, first.Address(), again.Address())
	require.NoError(t, again.Release())
}

func TestReleaseNilLock(t *testing.T) {
	var lock *InstanceLock

	assert.NoError(t, lock.Release())
	assert.Empty(t, lock.Address())
}

func TestLockPortIsStableAndInRange(t *testing.T) {
	port := lockPort("MindfulPause")

	assert.Equal(t, port, lockPort("mindfulpause"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}
