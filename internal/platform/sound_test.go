package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundPlayerFindPrefersWav(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "end.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "end.wav"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "start.wav"), 0o755))
	player := NewSoundPlayer(dir, zerolog.Nop())

	path, ok := player.Find("end")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "end.wav"), path)

	_, ok = player.Find("start")
	assert.False(t, ok)
}

func TestSoundPlayerSkipsMissingFiles(t *testing.T) {
	player := NewSoundPlayer(t.TempDir(), zerolog.Nop())
	player.run = func(string, ...string) error {
		t.Fatal("nothing to play")
		return nil
	}

	player.PlayStart()
	player.PlayEnd()
	player.PlayEnd()

	assert.True(t, player.warned["start"])
	assert.True(t, player.warned["end"])
}
