package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNoSoundPlayer indicates no command-line audio player was found.
var ErrNoSoundPlayer = errors.New("no sound player available")

var soundExtensions = []string{".wav", ".mp3", ".ogg"}

// SoundPlayer plays the start and end cues from a sound directory by
// spawning the OS audio player. Missing files are reported once and skipped.
type SoundPlayer struct {
	dir    string
	run    func(name string, args ...string) error
	logger zerolog.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// NewSoundPlayer creates a player reading start.* and end.* from dir.
func NewSoundPlayer(dir string, logger zerolog.Logger) *SoundPlayer {
	return &SoundPlayer{
		dir:    dir,
		run:    runCommand,
		logger: logger.With().Str("component", "sound").Logger(),
		warned: make(map[string]bool),
	}
}

// PlayStart plays the short-pause start cue.
func (player *SoundPlayer) PlayStart() {
	player.play("start")
}

// PlayEnd plays the big-break completion cue.
func (player *SoundPlayer) PlayEnd() {
	player.play("end")
}

// Find returns the file for cue, trying each supported extension.
func (player *SoundPlayer) Find(cue string) (string, bool) {
	for _, extension := range soundExtensions {
		path := filepath.Join(player.dir, cue+extension)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (player *SoundPlayer) play(cue string) {
	path, ok := player.Find(cue)
	if !ok {
		player.warnOnce(cue, fmt.Errorf("sound file %s.* not found in %s", cue, player.dir))
		return
	}
	name, args, err := soundCommand(path)
	if err != nil {
		player.warnOnce("player", err)
		return
	}
	go func() {
		if err := player.run(name, args...); err != nil {
			player.logger.Warn().Err(err).Str("file", path).Msg("Failed to play sound")
		}
	}()
}

func (player *SoundPlayer) warnOnce(key string, err error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.warned[key] {
		return
	}
	player.warned[key] = true
	player.logger.Warn().Err(err).Msg("Sound disabled")
}

func runCommand(name string, args ...string) error {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, output)
	}
	return nil
}
