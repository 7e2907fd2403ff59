package platform

import (
	"os/exec"
	"path/filepath"
	"strings"
)

func soundCommand(path string) (string, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		for _, candidate := range []string{"paplay", "pw-play", "aplay"} {
			if player, err := exec.LookPath(candidate); err == nil {
				return player, []string{path}, nil
			}
		}
	}
	if player, err := exec.LookPath("ffplay"); err == nil {
		return player, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}, nil
	}
	if player, err := exec.LookPath("paplay"); err == nil {
		return player, []string{path}, nil
	}
	return "", nil, ErrNoSoundPlayer
}
