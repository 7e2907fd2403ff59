package platform

import "os/exec"

func soundCommand(path string) (string, []string, error) {
	player, err := exec.LookPath("afplay")
	if err != nil {
		return "", nil, ErrNoSoundPlayer
	}
	return player, []string{path}, nil
}
