package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// soundCommand plays through WPF's MediaPlayer, which handles both wav and mp3.
func soundCommand(path string) (string, []string, error) {
	shell, err := exec.LookPath("powershell")
	if err != nil {
		return "", nil, ErrNoSoundPlayer
	}
	escaped := strings.ReplaceAll(path, "'", "''")
	script := fmt.Sprintf(
		"Add-Type -AssemblyName PresentationCore; "+
			"$player = New-Object System.Windows.Media.MediaPlayer; "+
			"$player.Open([uri]'%s'); $player.Play(); "+
			"Start-Sleep -Milliseconds 500; "+
			"while ($player.Position -lt $player.NaturalDuration.TimeSpan) { Start-Sleep -Milliseconds 200 }",
		escaped,
	)
	return shell, []string{"-NoProfile", "-NonInteractive", "-WindowStyle", "Hidden", "-Command", script}, nil
}
