// Package clipboard copies text to the system clipboard through the
// platform's paste tool.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no supported clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// command returns the paste command for this platform, or nil.
func command() *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy")
		}
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard")
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input")
		}
	case "windows":
		if _, err := exec.LookPath("clip"); err == nil {
			return exec.Command("clip")
		}
	}
	return nil
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	cmd := command()
	if cmd == nil {
		return ErrUnavailable
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
