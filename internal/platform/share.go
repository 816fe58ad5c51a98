package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"didyouknow/internal/facts"
)

// exitCancelled is what shells report for a process interrupted with Ctrl+C.
const exitCancelled = 130

// CommandSharer shares a fact by running a user-configured command, for
// example a script that posts to a chat or opens a share dialog. The fact is
// written to the command's stdin; FACT_TITLE and FACT_TEXT are set in its
// environment.
type CommandSharer struct {
	command string
}

// NewCommandSharer returns nil when command is empty, which leaves the share
// capability unavailable.
func NewCommandSharer(command string) facts.Sharer {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	return &CommandSharer{command: command}
}

// Share runs the command. An exit status of 130 means the user backed out
// and is reported as facts.ErrShareCancelled.
func (s *CommandSharer) Share(ctx context.Context, title, text string) error {
	var shell, shellArg string
	if runtime.GOOS == "windows" {
		shell = "cmd"
		shellArg = "/c"
	} else {
		shell = "sh"
		shellArg = "-c"
	}

	cmd := exec.CommandContext(ctx, shell, shellArg, s.command)
	cmd.Env = append(os.Environ(), "FACT_TITLE="+title, "FACT_TEXT="+text)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == exitCancelled {
			return facts.ErrShareCancelled
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("share command exited with %d: %s", exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("share command exited with %d", exitErr.ExitCode())
	}
	return fmt.Errorf("failed to run share command: %w", err)
}
