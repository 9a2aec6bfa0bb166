// Package system runs host commands such as shutdown and reboot.
package system

import (
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"os/exec"
	"strings"
)

// Shell runs commands through /bin/sh -c.
type Shell struct {
	Path string
}

func NewShell() *Shell {
	return &Shell{Path: "/bin/sh"}
}

// Run executes command and waits for it to finish.
func (s *Shell) Run(ctx context.Context, command string) error {
	log.Debug("Run", "cmd", command)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, "-c", command)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Output executes command and returns the first line of its stdout.
func (s *Shell) Output(ctx context.Context, command string) (string, error) {
	log.Debug("Output", "cmd", command)

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, "-c", command)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	line, _, _ := strings.Cut(out.String(), "\n")
	return strings.TrimSpace(line), nil
}
