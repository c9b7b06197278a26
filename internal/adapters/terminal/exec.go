package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

// Exec runs commands attached to the caller's terminal so prompts such as
// git credential requests reach the user.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the inherited environment.
	Env []string
}

var _ ports.Terminal = (*Exec)(nil)

func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// NewDetachedExec returns a terminal for commands started by the bridge
// daemon, whose stdin and stdout carry the protocol. Command output goes to
// out, stdin is empty and git never prompts.
func NewDetachedExec(out io.Writer) *Exec {
	return &Exec{Stdout: out, Stderr: out, Env: []string{"GIT_TERMINAL_PROMPT=0"}}
}

func (e *Exec) Run(ctx context.Context, dir string, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("locate %s command: %w", name, err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create working directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = append(cmd.Environ(), e.Env...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s %s: %w", name, strings.Join(redactArgs(args), " "), err)
	}
	return nil
}

func redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = domain.RedactURL(arg)
	}
	return out
}
