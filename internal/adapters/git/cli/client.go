package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

type runFunc func(ctx context.Context, dir string, args ...string) (output string, err error)

// Client shells out to the git binary. Commands inherit the caller's context
// and are never given a timeout of their own.
type Client struct {
	run runFunc
}

var _ ports.Git = (*Client)(nil)

func NewClient() *Client {
	return &Client{run: runGit}
}

func (c *Client) RemoteURL(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", classify("remote get-url", out, err)
	}

	url := strings.TrimSpace(out)
	if url == "" {
		return "", &domain.GitError{Op: "remote get-url", Kind: domain.GitNoRemote, Err: errors.New("origin has no url")}
	}
	return url, nil
}

func (c *Client) StatusPorcelain(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return "", classify("status", out, err)
	}
	return out, nil
}

func (c *Client) AddAll(ctx context.Context, dir string) error {
	out, err := c.run(ctx, dir, "add", "-A")
	if err != nil {
		return classify("add", out, err)
	}
	return nil
}

func (c *Client) Commit(ctx context.Context, dir, message string) error {
	out, err := c.run(ctx, dir, "commit", "-m", message)
	if err != nil {
		return classify("commit", out, err)
	}
	return nil
}

// PullRebase runs `git pull --rebase` and reports whether HEAD moved.
// A rebase stopped on conflicting paths yields a GitConflict error.
func (c *Client) PullRebase(ctx context.Context, dir string) (domain.PullSummary, error) {
	before, err := c.head(ctx, dir)
	if err != nil {
		return domain.PullSummary{}, err
	}

	out, err := c.run(ctx, dir, "pull", "--rebase")
	if err != nil {
		if c.hasUnmergedPaths(ctx, dir) {
			return domain.PullSummary{}, &domain.GitError{Op: "pull", Kind: domain.GitConflict, Output: strings.TrimSpace(out), Err: err}
		}
		return domain.PullSummary{}, classify("pull", out, err)
	}

	after, err := c.head(ctx, dir)
	if err != nil {
		return domain.PullSummary{}, err
	}

	return domain.PullSummary{UpToDate: before == after}, nil
}

func (c *Client) Push(ctx context.Context, dir string) error {
	out, err := c.run(ctx, dir, "push")
	if err != nil {
		return classify("push", out, err)
	}
	return nil
}

func (c *Client) head(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", classify("rev-parse", out, err)
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) hasUnmergedPaths(ctx context.Context, dir string) bool {
	out, err := c.run(ctx, dir, "diff", "--name-only", "--diff-filter=U")
	if err == nil && strings.TrimSpace(out) != "" {
		return true
	}
	return false
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("locate git command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err = cmd.Run()
	return output.String(), err
}

func classify(op string, output string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	trimmed := strings.TrimSpace(output)
	lower := strings.ToLower(trimmed)

	kind := domain.GitOther
	switch {
	case strings.Contains(lower, "conflict"):
		kind = domain.GitConflict
	case strings.Contains(lower, "not a git repository"):
		kind = domain.GitNotRepository
	case strings.Contains(lower, "no such remote"),
		strings.Contains(lower, "no configured push destination"),
		strings.Contains(lower, "does not appear to be a git repository"),
		strings.Contains(lower, "no tracking information"):
		kind = domain.GitNoRemote
	case strings.Contains(lower, "authentication failed"),
		strings.Contains(lower, "could not read username"),
		strings.Contains(lower, "permission denied"),
		strings.Contains(lower, "http basic: access denied"):
		kind = domain.GitAuth
	case strings.Contains(lower, "could not resolve host"),
		strings.Contains(lower, "connection refused"),
		strings.Contains(lower, "connection timed out"),
		strings.Contains(lower, "unable to access"),
		strings.Contains(lower, "network is unreachable"):
		kind = domain.GitNetwork
	}

	return &domain.GitError{Op: op, Kind: kind, Output: trimmed, Err: err}
}
