package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

type call struct {
	dir  string
	args []string
}

type scriptedRunner struct {
	calls     []call
	responses map[string][]response
}

type response struct {
	output string
	err    error
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{responses: map[string][]response{}}
}

func (r *scriptedRunner) on(command string, output string, err error) *scriptedRunner {
	r.responses[command] = append(r.responses[command], response{output: output, err: err})
	return r
}

func (r *scriptedRunner) run(_ context.Context, dir string, args ...string) (string, error) {
	r.calls = append(r.calls, call{dir: dir, args: args})
	key := strings.Join(args, " ")
	queue := r.responses[key]
	if len(queue) == 0 {
		return "", nil
	}
	next := queue[0]
	r.responses[key] = queue[1:]
	return next.output, next.err
}

func (r *scriptedRunner) commands() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, strings.Join(c.args, " "))
	}
	return out
}

var errExit = errors.New("exit status 1")

func TestRemoteURLTrimsOutput(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().on("remote get-url origin", "https://git.example.org/scm/sort.git\n", nil)
	client := &Client{run: runner.run}

	url, err := client.RemoteURL(context.Background(), "/work/sort")
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.org/scm/sort.git", url)
	assert.Equal(t, "/work/sort", runner.calls[0].dir)
}

func TestRemoteURLMissingRemote(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().on("remote get-url origin", "error: No such remote 'origin'\n", errExit)
	client := &Client{run: runner.run}

	_, err := client.RemoteURL(context.Background(), "/work/sort")

	var gitErr *domain.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, domain.GitNoRemote, gitErr.Kind)
	assert.Equal(t, "remote get-url", gitErr.Op)
}

func TestRemoteURLOutsideRepository(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().on("remote get-url origin", "fatal: not a git repository (or any of the parent directories): .git", errExit)
	client := &Client{run: runner.run}

	_, err := client.RemoteURL(context.Background(), "/tmp")

	var gitErr *domain.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, domain.GitNotRepository, gitErr.Kind)
}

func TestPullRebaseReportsUpToDateWhenHeadIsUnchanged(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().
		on("rev-parse HEAD", "abc123\n", nil).
		on("pull --rebase", "Already up to date.\n", nil).
		on("rev-parse HEAD", "abc123\n", nil)
	client := &Client{run: runner.run}

	summary, err := client.PullRebase(context.Background(), "/work/sort")
	require.NoError(t, err)
	assert.True(t, summary.UpToDate)
	assert.Equal(t, []string{"rev-parse HEAD", "pull --rebase", "rev-parse HEAD"}, runner.commands())
}

func TestPullRebaseReportsUpdateWhenHeadMoves(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().
		on("rev-parse HEAD", "abc123\n", nil).
		on("pull --rebase", "Fast-forward\n", nil).
		on("rev-parse HEAD", "def456\n", nil)
	client := &Client{run: runner.run}

	summary, err := client.PullRebase(context.Background(), "/work/sort")
	require.NoError(t, err)
	assert.False(t, summary.UpToDate)
}

func TestPullRebaseDetectsConflictFromUnmergedPaths(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().
		on("rev-parse HEAD", "abc123\n", nil).
		on("pull --rebase", "error: could not apply 1a2b3c... edit\n", errExit).
		on("diff --name-only --diff-filter=U", "src/Sort.java\n", nil)
	client := &Client{run: runner.run}

	_, err := client.PullRebase(context.Background(), "/work/sort")
	require.ErrorIs(t, err, domain.ErrMergeConflict)

	var gitErr *domain.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, domain.GitConflict, gitErr.Kind)
}

func TestPullRebaseDetectsConflictFromOutput(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().
		on("rev-parse HEAD", "abc123\n", nil).
		on("pull --rebase", "CONFLICT (content): Merge conflict in README.md\n", errExit)
	client := &Client{run: runner.run}

	_, err := client.PullRebase(context.Background(), "/work/sort")
	require.ErrorIs(t, err, domain.ErrMergeConflict)
}

func TestPullRebaseClassifiesNetworkFailure(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().
		on("rev-parse HEAD", "abc123\n", nil).
		on("pull --rebase", "fatal: unable to access 'https://git.example.org/': Could not resolve host: git.example.org\n", errExit)
	client := &Client{run: runner.run}

	_, err := client.PullRebase(context.Background(), "/work/sort")

	var gitErr *domain.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, domain.GitNetwork, gitErr.Kind)
	assert.Equal(t, domain.KindTransientNetwork, domain.Classify(err))
}

func TestPushClassifiesAuthFailure(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().on("push", "remote: HTTP Basic: Access denied\nfatal: Authentication failed\n", errExit)
	client := &Client{run: runner.run}

	err := client.Push(context.Background(), "/work/sort")

	var gitErr *domain.GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, domain.GitAuth, gitErr.Kind)
}

func TestCommitPassesMessage(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner()
	client := &Client{run: runner.run}

	require.NoError(t, client.Commit(context.Background(), "/work/sort", "Submit exercise"))
	assert.Equal(t, []string{"commit", "-m", "Submit exercise"}, runner.calls[0].args)
}

func TestCanceledContextIsReturnedUnchanged(t *testing.T) {
	t.Parallel()

	runner := newScriptedRunner().on("add -A", "", context.Canceled)
	client := &Client{run: runner.run}

	err := client.AddAll(context.Background(), "/work/sort")
	require.ErrorIs(t, err, context.Canceled)

	var gitErr *domain.GitError
	assert.False(t, errors.As(err, &gitErr))
}
