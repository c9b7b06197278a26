package jsonl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/adapters/bridge/jsonl"
	tomlrepo "github.com/bnema/artemis-companion-cli/internal/adapters/repo/toml"
	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/ports/mocks"
)

func newTestBridge(t *testing.T, out *bytes.Buffer) *application.Bridge {
	t.Helper()

	cfg := viper.New()
	cfg.Set(tomlrepo.StatePathKey, filepath.Join(t.TempDir(), "state.toml"))
	state, err := tomlrepo.NewRepository(cfg)
	require.NoError(t, err)

	workbench, err := application.OpenWorkbench(context.Background(), state, nil, nil)
	require.NoError(t, err)

	git := mocks.NewMockGit(t)
	bridge := application.NewBridge(application.BridgeDeps{
		Workbench: workbench,
		Monitor:   application.NewWorkspaceMonitor(git, workbench.Registry(), workbench, application.MonitorOptions{Root: t.TempDir()}),
		Submitter: application.NewSubmitter(git, application.SubmitterOptions{}),
		Puller:    application.NewPuller(git, nil),
		Emitter:   jsonl.NewEmitter(out),
	})
	t.Cleanup(bridge.Close)
	return bridge
}

func TestServeSelectFollowsItsTrackCommand(t *testing.T) {
	out := &bytes.Buffer{}
	bridge := newTestBridge(t, out)

	var input strings.Builder
	for id := 1; id <= 20; id++ {
		fmt.Fprintf(&input, "{\"command\":\"trackCourse\",\"id\":%d,\"title\":\"Course %d\"}\n", id, id)
		fmt.Fprintf(&input, "{\"command\":\"selectCourseContext\",\"courseId\":%d}\n", id)
	}

	require.NoError(t, jsonl.Serve(context.Background(), strings.NewReader(input.String()), bridge, nil))

	var commands []string
	var lastSelected int64
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var msg struct {
			Command string `json:"command"`
			Level   string `json:"level"`
			Message string `json:"message"`
			ID      int64  `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		require.NotEqual(t, "notification", msg.Command, msg.Message)
		commands = append(commands, msg.Command)
		if msg.Command == application.MsgChatContextChanged {
			lastSelected = msg.ID
		}
	}

	require.GreaterOrEqual(t, len(commands), 4)
	assert.Equal(t, []string{
		application.MsgUpdateDetectedExercises,
		application.MsgUpdateDetectedCourses,
		application.MsgAutoSelectContext,
		application.MsgChatContextChanged,
	}, commands[:4])
	assert.Equal(t, int64(20), lastSelected)
}

func TestBridgeReportsOnlyGitAndNetworkCommandsAsBlocking(t *testing.T) {
	bridge := newTestBridge(t, &bytes.Buffer{})

	for _, command := range []string{
		application.CmdSubmitExercise,
		application.CmdPullChanges,
		application.CmdCloneRepository,
		application.CmdCheckRepositoryStatus,
		application.CmdDetectWorkspaceExercise,
	} {
		assert.True(t, bridge.Blocking(command), command)
	}
	for _, command := range []string{
		application.CmdTrackCourse,
		application.CmdTrackExercise,
		application.CmdSelectCourseContext,
		application.CmdClearHistory,
		application.CmdSetSelectionMode,
	} {
		assert.False(t, bridge.Blocking(command), command)
	}
}
