package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/artemis-companion-cli/internal/adapters/editor"
	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
)

type workspaceStatus struct {
	Root       string                  `json:"root"`
	ExerciseID domain.ExerciseID       `json:"exerciseId,omitempty"`
	Exercise   string                  `json:"exercise,omitempty"`
	Repository domain.RepositoryStatus `json:"repository"`
	Documents  domain.DirtyPagesStatus `json:"documents"`
}

func newStatusCmd(app *app) *cobra.Command {
	var (
		dir    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Detect the workspace exercise and report its repository status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.workspaceRoot(dir)
			if err != nil {
				return err
			}

			var status workspaceStatus
			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				status, err = loadWorkspaceStatus(cmd, app, workbench, root)
				return err
			}); err != nil {
				return err
			}

			return writeWorkspaceStatus(cmd, status, asJSON)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Workspace folder (defaults to workspace.root or the working directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newMonitor(app *app, workbench *application.Workbench, root string, opts application.MonitorOptions) *application.WorkspaceMonitor {
	opts.Root = root
	opts.Logger = app.logger
	if opts.Documents == nil {
		opts.Documents = editor.NewSwapFiles(app.cfg.GetBool(keyEditorAutoSave))
	}
	return application.NewWorkspaceMonitor(app.git, workbench.Registry(), workbench, opts)
}

func loadWorkspaceStatus(cmd *cobra.Command, app *app, workbench *application.Workbench, root string) (workspaceStatus, error) {
	monitor := newMonitor(app, workbench, root, application.MonitorOptions{})
	defer monitor.Stop()

	status := workspaceStatus{Root: root}

	identity, found, err := monitor.DetectWorkspaceExercise(cmd.Context())
	if err != nil {
		return status, err
	}
	if found {
		status.ExerciseID = identity.ID
		status.Exercise = identity.Title
		status.Repository = monitor.CheckRepositoryStatus(cmd.Context(), identity.RepositoryURI, identity.ID)
	}

	documents, err := monitor.CheckDirtyDocuments(cmd.Context())
	if err != nil {
		return status, err
	}
	status.Documents = documents

	return status, nil
}

func writeWorkspaceStatus(cmd *cobra.Command, status workspaceStatus, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	if status.ExerciseID == 0 {
		_, err := fmt.Fprintf(out, "workspace: %s\nexercise: none detected (run `ac sync` first?)\n", status.Root)
		return err
	}

	connection := "disconnected"
	if status.Repository.IsConnected {
		connection = "connected"
	}
	changes := "clean"
	if status.Repository.HasChanges {
		changes = "uncommitted changes"
	}

	if _, err := fmt.Fprintf(out, "workspace: %s\nexercise: %s (%d)\nrepository: %s, %s\n",
		status.Root, status.Exercise, status.ExerciseID, connection, changes); err != nil {
		return err
	}
	if status.Documents.ShouldWarn() {
		if _, err := fmt.Fprintf(out, "warning: %d unsaved file(s) will not be submitted\n", status.Documents.DirtyFileCount); err != nil {
			return err
		}
	}
	return nil
}
