package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
)

func newSubmitCmd(app *app) *cobra.Command {
	var (
		dir     string
		message string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Commit and push the workspace to submit the exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.workspaceRoot(dir)
			if err != nil {
				return err
			}

			req := domain.SubmissionRequest{CommitMessage: message}
			var documents domain.DirtyPagesStatus
			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				status, err := loadWorkspaceStatus(cmd, app, workbench, root)
				if err != nil {
					return err
				}
				req.ExerciseID = status.ExerciseID
				req.ExerciseTitle = status.Exercise
				documents = status.Documents
				return nil
			}); err != nil {
				return err
			}

			if documents.ShouldWarn() {
				if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d unsaved file(s) will not be submitted\n", documents.DirtyFileCount); err != nil {
					return err
				}
			}

			submitter := app.submitter()
			result, err := runSubmitSpinner(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context, onPhase func(domain.SubmissionPhase)) domain.SubmissionResult {
				return submitter.Submit(ctx, root, req, func(_ string, phase domain.SubmissionPhase) {
					onPhase(phase)
				})
			})
			if err != nil {
				return err
			}

			return writeSubmissionResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Workspace folder (defaults to workspace.root or the working directory)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (defaults to git.default_commit_message)")

	return cmd
}

func writeSubmissionResult(cmd *cobra.Command, result domain.SubmissionResult) error {
	out := cmd.OutOrStdout()
	switch {
	case result.Success:
		_, err := fmt.Fprintln(out, "submitted; the build result will follow on the server")
		return err
	case result.NothingToSubmit:
		_, err := fmt.Fprintln(out, domain.ErrNothingToSubmit.Error())
		return err
	case result.Err != nil:
		return result.Err
	default:
		return errors.New("submit failed")
	}
}

func newPullCmd(app *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull remote changes into the workspace with rebase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.workspaceRoot(dir)
			if err != nil {
				return err
			}

			result := application.NewPuller(app.git, app.logger).Pull(cmd.Context(), root)
			out := cmd.OutOrStdout()
			switch result.Outcome {
			case domain.PullUpdated:
				_, err = fmt.Fprintln(out, "pulled remote changes")
			case domain.PullUpToDate:
				_, err = fmt.Fprintln(out, "already up to date")
			default:
				err = result.Err
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Workspace folder (defaults to workspace.root or the working directory)")

	return cmd
}
