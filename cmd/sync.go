package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/artemis-companion-cli/internal/application"
)

func newSyncCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the exercise registry from the course dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			platform, err := app.platformClient()
			if err != nil {
				return err
			}

			courses, err := platform.Courses(cmd.Context())
			if err != nil {
				return fmt.Errorf("load courses: %w", err)
			}

			var registered int
			if err := app.withWorkbench(cmd.Context(), func(workbench *application.Workbench) error {
				registered, err = workbench.Sync(cmd.Context(), courses)
				return err
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "courses: %d, exercises registered: %d\n", len(courses), registered)
			return err
		},
	}
}
