package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ac",
		Short:         "Artemis companion (ac): track exercises, submit and follow results",
		Long:          "ac keeps a prioritized view of the Artemis exercises and courses you work on, detects the exercise behind the open workspace, clones, pulls and submits repositories, and streams build results from the server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	var verbose bool
	rootCmd.PersistentFlags().String("server", "", "Artemis server URL (overrides server.url)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	_ = app.cfg.BindPFlag(keyServerURL, rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if !verbose {
			return nil
		}
		return app.enableConsoleLogging(cmd.ErrOrStderr())
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newSyncCmd(app),
		newContextCmd(app),
		newStatusCmd(app),
		newSubmitCmd(app),
		newPullCmd(app),
		newCloneCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
