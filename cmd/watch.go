package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/adapters/bridge/jsonl"
	"github.com/bnema/artemis-companion-cli/internal/adapters/editor"
	"github.com/bnema/artemis-companion-cli/internal/adapters/realtime/stompws"
	"github.com/bnema/artemis-companion-cli/internal/adapters/terminal"
	"github.com/bnema/artemis-companion-cli/internal/adapters/watch"
	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		dir        string
		cloneDir   string
		noRealtime bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the companion daemon speaking JSON lines on stdin/stdout",
		Long:  "watch monitors the workspace folder, keeps the realtime channel to the server open and exchanges one JSON message per line with the editor on stdin and stdout.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			root, err := app.workspaceRoot(dir)
			if err != nil {
				return err
			}
			directory, err := app.cloneDirectory(cloneDir)
			if err != nil {
				return err
			}
			serverURL, err := app.serverURL()
			if err != nil {
				return err
			}
			sessions, err := app.sessionStore()
			if err != nil {
				return err
			}
			app.terminal = terminal.NewDetachedExec(cmd.ErrOrStderr())
			cloner, err := app.cloneService()
			if err != nil {
				return err
			}
			auth, err := app.authService()
			if err != nil {
				return err
			}

			workbench, err := app.openWorkbench(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := workbench.Close(context.WithoutCancel(ctx)); err != nil {
					app.logger.Warn("save workbench", zap.Error(err))
				}
			}()

			autoSave := app.cfg.GetBool(keyEditorAutoSave)
			documents := application.NewBridgeDocuments(editor.NewSwapFiles(autoSave), autoSave)

			var bridge *application.Bridge
			monitor := newMonitor(app, workbench, root, application.MonitorOptions{
				Documents:     documents,
				DocumentEvent: editor.IsSwapFile,
				OnStatus:      func(status domain.RepositoryStatus) { bridge.ReportRepositoryStatus(status) },
				OnDirty:       func(status domain.DirtyPagesStatus) { bridge.ReportDirtyPages(status) },
			})

			realtime := application.NewRealtimeChannel(stompws.NewDialer(app.logger), sessions, application.RealtimeOptions{
				ServerURL:      serverURL,
				Heartbeat:      app.cfg.GetDuration(keyHeartbeat),
				ReconnectDelay: app.cfg.GetDuration(keyReconnectDelay),
				Logger:         app.logger,
				OnStatus:       func(status domain.ConnectionStatus) { bridge.ReportConnection(status) },
			})

			bridge = application.NewBridge(application.BridgeDeps{
				Workbench:      workbench,
				Monitor:        monitor,
				Submitter:      app.submitter(),
				Puller:         application.NewPuller(app.git, app.logger),
				Cloner:         cloner,
				Realtime:       realtime,
				Documents:      documents,
				Emitter:        jsonl.NewEmitter(cmd.OutOrStdout()),
				Logger:         app.logger,
				CloneDirectory: directory,
				OnLogout: func(ctx context.Context) error {
					if app.platform != nil {
						app.platform.Flush()
					}
					return auth.Logout(ctx)
				},
			})
			defer bridge.Close()

			if !noRealtime {
				if err := realtime.Start(ctx); err != nil {
					app.logger.Warn("realtime channel unavailable", zap.Error(err))
				}
			}
			defer func() {
				if err := realtime.Disconnect(); err != nil {
					app.logger.Warn("disconnect realtime channel", zap.Error(err))
				}
			}()

			events, err := watch.NewWatcher(app.logger).Watch(ctx, root)
			if err != nil {
				return fmt.Errorf("watch workspace: %w", err)
			}
			go monitor.Run(ctx, events)

			_ = bridge.Handle(ctx, application.CmdDetectWorkspaceExercise, nil)

			app.logger.Info("companion daemon started", zap.String("root", root))
			return jsonl.Serve(ctx, cmd.InOrStdin(), bridge, app.logger)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Workspace folder (defaults to workspace.root or the working directory)")
	cmd.Flags().StringVar(&cloneDir, "clone-dir", "", "Parent folder for clones (defaults to clone.directory or the working directory)")
	cmd.Flags().BoolVar(&noRealtime, "no-realtime", false, "Do not connect to the realtime channel")

	return cmd
}
