package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bnema/artemis-companion-cli/internal/adapters/artemis"
	gitcli "github.com/bnema/artemis-companion-cli/internal/adapters/git/cli"
	"github.com/bnema/artemis-companion-cli/internal/adapters/logging"
	statusadapter "github.com/bnema/artemis-companion-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/artemis-companion-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/artemis-companion-cli/internal/adapters/secrets/chain"
	"github.com/bnema/artemis-companion-cli/internal/adapters/terminal"
	"github.com/bnema/artemis-companion-cli/internal/application"
	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

type app struct {
	cfg         *viper.Viper
	logger      *zap.Logger
	state       *tomlrepo.Repository
	secretStore ports.SecretStore
	git         ports.Git
	terminal    ports.Terminal
	clock       ports.Clock
	httpClient  *http.Client

	statusRenderer func(statusadapter.Overview, statusadapter.RenderOptions) (string, error)

	platform *artemis.TokenCache
	sessions *artemis.SessionStore
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	state, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.GetString(keySecretsDir))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	logger, err := logging.New(logging.Options{Path: cfg.GetString(keyLogPath), Level: cfg.GetString(keyLogLevel)})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		state:          state,
		secretStore:    secretStore,
		git:            gitcli.NewClient(),
		terminal:       terminal.NewExec(),
		clock:          ports.SystemClock{},
		httpClient:     &http.Client{},
		statusRenderer: statusadapter.Render,
	}, nil
}

// enableConsoleLogging adds a console core writing to w.
func (a *app) enableConsoleLogging(w io.Writer) error {
	logger, err := logging.New(logging.Options{
		Path:    a.cfg.GetString(keyLogPath),
		Level:   "debug",
		Console: w,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) serverURL() (string, error) {
	raw := strings.TrimSpace(a.cfg.GetString(keyServerURL))
	if raw == "" {
		return "", fmt.Errorf("%w: set server.url in ~/.artemis/config.toml, AC_SERVER_URL or --server", domain.ErrServerURLMissing)
	}
	return strings.TrimSuffix(raw, "/"), nil
}

func (a *app) sessionStore() (*artemis.SessionStore, error) {
	if a.sessions != nil {
		return a.sessions, nil
	}

	serverURL, err := a.serverURL()
	if err != nil {
		return nil, err
	}
	a.sessions = artemis.NewSessionStore(a.secretStore, application.SessionSecretKey(serverURL), a.clock)
	return a.sessions, nil
}

func (a *app) platformClient() (*artemis.TokenCache, error) {
	if a.platform != nil {
		return a.platform, nil
	}

	serverURL, err := a.serverURL()
	if err != nil {
		return nil, err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return nil, err
	}

	a.platform = artemis.NewTokenCache(&artemis.Client{
		BaseURL:        serverURL,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.GetDuration(keyRequestTimeout),
		Sessions:       sessions,
	}, a.cfg.GetDuration(keyVCSTokenTTL))
	return a.platform, nil
}

func (a *app) authService() (*application.AuthService, error) {
	serverURL, err := a.serverURL()
	if err != nil {
		return nil, err
	}
	platform, err := a.platformClient()
	if err != nil {
		return nil, err
	}
	return application.NewAuthService(platform, a.secretStore, serverURL), nil
}

func (a *app) openWorkbench(ctx context.Context) (*application.Workbench, error) {
	return application.OpenWorkbench(ctx, a.state, a.clock, a.logger)
}

// withWorkbench opens the workbench, runs fn and persists the result.
func (a *app) withWorkbench(ctx context.Context, fn func(*application.Workbench) error) error {
	workbench, err := a.openWorkbench(ctx)
	if err != nil {
		return err
	}

	runErr := fn(workbench)
	if closeErr := workbench.Close(ctx); closeErr != nil {
		return errors.Join(runErr, fmt.Errorf("save workbench: %w", closeErr))
	}
	return runErr
}

func (a *app) submitter() *application.Submitter {
	return application.NewSubmitter(a.git, application.SubmitterOptions{
		DefaultMessage: a.cfg.GetString(keyCommitMessage),
		Logger:         a.logger,
	})
}

func (a *app) cloneService() (*application.CloneService, error) {
	platform, err := a.platformClient()
	if err != nil {
		return nil, err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return nil, err
	}
	return application.NewCloneService(platform, sessions, a.terminal, a.state, a.clock, a.logger), nil
}

// workspaceRoot resolves --dir, then workspace.root, then the working
// directory.
func (a *app) workspaceRoot(flag string) (string, error) {
	root := strings.TrimSpace(flag)
	if root == "" {
		root = strings.TrimSpace(a.cfg.GetString(keyWorkspaceRoot))
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(expandHome(root))
	if err != nil {
		return "", fmt.Errorf("resolve workspace %q: %w", root, err)
	}
	return abs, nil
}

func (a *app) cloneDirectory(flag string) (string, error) {
	dir := strings.TrimSpace(flag)
	if dir == "" {
		dir = strings.TrimSpace(a.cfg.GetString(keyCloneDirectory))
	}
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(expandHome(dir))
}

func (a *app) now() time.Time {
	return a.clock.Now()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
