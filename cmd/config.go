package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	tomlrepo "github.com/bnema/artemis-companion-cli/internal/adapters/repo/toml"
	"github.com/bnema/artemis-companion-cli/internal/application"
)

const (
	configDirName  = ".artemis"
	configFileName = "config.toml"
	envPrefix      = "AC"

	keyServerURL       = "server.url"
	keySecretsDir      = "secrets.dir"
	keyWorkspaceRoot   = "workspace.root"
	keyCommitMessage   = "git.default_commit_message"
	keyCloneDirectory  = "clone.directory"
	keyEditorAutoSave  = "editor.auto_save"
	keyHeartbeat       = "realtime.heartbeat"
	keyReconnectDelay  = "realtime.reconnect_delay"
	keyLogPath         = "log.path"
	keyLogLevel        = "log.level"
	keyRequestTimeout  = "server.request_timeout"
	keyVCSTokenTTL     = "server.vcs_token_ttl"
	defaultRequestTime = 30 * time.Second
)

// loadConfig reads ~/.artemis/config.toml, then a .env file in the working
// directory, then AC_* environment variables. Later sources win.
func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDirName)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigFile(filepath.Join(baseDir, configFileName))
	cfg.SetConfigType("toml")
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(tomlrepo.StatePathKey, filepath.Join(baseDir, "state.toml"))
	cfg.SetDefault(keySecretsDir, filepath.Join(baseDir, "secrets"))
	cfg.SetDefault(keyCommitMessage, application.DefaultCommitMessage)
	cfg.SetDefault(keyEditorAutoSave, false)
	cfg.SetDefault(keyHeartbeat, application.DefaultHeartbeat)
	cfg.SetDefault(keyReconnectDelay, application.DefaultReconnectDelay)
	cfg.SetDefault(keyLogPath, filepath.Join(baseDir, "logs", "ac.log"))
	cfg.SetDefault(keyLogLevel, "info")
	cfg.SetDefault(keyRequestTimeout, defaultRequestTime)
	cfg.SetDefault(keyVCSTokenTTL, 15*time.Minute)

	if err := cfg.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", cfg.ConfigFileUsed(), err)
		}
	}

	return cfg, nil
}
