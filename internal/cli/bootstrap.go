package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/compass/internal/config"
	"github.com/example/compass/internal/db"
	"github.com/example/compass/internal/logging"
	"github.com/example/compass/internal/wire"
)

// Global flag values, bound in AddGlobalFlags.
var (
	configPath string
	envFile    string
	dbFlag     string
	logLevel   string
	noColor    bool
)

// AddGlobalFlags registers the persistent flags every command understands.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.compass/config.toml)")
	flags.StringVar(&envFile, "env-file", ".env", "Load environment overrides from this file")
	flags.StringVar(&dbFlag, "db", "", "Database path (overrides config and COMPASS_DB_PATH)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored status markers")
}

// Bootstrap resolves configuration (file, .env, environment, flags), builds the logger
// and hands both to wire. It runs before every command.
func Bootstrap(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	defaultDB, err := db.DefaultPath()
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(path, envFile, defaultDB)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dbFlag != "" {
		cfg.Database.Path = dbFlag
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel())
	logger.Debug("configuration resolved", "config", path, "db", cfg.Database.Path, "level", cfg.Logging.Level)
	wire.Configure(cfg, logger)
	return nil
}

// writeDefaultConfig writes cfg to path unless a file already exists there.
func writeDefaultConfig(path string, cfg config.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// idArg returns the first positional argument, trimmed.
func idArg(args []string) string {
	return strings.TrimSpace(args[0])
}
