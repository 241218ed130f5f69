package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/compass.db")
	if cfg.Database.Path != "/tmp/compass.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	if !cfg.Output.Color {
		t.Fatal("expected color enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/compass.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != defaults {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
path = "/custom/compass.db"

[logging]
level = "debug"

[output]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default("/tmp/default.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/custom/compass.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Fatalf("unexpected log level %v", cfg.LogLevel())
	}
	if cfg.Output.Color {
		t.Fatal("expected color disabled from config override")
	}
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default("/tmp/default.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/tmp/default.db" {
		t.Fatalf("expected default db path, got %q", cfg.Database.Path)
	}
	if !cfg.Output.Color {
		t.Fatal("expected default color setting")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown log level", "[logging]\nlevel = \"chatty\"\n"},
		{"empty db path", "[database]\npath = \"  \"\n"},
		{"malformed toml", "[database\npath = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := Load(path, Default("/tmp/default.db")); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/env/compass.db")
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvNoColor, "true")

	cfg, err := ApplyEnv(Default("/tmp/default.db"))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Database.Path != "/env/compass.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Fatalf("unexpected log level %v", cfg.LogLevel())
	}
	if cfg.Output.Color {
		t.Fatal("expected COMPASS_NO_COLOR to disable color")
	}
}

func TestApplyEnvRejectsBadNoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "sometimes")

	if _, err := ApplyEnv(Default("/tmp/default.db")); err == nil {
		t.Fatal("expected error for unparsable COMPASS_NO_COLOR")
	}
}

func TestResolveReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("COMPASS_LOG_LEVEL=error\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	// Registers cleanup of the variable godotenv is about to set.
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	cfg, err := Resolve(filepath.Join(dir, "missing.toml"), envFile, "/tmp/default.db")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.LogLevel() != log.ErrorLevel {
		t.Fatalf("expected level from .env, got %v", cfg.LogLevel())
	}
}

func TestLoadEnvFileMissingIsNotAnError(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/compass.toml")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if path != "/etc/compass.toml" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default("/data/compass.db")
	cfg.Logging.Level = "info"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	loaded, err := Load(path, Default("/elsewhere.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, loaded)
	}
}
