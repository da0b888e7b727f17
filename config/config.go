package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAPIURL is used when no backend URL is configured.
const DefaultAPIURL = "http://localhost:3001"

// DefaultWorkspace is the tenant identifier attached to requests when the
// user has not selected a workspace.
const DefaultWorkspace = "default"

type Config struct {
	APIURL      string
	Token       string
	WorkspaceID string
	InboxDir    string        // watched for dropped audio files; empty disables
	RecordDir   string        // where finished recordings land
	Timeout     time.Duration // per-request ceiling for remote calls
	Enhanced    bool          // hierarchical summaries by default
}

type fileConfig struct {
	APIURL         string `toml:"api_url"`
	Token          string `toml:"token"`
	WorkspaceID    string `toml:"workspace_id"`
	InboxDir       string `toml:"inbox_dir"`
	RecordDir      string `toml:"record_dir"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Legacy         bool   `toml:"legacy_summary"`
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:      DefaultAPIURL,
		WorkspaceID: DefaultWorkspace,
		RecordDir:   defaultRecordDir(),
		Timeout:     5 * time.Minute, // transcription is slow
		Enhanced:    true,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.APIURL != "" {
				cfg.APIURL = fc.APIURL
			}
			cfg.Token = fc.Token
			if fc.WorkspaceID != "" {
				cfg.WorkspaceID = fc.WorkspaceID
			}
			if fc.InboxDir != "" {
				cfg.InboxDir = expandTilde(fc.InboxDir)
			}
			if fc.RecordDir != "" {
				cfg.RecordDir = expandTilde(fc.RecordDir)
			}
			if fc.TimeoutSeconds > 0 {
				cfg.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
			}
			cfg.Enhanced = !fc.Legacy
		}
	}

	applyEnvOverrides(cfg)

	if err := os.MkdirAll(cfg.RecordDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MINUTE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("MINUTE_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("MINUTE_WORKSPACE"); v != "" {
		cfg.WorkspaceID = v
	}
	if v := os.Getenv("MINUTE_INBOX_DIR"); v != "" {
		cfg.InboxDir = expandTilde(v)
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "minute")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "minute")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultRecordDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "minute", "recordings")
	}
	return filepath.Join(".", "recordings")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
