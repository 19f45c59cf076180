package config

import (
	"github.com/bnema/paneshell/internal/domain/entity"
	domainurl "github.com/bnema/paneshell/internal/domain/url"
	"github.com/bnema/paneshell/internal/infrastructure/filtering"
)

const (
	defaultWindowSize         = 700
	defaultCascadeOffset      = 20
	defaultMaxLogAgeDays      = 7
	defaultSnapshotIntervalMs = 5000
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for paneshell.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			DefaultTitle: appName,
			Width:        defaultWindowSize,
			Height:       defaultWindowSize,
			CascadeX:     defaultCascadeOffset,
			CascadeY:     defaultCascadeOffset,
		},
		Chrome: ChromeConfig{
			BarHeight: entity.DefaultBarHeight,
		},
		Search: SearchConfig{
			DefaultSearch: domainurl.DefaultSearch,
			Shortcuts: map[string]string{
				"g":  "https://www.google.com/search?q=%s",
				"gh": "https://github.com/search?q=%s",
				"w":  "https://en.wikipedia.org/wiki/Special:Search?search=%s",
			},
		},
		ContentFiltering: ContentFilteringConfig{
			Enabled:    true,
			Identifier: filtering.DefaultIdentifier,
			// StoreDir is set dynamically in Load()
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			MaxAge:        defaultMaxLogAgeDays,
			LogDir:        getDefaultLogDir(),
			EnableFileLog: false,
		},
		Database: DatabaseConfig{
			// Path is set dynamically in Load()
		},
		Session: SessionConfig{
			AutoSave:           true,
			SnapshotIntervalMs: defaultSnapshotIntervalMs,
		},
	}
}
