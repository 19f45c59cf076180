package config

// Config represents the complete configuration for paneshell.
type Config struct {
	Window           WindowConfig           `mapstructure:"window" toml:"window" json:"window"`
	Chrome           ChromeConfig           `mapstructure:"chrome" toml:"chrome" json:"chrome"`
	Search           SearchConfig           `mapstructure:"search" toml:"search" json:"search"`
	ContentFiltering ContentFilteringConfig `mapstructure:"content_filtering" toml:"content_filtering" json:"content_filtering"`
	Logging          LoggingConfig          `mapstructure:"logging" toml:"logging" json:"logging"`
	Database         DatabaseConfig         `mapstructure:"database" toml:"database" json:"database"`
	Session          SessionConfig          `mapstructure:"session" toml:"session" json:"session"`
}

// WindowConfig holds the creation parameters of new windows.
type WindowConfig struct {
	DefaultTitle string  `mapstructure:"default_title" toml:"default_title" json:"default_title" jsonschema:"description=Title given to newly opened windows"`
	Width        float64 `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1,description=Initial content width in points"`
	Height       float64 `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1,description=Initial content height in points"`
	// Cascade origin; windows are centered afterwards.
	CascadeX float64 `mapstructure:"cascade_x" toml:"cascade_x" json:"cascade_x"`
	CascadeY float64 `mapstructure:"cascade_y" toml:"cascade_y" json:"cascade_y"`
}

// ChromeConfig controls the address and command bars.
type ChromeConfig struct {
	BarHeight float64 `mapstructure:"bar_height" toml:"bar_height" json:"bar_height" jsonschema:"minimum=1,description=Height of the address and command bars"`
}

// SearchConfig resolves address-bar input that is not a URL.
type SearchConfig struct {
	// DefaultSearch is a URL template with a single %s placeholder.
	DefaultSearch string            `mapstructure:"default_search" toml:"default_search" json:"default_search"`
	Shortcuts     map[string]string `mapstructure:"shortcuts" toml:"shortcuts" json:"shortcuts" jsonschema:"description=Bang shortcuts: key to URL template"`
}

// ContentFilteringConfig controls content-blocker lookups for new panes.
type ContentFilteringConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// Identifier of the compiled filter every new pane looks up.
	Identifier string `mapstructure:"identifier" toml:"identifier" json:"identifier"`
	// StoreDir holds compiled filters; empty means the XDG data directory.
	StoreDir string `mapstructure:"store_dir" toml:"store_dir" json:"store_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	MaxAge int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0,description=Days to keep rotated log files"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
}

// DatabaseConfig locates the session database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// SessionConfig controls session snapshots.
type SessionConfig struct {
	AutoSave bool `mapstructure:"auto_save" toml:"auto_save" json:"auto_save"`
	// SnapshotIntervalMs is the minimum delay between two automatic snapshots.
	SnapshotIntervalMs int `mapstructure:"snapshot_interval_ms" toml:"snapshot_interval_ms" json:"snapshot_interval_ms" jsonschema:"minimum=0"`
}
