package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateChrome(config)...)
	validationErrors = append(validationErrors, validateSearch(config)...)
	validationErrors = append(validationErrors, validateContentFiltering(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateSession(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.Width <= 0 {
		validationErrors = append(validationErrors, "window.width must be positive")
	}
	if config.Window.Height <= 0 {
		validationErrors = append(validationErrors, "window.height must be positive")
	}
	return validationErrors
}

func validateChrome(config *Config) []string {
	if config.Chrome.BarHeight <= 0 {
		return []string{"chrome.bar_height must be positive"}
	}
	return nil
}

func validateSearch(config *Config) []string {
	var validationErrors []string
	if config.Search.DefaultSearch != "" && !strings.Contains(config.Search.DefaultSearch, "%s") {
		validationErrors = append(validationErrors, "search.default_search must contain a %s placeholder")
	}
	for key, template := range config.Search.Shortcuts {
		if !strings.Contains(template, "%s") {
			validationErrors = append(validationErrors, fmt.Sprintf("search.shortcuts.%s must contain a %%s placeholder", key))
		}
	}
	return validationErrors
}

func validateContentFiltering(config *Config) []string {
	if !config.ContentFiltering.Enabled {
		return nil
	}
	id := config.ContentFiltering.Identifier
	if id == "" || strings.ContainsAny(id, `/\`) {
		return []string{"content_filtering.identifier must be a non-empty name without path separators"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json", "text":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}

func validateSession(config *Config) []string {
	if config.Session.SnapshotIntervalMs < 0 {
		return []string{"session.snapshot_interval_ms must be non-negative"}
	}
	return nil
}
