// Package logging builds the per-session logger from configuration.
package logging

import (
	"github.com/rs/zerolog"

	"github.com/bnema/paneshell/internal/infrastructure/config"
	corelogging "github.com/bnema/paneshell/internal/logging"
)

const rotateSizeMB = 10

// NewSessionLogger returns the logger for one run and a cleanup that closes
// its log file. When the file cannot be opened the logger falls back to
// stderr and err reports why.
func NewSessionLogger(cfg config.LoggingConfig) (logger zerolog.Logger, cleanup func(), err error) {
	logCfg := corelogging.DefaultConfig()
	logCfg.Level = corelogging.ParseLevel(cfg.Level)
	logCfg.Format = corelogging.NormalizeFormat(cfg.Format)
	logCfg.TimeFormat = "15:04:05"

	cleanup = func() {}
	if cfg.EnableFileLog && cfg.LogDir != "" {
		rotator, rotErr := corelogging.NewLogRotator(cfg.LogDir, rotateSizeMB, cfg.MaxAge)
		if rotErr != nil {
			err = rotErr
		} else {
			logCfg.Extra = rotator
			cleanup = func() { _ = rotator.Close() }
		}
	}
	return corelogging.New(logCfg), cleanup, err
}
