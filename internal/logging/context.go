package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithWindowIndex creates a child logger with a window_index field
func WithWindowIndex(ctx context.Context, windowIndex int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Int("window_index", windowIndex).Logger()
	return WithContext(ctx, childLogger)
}

// WithPaneIndex creates a child logger with a pane_index field
func WithPaneIndex(ctx context.Context, paneIndex int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Int("pane_index", paneIndex).Logger()
	return WithContext(ctx, childLogger)
}

// WithSessionID creates a child logger with a session_id field
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("session_id", sessionID).Logger()
	return WithContext(ctx, childLogger)
}
