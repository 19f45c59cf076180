package port

import (
	"context"
	"errors"
)

// ErrFilteringDisabled is delivered by stores when content filtering is
// turned off in the configuration.
var ErrFilteringDisabled = errors.New("content filtering disabled")

// ContentFilter is a compiled content-blocking rule set.
type ContentFilter interface {
	Identifier() string
	RuleCount() int
}

// FilterResult is the tagged completion of a filter lookup:
// exactly one of Filter and Err is set.
type FilterResult struct {
	Filter ContentFilter
	Err    error
}

// ContentFilterStore resolves compiled content filters by identifier.
type ContentFilterStore interface {
	// Lookup starts resolving identifier and returns a channel that receives
	// exactly one result. The lookup cannot be aborted once issued.
	Lookup(ctx context.Context, identifier string) <-chan FilterResult
}

// WebViewConfig configures a new content-rendering surface.
type WebViewConfig struct {
	// ContentFilter is nil when the pane runs unfiltered.
	ContentFilter ContentFilter
}

// WebView is a content-rendering surface hosted in a pane container.
type WebView interface {
	View

	LoadURI(uri string)
	URI() string
	// ContentFilter returns the filter the view was configured with, or nil.
	ContentFilter() ContentFilter
}

// RenderingEngine constructs web views.
type RenderingEngine interface {
	NewWebView(cfg WebViewConfig) WebView
}
