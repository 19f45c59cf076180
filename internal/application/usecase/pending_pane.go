package usecase

import (
	"sync"

	"github.com/bnema/paneshell/internal/application/port"
)

// PaneResult describes a finished pane insertion.
type PaneResult struct {
	WindowIndex int
	// PaneIndex is the position of the new pane; -1 when nothing was inserted.
	PaneIndex int
	Pane      port.WebView
	// Filtered reports whether the pane was configured with a content filter.
	Filtered bool
	// Inserted is false when the window no longer resolved at completion.
	Inserted bool
	// FilterErr is the lookup failure, if any. The pane is still inserted.
	FilterErr error
}

// PendingPane is the single-shot completion of an asynchronous pane insertion.
type PendingPane struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	result    PaneResult
	callbacks []func(PaneResult)
}

func newPendingPane() *PendingPane {
	return &PendingPane{done: make(chan struct{})}
}

// Done is closed once the insertion has completed or was dropped, after every
// callback registered with Then has run.
func (p *PendingPane) Done() <-chan struct{} {
	return p.done
}

// Result returns the completion. It is the zero value until resolved.
func (p *PendingPane) Result() PaneResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Then registers fn to run with the result. Callbacks registered before
// completion run on the goroutine that completes the pane (the main loop);
// callbacks registered afterwards run immediately.
func (p *PendingPane) Then(fn func(PaneResult)) {
	p.mu.Lock()
	if p.resolved {
		result := p.result
		p.mu.Unlock()
		fn(result)
		return
	}
	p.callbacks = append(p.callbacks, fn)
	p.mu.Unlock()
}

func (p *PendingPane) resolve(result PaneResult) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.result = result
	callbacks := p.callbacks
	p.callbacks = nil
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(result)
	}
	close(p.done)
}
