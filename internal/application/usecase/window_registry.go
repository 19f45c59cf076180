package usecase

import "github.com/bnema/paneshell/internal/application/port"

// WindowRegistry addresses native windows by their position in the window
// server's list. Nothing is cached: every call reads the live list.
type WindowRegistry struct {
	server port.WindowServer
}

// NewWindowRegistry creates a registry over server.
func NewWindowRegistry(server port.WindowServer) *WindowRegistry {
	return &WindowRegistry{server: server}
}

// Count returns the number of windows.
func (r *WindowRegistry) Count() int {
	return len(r.server.Windows())
}

// Resolve returns the window at index, or false when index is out of range.
func (r *WindowRegistry) Resolve(index int) (port.NativeWindow, bool) {
	windows := r.server.Windows()
	if index < 0 || index >= len(windows) {
		return nil, false
	}
	return windows[index], true
}

// FocusedIndex returns the index of the first key window, or 0 when no
// window is key.
func (r *WindowRegistry) FocusedIndex() int {
	for i, w := range r.server.Windows() {
		if w.IsKey() {
			return i
		}
	}
	return 0
}

// Server returns the underlying window server.
func (r *WindowRegistry) Server() port.WindowServer {
	return r.server
}

// IndexOf returns the current index of the window with the given native ID.
func (r *WindowRegistry) IndexOf(id string) (int, bool) {
	for i, w := range r.server.Windows() {
		if w.ID() == id {
			return i, true
		}
	}
	return 0, false
}
