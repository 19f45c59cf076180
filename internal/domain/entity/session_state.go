package entity

import "time"

// SessionID identifies a browser session.
type SessionID string

// SessionStateVersion is the current schema version for session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// SessionState is a snapshot of every open window of a session.
// This is serialized to JSON and stored in the database.
type SessionState struct {
	Version       int              `json:"version"`
	SessionID     SessionID        `json:"session_id"`
	Windows       []WindowSnapshot `json:"windows"`
	FocusedWindow int              `json:"focused_window"`
	SavedAt       time.Time        `json:"saved_at"`
}

// WindowSnapshot captures a single window.
type WindowSnapshot struct {
	Index       int            `json:"index"`
	Title       string         `json:"title"`
	Frame       Rect           `json:"frame"`
	Visible     bool           `json:"visible"`
	Key         bool           `json:"key"`
	AddressText string         `json:"address_text"`
	FocusedPane int            `json:"focused_pane"`
	Panes       []PaneSnapshot `json:"panes"`
}

// PaneSnapshot captures the essential state of a pane.
type PaneSnapshot struct {
	URI     string `json:"uri"`
	Visible bool   `json:"visible"`
}

// State returns the derived lifecycle state of the captured window.
func (w WindowSnapshot) State() WindowState {
	return StateOf(w.Visible, w.Key)
}

// CountPanes returns the total number of panes across all windows.
func (s *SessionState) CountPanes() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, w := range s.Windows {
		total += len(w.Panes)
	}
	return total
}

// SessionInfo is the summary row shown when listing saved sessions.
type SessionInfo struct {
	SessionID   SessionID `json:"session_id"`
	WindowCount int       `json:"window_count"`
	PaneCount   int       `json:"pane_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}
