package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState_CountPanes(t *testing.T) {
	var nilState *SessionState
	assert.Equal(t, 0, nilState.CountPanes())

	state := &SessionState{
		Windows: []WindowSnapshot{
			{Panes: []PaneSnapshot{{URI: "https://a.example"}, {URI: "https://b.example"}}},
			{Panes: []PaneSnapshot{{URI: "about:blank"}}},
			{},
		},
	}
	assert.Equal(t, 3, state.CountPanes())
}

func TestWindowSnapshot_State(t *testing.T) {
	assert.Equal(t, WindowFocused, WindowSnapshot{Visible: true, Key: true}.State())
	assert.Equal(t, WindowVisible, WindowSnapshot{Visible: true}.State())
	assert.Equal(t, WindowHidden, WindowSnapshot{Key: true}.State())
	assert.Equal(t, "hidden", WindowHidden.String())
}
