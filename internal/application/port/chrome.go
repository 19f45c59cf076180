package port

import "github.com/bnema/paneshell/internal/domain/entity"

// FieldEventKind distinguishes edit notifications from a chrome bar.
type FieldEventKind int

const (
	FieldChanged FieldEventKind = iota
	FieldSubmitted
)

// FieldEvent is an edit notification from one of a window's bars.
// WindowID is the native identity of the owning window; handlers map it back
// to an index at delivery time.
type FieldEvent struct {
	WindowID string
	Region   entity.ChromeRegion
	Kind     FieldEventKind
	Text     string
}

// FieldHandler receives bar edit events.
type FieldHandler interface {
	HandleFieldEvent(event FieldEvent)
}

// FieldHandlerFunc adapts a function to FieldHandler.
type FieldHandlerFunc func(event FieldEvent)

func (f FieldHandlerFunc) HandleFieldEvent(event FieldEvent) { f(event) }

// ChromeHandles are the delegates attached to a window's two bars.
type ChromeHandles struct {
	AddressBar EditDelegate
	CommandBar EditDelegate
}

// ChromeBuilder installs the three chrome regions into a fresh window.
type ChromeBuilder interface {
	Build(window NativeWindow) ChromeHandles
}
