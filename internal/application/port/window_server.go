// Package port defines application-layer interfaces for the host capabilities
// the chrome core consumes: the native window server, widgets, layout, and the
// rendering engine. Ports keep the core independent of any GUI toolkit.
package port

import "github.com/bnema/paneshell/internal/domain/entity"

// View is a node of a window's view hierarchy.
// Implementations are only touched from the main loop.
type View interface {
	// Children returns the current child views in insertion order.
	Children() []View
	// AddChild appends child at the end of the child list.
	AddChild(child View)
	// RemoveFromParent detaches the view from its parent and the screen.
	RemoveFromParent()

	IsHidden() bool
	SetHidden(hidden bool)
}

// EditDelegate receives edit events from a text field.
type EditDelegate interface {
	TextChanged(text string)
	TextSubmitted(text string)
}

// TextField is a single-line native text widget.
type TextField interface {
	View

	Text() string
	SetText(text string)
	SetDelegate(delegate EditDelegate)
}

// WidgetFactory creates chrome widgets.
// This abstraction allows tests to run without a native toolkit.
type WidgetFactory interface {
	NewContainer() View
	NewTextField() TextField
}

// NativeWindow is a live window owned by the window server.
type NativeWindow interface {
	// ID is a stable host identity, only used for diagnostics.
	ID() string

	Title() string
	SetTitle(title string)

	Frame() entity.Rect
	SetFrame(frame entity.Rect)

	// IsKey reports whether the window currently holds input focus.
	IsKey() bool
	IsVisible() bool

	// MakeKeyAndOrderFront shows the window, raises it and gives it focus.
	MakeKeyAndOrderFront()
	// OrderOut hides the window without destroying it.
	OrderOut()
	// Close destroys the window. It disappears from WindowServer.Windows.
	Close()

	Center()
	// CascadeTopLeftFromPoint offsets the window from point and returns the
	// point the next cascaded window should use.
	CascadeTopLeftFromPoint(point entity.Point) entity.Point

	// ContentView is the root view holding the chrome regions.
	ContentView() View
}

// WindowServer is the host framework's window list.
type WindowServer interface {
	// Windows enumerates live windows in stable creation order.
	Windows() []NativeWindow
	// NewWindow creates a window with the given content frame.
	// Errors mean the window server itself is unavailable.
	NewWindow(frame entity.Rect) (NativeWindow, error)
}
