package headless

import (
	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
)

// Window is a headless native window. Every mutator is a no-op once the
// window is closed, matching a stale handle on a real toolkit.
type Window struct {
	id      string
	title   string
	frame   entity.Rect
	visible bool
	key     bool
	closed  bool
	content *Container
	server  *Server
}

func (w *Window) ID() string { return w.id }

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) {
	if w.closed {
		return
	}
	w.title = title
}

func (w *Window) Frame() entity.Rect { return w.frame }

func (w *Window) SetFrame(frame entity.Rect) {
	if w.closed {
		return
	}
	w.frame = frame
}

func (w *Window) IsKey() bool { return w.key }

func (w *Window) IsVisible() bool { return w.visible }

// IsClosed reports whether Close was called.
func (w *Window) IsClosed() bool { return w.closed }

func (w *Window) MakeKeyAndOrderFront() {
	if w.closed {
		return
	}
	w.server.orderFront(w)
}

func (w *Window) OrderOut() {
	if w.closed {
		return
	}
	w.server.orderOut(w)
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.server.close(w)
}

// Center moves the window so its frame is centered on the screen.
func (w *Window) Center() {
	if w.closed {
		return
	}
	screen := w.server.screen.Center()
	w.frame.Origin = entity.Point{
		X: screen.X - w.frame.Size.Width/2,
		Y: screen.Y - w.frame.Size.Height/2,
	}
}

// CascadeTopLeftFromPoint moves the window origin to point and returns point
// shifted by one cascade step. A zero point keeps the current origin.
func (w *Window) CascadeTopLeftFromPoint(point entity.Point) entity.Point {
	if w.closed {
		return point
	}
	if point == (entity.Point{}) {
		point = w.frame.Origin
	} else {
		w.frame.Origin = point
	}
	return entity.Point{X: point.X + defaultCascadeStep, Y: point.Y + defaultCascadeStep}
}

func (w *Window) ContentView() port.View { return w.content }

var _ port.NativeWindow = (*Window)(nil)
