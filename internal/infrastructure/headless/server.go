package headless

import (
	"errors"

	"github.com/google/uuid"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
)

// ErrServerClosed is returned by NewWindow after Shutdown.
var ErrServerClosed = errors.New("window server is shut down")

const defaultCascadeStep = 20

// Server is an in-memory window server. Windows are listed in creation order;
// a separate back-to-front stack of visible windows decides which window
// inherits key status when the key window goes away.
type Server struct {
	screen   entity.Rect
	windows  []*Window
	zorder   []*Window
	shutdown bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithScreen sets the screen frame used to center windows.
func WithScreen(screen entity.Rect) ServerOption {
	return func(s *Server) { s.screen = screen }
}

// NewServer creates a window server with no windows.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{screen: entity.NewRect(0, 0, 1920, 1080)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Windows() []port.NativeWindow {
	windows := make([]port.NativeWindow, len(s.windows))
	for i, w := range s.windows {
		windows[i] = w
	}
	return windows
}

// NewWindow creates an ordered-out window. It becomes visible once
// MakeKeyAndOrderFront is called.
func (s *Server) NewWindow(frame entity.Rect) (port.NativeWindow, error) {
	if s.shutdown {
		return nil, ErrServerClosed
	}
	w := &Window{
		id:      uuid.NewString(),
		frame:   frame,
		content: NewContainer(),
		server:  s,
	}
	s.windows = append(s.windows, w)
	return w, nil
}

// Shutdown closes every window and makes further NewWindow calls fail.
func (s *Server) Shutdown() {
	for len(s.windows) > 0 {
		s.close(s.windows[0])
	}
	s.shutdown = true
}

// KeyWindow returns the key window, or nil.
func (s *Server) KeyWindow() *Window {
	for _, w := range s.windows {
		if w.key {
			return w
		}
	}
	return nil
}

func (s *Server) orderFront(w *Window) {
	for _, other := range s.windows {
		other.key = false
	}
	s.removeFromStack(w)
	s.zorder = append(s.zorder, w)
	w.visible = true
	w.key = true
}

func (s *Server) orderOut(w *Window) {
	wasKey := w.key
	w.visible = false
	w.key = false
	s.removeFromStack(w)
	if wasKey && len(s.zorder) > 0 {
		s.zorder[len(s.zorder)-1].key = true
	}
}

func (s *Server) close(w *Window) {
	s.orderOut(w)
	for i, other := range s.windows {
		if other == w {
			s.windows = append(s.windows[:i:i], s.windows[i+1:]...)
			break
		}
	}
	w.closed = true
}

func (s *Server) removeFromStack(w *Window) {
	for i, other := range s.zorder {
		if other == w {
			s.zorder = append(s.zorder[:i:i], s.zorder[i+1:]...)
			return
		}
	}
}

var _ port.WindowServer = (*Server)(nil)
