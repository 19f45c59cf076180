package headless

import (
	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
)

// WidgetFactory creates headless chrome widgets.
type WidgetFactory struct{}

func (WidgetFactory) NewContainer() port.View { return NewContainer() }

func (WidgetFactory) NewTextField() port.TextField { return NewTextField() }

// Engine is a rendering engine producing headless web views.
type Engine struct {
	created int
}

// NewEngine creates a rendering engine.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) NewWebView(cfg port.WebViewConfig) port.WebView {
	e.created++
	return &WebView{filter: cfg.ContentFilter}
}

// Created returns how many web views were constructed.
func (e *Engine) Created() int { return e.created }

// LayoutEngine records installed constraints instead of solving them.
type LayoutEngine struct {
	constraints map[port.View][]port.Constraint
	heights     map[port.View]float64
}

// NewLayoutEngine creates an empty constraint recorder.
func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		constraints: make(map[port.View][]port.Constraint),
		heights:     make(map[port.View]float64),
	}
}

func (l *LayoutEngine) Pin(owner port.View, c port.Constraint) {
	l.constraints[owner] = append(l.constraints[owner], c)
}

func (l *LayoutEngine) SetHeight(v port.View, height float64) {
	l.heights[v] = height
}

// Constraints returns the constraints installed on owner.
func (l *LayoutEngine) Constraints(owner port.View) []port.Constraint {
	return append([]port.Constraint(nil), l.constraints[owner]...)
}

// Height returns the fixed height of v, if any.
func (l *LayoutEngine) Height(v port.View) (float64, bool) {
	h, ok := l.heights[v]
	return h, ok
}

// PinnedTo reports whether owner carries a constraint binding item's edge to
// target's edge.
func (l *LayoutEngine) PinnedTo(owner, item port.View, itemEdge entity.Edge, target port.View, targetEdge entity.Edge) bool {
	for _, c := range l.constraints[owner] {
		if c.Item == item && c.ItemEdge == itemEdge && c.Target == target && c.TargetEdge == targetEdge {
			return true
		}
	}
	return false
}

var (
	_ port.WidgetFactory   = WidgetFactory{}
	_ port.RenderingEngine = (*Engine)(nil)
	_ port.LayoutEngine    = (*LayoutEngine)(nil)
)
