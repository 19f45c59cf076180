// Package headless implements the host ports in memory: a window server,
// widgets, a constraint-recording layout engine, and a rendering engine whose
// web views only remember what they were asked to load. It lets the chrome run
// without a GUI toolkit. Like a real toolkit it is not safe for concurrent
// use; drive it from the main loop.
package headless

import (
	"fmt"

	"github.com/bnema/paneshell/internal/application/port"
)

// node is implemented by every view type of this package.
type node interface {
	port.View
	base() *baseView
}

type baseView struct {
	parent   *baseView
	children []node
	hidden   bool
}

func (v *baseView) base() *baseView { return v }

func (v *baseView) Children() []port.View {
	children := make([]port.View, len(v.children))
	for i, child := range v.children {
		children[i] = child
	}
	return children
}

func (v *baseView) AddChild(child port.View) {
	n, ok := child.(node)
	if !ok {
		panic(fmt.Sprintf("headless: cannot host foreign view %T", child))
	}
	b := n.base()
	if b == v {
		panic("headless: a view cannot be its own child")
	}
	if b.parent != nil {
		b.parent.removeChild(b)
	}
	b.parent = v
	v.children = append(v.children, n)
}

func (v *baseView) RemoveFromParent() {
	if v.parent == nil {
		return
	}
	v.parent.removeChild(v)
	v.parent = nil
}

func (v *baseView) removeChild(child *baseView) {
	for i, c := range v.children {
		if c.base() == child {
			v.children = append(v.children[:i:i], v.children[i+1:]...)
			return
		}
	}
}

func (v *baseView) IsHidden() bool { return v.hidden }

func (v *baseView) SetHidden(hidden bool) { v.hidden = hidden }

// HasParent reports whether the view is attached to a hierarchy.
func (v *baseView) HasParent() bool { return v.parent != nil }

// Container is a plain grouping view.
type Container struct {
	baseView
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// TextField is a single-line text holder that forwards simulated user edits to
// its delegate.
type TextField struct {
	baseView
	text     string
	delegate port.EditDelegate
}

// NewTextField creates an empty text field.
func NewTextField() *TextField {
	return &TextField{}
}

func (f *TextField) Text() string { return f.text }

// SetText replaces the value programmatically; delegates are not notified.
func (f *TextField) SetText(text string) { f.text = text }

func (f *TextField) SetDelegate(delegate port.EditDelegate) { f.delegate = delegate }

// Type replaces the value the way a user edit would and notifies the delegate.
func (f *TextField) Type(text string) {
	f.text = text
	if f.delegate != nil {
		f.delegate.TextChanged(text)
	}
}

// Submit simulates pressing return in the field.
func (f *TextField) Submit() {
	if f.delegate != nil {
		f.delegate.TextSubmitted(f.text)
	}
}

// WebView records the URIs it was asked to load.
type WebView struct {
	baseView
	filter  port.ContentFilter
	history []string
}

func (w *WebView) LoadURI(uri string) {
	w.history = append(w.history, uri)
}

// URI returns the last loaded URI, or "" when nothing was loaded.
func (w *WebView) URI() string {
	if len(w.history) == 0 {
		return ""
	}
	return w.history[len(w.history)-1]
}

// History returns every URI loaded so far, oldest first.
func (w *WebView) History() []string {
	return append([]string(nil), w.history...)
}

func (w *WebView) ContentFilter() port.ContentFilter { return w.filter }

var (
	_ port.View      = (*Container)(nil)
	_ port.TextField = (*TextField)(nil)
	_ port.WebView   = (*WebView)(nil)
)
