package headless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/infrastructure/headless"
)

func newWindow(t *testing.T, s *headless.Server) port.NativeWindow {
	t.Helper()
	w, err := s.NewWindow(entity.NewRect(0, 0, 700, 700))
	require.NoError(t, err)
	return w
}

func TestServer_WindowsListedInCreationOrder(t *testing.T) {
	s := headless.NewServer()
	a := newWindow(t, s)
	b := newWindow(t, s)

	windows := s.Windows()
	require.Len(t, windows, 2)
	assert.Equal(t, a.ID(), windows[0].ID())
	assert.Equal(t, b.ID(), windows[1].ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.IsVisible(), "new windows start ordered out")
}

func TestServer_KeyPassesToFrontmostOnClose(t *testing.T) {
	s := headless.NewServer()
	a := newWindow(t, s)
	b := newWindow(t, s)
	c := newWindow(t, s)

	a.MakeKeyAndOrderFront()
	b.MakeKeyAndOrderFront()
	c.MakeKeyAndOrderFront()
	require.True(t, c.IsKey())
	assert.False(t, a.IsKey())

	c.Close()
	assert.True(t, b.IsKey())
	assert.Len(t, s.Windows(), 2)

	b.OrderOut()
	assert.True(t, a.IsKey())
	assert.False(t, b.IsVisible())
	assert.Same(t, a, s.KeyWindow())
}

func TestWindow_ClosedWindowIgnoresMutations(t *testing.T) {
	s := headless.NewServer()
	w := newWindow(t, s)
	w.SetTitle("before")
	w.Close()

	w.SetTitle("after")
	w.MakeKeyAndOrderFront()
	w.SetFrame(entity.NewRect(1, 2, 3, 4))

	assert.Equal(t, "before", w.Title())
	assert.False(t, w.IsKey())
	assert.Empty(t, s.Windows())
}

func TestWindow_CenterAndCascade(t *testing.T) {
	s := headless.NewServer(headless.WithScreen(entity.NewRect(0, 0, 1000, 800)))
	w := newWindow(t, s)

	next := w.CascadeTopLeftFromPoint(entity.Point{X: 20, Y: 20})
	assert.Equal(t, entity.Point{X: 40, Y: 40}, next)
	assert.Equal(t, entity.Point{X: 20, Y: 20}, w.Frame().Origin)

	w.Center()
	assert.Equal(t, entity.Point{X: 150, Y: 50}, w.Frame().Origin)
	assert.Equal(t, entity.Size{Width: 700, Height: 700}, w.Frame().Size)
}

func TestServer_ShutdownRejectsNewWindows(t *testing.T) {
	s := headless.NewServer()
	newWindow(t, s)
	s.Shutdown()

	assert.Empty(t, s.Windows())
	_, err := s.NewWindow(entity.NewRect(0, 0, 1, 1))
	assert.ErrorIs(t, err, headless.ErrServerClosed)
}

func TestView_ReparentAndRemove(t *testing.T) {
	parent := headless.NewContainer()
	other := headless.NewContainer()
	child := headless.NewTextField()

	parent.AddChild(child)
	require.Len(t, parent.Children(), 1)

	other.AddChild(child)
	assert.Empty(t, parent.Children())
	assert.Len(t, other.Children(), 1)

	child.RemoveFromParent()
	assert.Empty(t, other.Children())
	assert.False(t, child.HasParent())
}

type recordingDelegate struct {
	changed   []string
	submitted []string
}

func (d *recordingDelegate) TextChanged(text string)   { d.changed = append(d.changed, text) }
func (d *recordingDelegate) TextSubmitted(text string) { d.submitted = append(d.submitted, text) }

func TestTextField_DelegateSeesUserEditsOnly(t *testing.T) {
	f := headless.NewTextField()
	d := &recordingDelegate{}
	f.SetDelegate(d)

	f.SetText("programmatic")
	f.Type("typed")
	f.Submit()

	assert.Equal(t, []string{"typed"}, d.changed)
	assert.Equal(t, []string{"typed"}, d.submitted)
}

func TestLayoutEngine_RecordsConstraints(t *testing.T) {
	l := headless.NewLayoutEngine()
	owner := headless.NewContainer()
	item := headless.NewContainer()

	l.Pin(owner, port.Constraint{Item: item, ItemEdge: entity.EdgeTop, Target: owner, TargetEdge: entity.EdgeTop})
	l.SetHeight(item, 24)

	assert.True(t, l.PinnedTo(owner, item, entity.EdgeTop, owner, entity.EdgeTop))
	assert.False(t, l.PinnedTo(owner, item, entity.EdgeBottom, owner, entity.EdgeBottom))
	h, ok := l.Height(item)
	assert.True(t, ok)
	assert.Equal(t, 24.0, h)
	assert.Len(t, l.Constraints(owner), 1)
}

func TestEngine_WebViewCarriesFilter(t *testing.T) {
	e := headless.NewEngine()
	wv := e.NewWebView(port.WebViewConfig{})
	assert.Nil(t, wv.ContentFilter())
	assert.Equal(t, "", wv.URI())

	wv.LoadURI("https://example.com")
	wv.LoadURI("https://example.org")
	assert.Equal(t, "https://example.org", wv.URI())
	assert.Equal(t, 1, e.Created())
}
