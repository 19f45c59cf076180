package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/infrastructure/headless"
	"github.com/bnema/paneshell/internal/ui/layout"
)

func buildWindow(t *testing.T, barHeight float64, handler port.FieldHandler) (port.NativeWindow, *headless.LayoutEngine, port.ChromeHandles) {
	t.Helper()
	server := headless.NewServer()
	window, err := server.NewWindow(entity.NewRect(0, 0, 700, 700))
	require.NoError(t, err)

	engine := headless.NewLayoutEngine()
	builder := layout.NewChromeBuilder(headless.WidgetFactory{}, engine, barHeight, handler)
	return window, engine, builder.Build(window)
}

func TestChromeBuilder_InsertsRegionsInFixedOrder(t *testing.T) {
	window, _, _ := buildWindow(t, 0, nil)

	children := window.ContentView().Children()
	require.Len(t, children, 3)
	_, isField := children[entity.AddressBar.Position()].(port.TextField)
	assert.True(t, isField)
	_, isField = children[entity.CommandBar.Position()].(port.TextField)
	assert.True(t, isField)
	_, isContainer := children[entity.PaneContainer.Position()].(*headless.Container)
	assert.True(t, isContainer)
	assert.Empty(t, children[entity.PaneContainer.Position()].Children())
}

func TestChromeBuilder_ConstrainsBarsAndContainer(t *testing.T) {
	window, engine, _ := buildWindow(t, 0, nil)

	content := window.ContentView()
	children := content.Children()
	address, container, command := children[0], children[1], children[2]

	for _, edge := range []entity.Edge{entity.EdgeTop, entity.EdgeLeft, entity.EdgeRight} {
		assert.True(t, engine.PinnedTo(content, address, edge, content, edge), "address %s", edge)
	}
	for _, edge := range []entity.Edge{entity.EdgeBottom, entity.EdgeLeft, entity.EdgeRight} {
		assert.True(t, engine.PinnedTo(content, command, edge, content, edge), "command %s", edge)
	}
	assert.True(t, engine.PinnedTo(content, container, entity.EdgeTop, address, entity.EdgeBottom))
	assert.True(t, engine.PinnedTo(content, container, entity.EdgeBottom, command, entity.EdgeTop))
	assert.True(t, engine.PinnedTo(content, container, entity.EdgeLeft, content, entity.EdgeLeft))
	assert.True(t, engine.PinnedTo(content, container, entity.EdgeRight, content, entity.EdgeRight))
	assert.Len(t, engine.Constraints(content), 10)

	for _, bar := range []port.View{address, command} {
		h, ok := engine.Height(bar)
		require.True(t, ok)
		assert.Equal(t, float64(entity.DefaultBarHeight), h)
	}
	_, ok := engine.Height(container)
	assert.False(t, ok)
}

func TestChromeBuilder_CustomBarHeight(t *testing.T) {
	window, engine, _ := buildWindow(t, 32, nil)

	h, ok := engine.Height(window.ContentView().Children()[0])
	require.True(t, ok)
	assert.Equal(t, 32.0, h)
}

func TestChromeBuilder_MakesWindowKeyLast(t *testing.T) {
	window, _, _ := buildWindow(t, 0, nil)

	assert.True(t, window.IsKey())
	assert.True(t, window.IsVisible())
}

func TestChromeBuilder_RoutesFieldEvents(t *testing.T) {
	var events []port.FieldEvent
	handler := port.FieldHandlerFunc(func(e port.FieldEvent) { events = append(events, e) })
	window, _, handles := buildWindow(t, 0, handler)

	children := window.ContentView().Children()
	address := children[entity.AddressBar.Position()].(*headless.TextField)
	command := children[entity.CommandBar.Position()].(*headless.TextField)

	address.Type("example.com")
	address.Submit()
	command.Type("pane add")
	command.Submit()

	require.Len(t, events, 4)
	assert.Equal(t, port.FieldEvent{WindowID: window.ID(), Region: entity.AddressBar, Kind: port.FieldChanged, Text: "example.com"}, events[0])
	assert.Equal(t, port.FieldSubmitted, events[1].Kind)
	assert.Equal(t, entity.CommandBar, events[2].Region)
	assert.Equal(t, "pane add", events[3].Text)

	delegate, ok := handles.CommandBar.(*layout.FieldDelegate)
	require.True(t, ok)
	assert.Equal(t, entity.CommandBar, delegate.Region())
	assert.Equal(t, window.ID(), delegate.WindowID())
}

func TestChromeBuilder_SetBarHeight(t *testing.T) {
	server := headless.NewServer()
	engine := headless.NewLayoutEngine()
	builder := layout.NewChromeBuilder(headless.WidgetFactory{}, engine, 0, nil)

	builder.SetBarHeight(48)
	window, err := server.NewWindow(entity.NewRect(0, 0, 700, 700))
	require.NoError(t, err)
	builder.Build(window)

	h, ok := engine.Height(window.ContentView().Children()[0])
	require.True(t, ok)
	assert.Equal(t, 48.0, h)

	builder.SetBarHeight(-1)
	assert.Equal(t, float64(entity.DefaultBarHeight), builder.BarHeight())
}

