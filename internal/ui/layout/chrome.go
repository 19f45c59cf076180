// Package layout builds the chrome of a browser window: an address bar on top,
// a command bar at the bottom and the pane container filling the space
// between them.
package layout

import (
	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
)

// ChromeBuilder installs the chrome regions into new windows.
type ChromeBuilder struct {
	factory   port.WidgetFactory
	layout    port.LayoutEngine
	barHeight float64
	handler   port.FieldHandler
}

// NewChromeBuilder creates a builder. A non-positive barHeight falls back to
// entity.DefaultBarHeight; a nil handler discards field events.
func NewChromeBuilder(
	factory port.WidgetFactory,
	layout port.LayoutEngine,
	barHeight float64,
	handler port.FieldHandler,
) *ChromeBuilder {
	if barHeight <= 0 {
		barHeight = entity.DefaultBarHeight
	}
	if handler == nil {
		handler = port.FieldHandlerFunc(func(port.FieldEvent) {})
	}
	return &ChromeBuilder{
		factory:   factory,
		layout:    layout,
		barHeight: barHeight,
		handler:   handler,
	}
}

// BarHeight returns the height applied to both bars.
func (b *ChromeBuilder) BarHeight() float64 {
	return b.barHeight
}

// SetBarHeight changes the bar height of windows built from now on.
// A non-positive height restores entity.DefaultBarHeight.
func (b *ChromeBuilder) SetBarHeight(height float64) {
	if height <= 0 {
		height = entity.DefaultBarHeight
	}
	b.barHeight = height
}

// Build appends the address bar, pane container and command bar to the
// window's content view in that order, constrains them, attaches a field
// delegate to each bar, and finally makes the window key and visible.
func (b *ChromeBuilder) Build(window port.NativeWindow) port.ChromeHandles {
	content := window.ContentView()

	addressBar := b.factory.NewTextField()
	container := b.factory.NewContainer()
	commandBar := b.factory.NewTextField()

	content.AddChild(addressBar)
	content.AddChild(container)
	content.AddChild(commandBar)

	b.pinBar(content, addressBar, entity.EdgeTop)
	b.pinBar(content, commandBar, entity.EdgeBottom)

	b.layout.Pin(content, port.Constraint{Item: container, ItemEdge: entity.EdgeTop, Target: addressBar, TargetEdge: entity.EdgeBottom})
	b.layout.Pin(content, port.Constraint{Item: container, ItemEdge: entity.EdgeBottom, Target: commandBar, TargetEdge: entity.EdgeTop})
	b.layout.Pin(content, port.Constraint{Item: container, ItemEdge: entity.EdgeLeft, Target: content, TargetEdge: entity.EdgeLeft})
	b.layout.Pin(content, port.Constraint{Item: container, ItemEdge: entity.EdgeRight, Target: content, TargetEdge: entity.EdgeRight})

	handles := port.ChromeHandles{
		AddressBar: NewFieldDelegate(window.ID(), entity.AddressBar, b.handler),
		CommandBar: NewFieldDelegate(window.ID(), entity.CommandBar, b.handler),
	}
	addressBar.SetDelegate(handles.AddressBar)
	commandBar.SetDelegate(handles.CommandBar)

	window.MakeKeyAndOrderFront()
	return handles
}

// pinBar pins bar to the given outer edge and both sides of content.
func (b *ChromeBuilder) pinBar(content port.View, bar port.View, edge entity.Edge) {
	for _, e := range []entity.Edge{edge, entity.EdgeLeft, entity.EdgeRight} {
		b.layout.Pin(content, port.Constraint{Item: bar, ItemEdge: e, Target: content, TargetEdge: e})
	}
	b.layout.SetHeight(bar, b.barHeight)
}

// FieldDelegate forwards edit events of one bar to a FieldHandler, tagged
// with the owning window and region.
type FieldDelegate struct {
	windowID string
	region   entity.ChromeRegion
	handler  port.FieldHandler
}

// NewFieldDelegate creates a delegate for the bar at region of windowID.
func NewFieldDelegate(windowID string, region entity.ChromeRegion, handler port.FieldHandler) *FieldDelegate {
	return &FieldDelegate{windowID: windowID, region: region, handler: handler}
}

// WindowID is the native id of the window owning the field.
func (d *FieldDelegate) WindowID() string { return d.windowID }

// Region is the bar the field sits in.
func (d *FieldDelegate) Region() entity.ChromeRegion { return d.region }

func (d *FieldDelegate) TextChanged(text string) {
	d.handler.HandleFieldEvent(port.FieldEvent{WindowID: d.windowID, Region: d.region, Kind: port.FieldChanged, Text: text})
}

func (d *FieldDelegate) TextSubmitted(text string) {
	d.handler.HandleFieldEvent(port.FieldEvent{WindowID: d.windowID, Region: d.region, Kind: port.FieldSubmitted, Text: text})
}

var (
	_ port.ChromeBuilder = (*ChromeBuilder)(nil)
	_ port.EditDelegate  = (*FieldDelegate)(nil)
)
