package entity

// DefaultBarHeight is the fixed height of the address and command bars.
const DefaultBarHeight = 24

// ChromeRegion names one of the three stacked regions of a window's content view.
// Regions are always inserted in declaration order, so each maps to a fixed
// child position.
type ChromeRegion int

const (
	AddressBar    ChromeRegion = iota // Single-line URI field pinned to the top edge
	PaneContainer                     // Holds the ordered panes, fills the middle
	CommandBar                        // Single-line command field pinned to the bottom edge
)

// ChromeRegions lists every region in insertion order.
func ChromeRegions() []ChromeRegion {
	return []ChromeRegion{AddressBar, PaneContainer, CommandBar}
}

// Position returns the child index the region occupies in the content view.
func (r ChromeRegion) Position() int {
	return int(r)
}

// IsTextField reports whether the region is one of the two text bars.
func (r ChromeRegion) IsTextField() bool {
	return r == AddressBar || r == CommandBar
}

// Valid reports whether r is a known region.
func (r ChromeRegion) Valid() bool {
	return r >= AddressBar && r <= CommandBar
}

func (r ChromeRegion) String() string {
	switch r {
	case AddressBar:
		return "address_bar"
	case PaneContainer:
		return "pane_container"
	case CommandBar:
		return "command_bar"
	default:
		return "unknown"
	}
}

// ParseChromeRegion maps a bar name used on the command line to a region.
func ParseChromeRegion(name string) (ChromeRegion, bool) {
	switch name {
	case "address", "address_bar", "addr":
		return AddressBar, true
	case "command", "command_bar", "cmd":
		return CommandBar, true
	case "container", "pane_container":
		return PaneContainer, true
	default:
		return 0, false
	}
}

// Edge is a layout attribute a constraint binds.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}
