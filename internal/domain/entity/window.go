package entity

// WindowState is the lifecycle state of a window as seen by the chrome.
// A closed window leaves the registry and reads as WindowAbsent again.
type WindowState int

const (
	WindowAbsent   WindowState = iota // Not yet created
	WindowVisible                     // On screen, not key
	WindowFocused                     // On screen and key
	WindowHidden                      // Ordered out, still alive
)

func (s WindowState) String() string {
	switch s {
	case WindowAbsent:
		return "absent"
	case WindowVisible:
		return "visible"
	case WindowFocused:
		return "focused"
	case WindowHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// StateOf derives the live state of a window from its host flags.
func StateOf(visible, key bool) WindowState {
	switch {
	case !visible:
		return WindowHidden
	case key:
		return WindowFocused
	default:
		return WindowVisible
	}
}
