package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconWindow  = "" // window
	IconGlobe   = "" // web
	IconCheck   = "" // check
	IconX       = "" // x
	IconRestore = "" // undo
	IconStack   = "" // layer group
	IconFilter  = "" // filter
)
