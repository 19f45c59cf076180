package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/paneshell/internal/domain/entity"
)

// TreeRenderer prints the windows of a session with their panes.
type TreeRenderer struct {
	theme *Theme
}

func NewTreeRenderer(theme *Theme) *TreeRenderer {
	return &TreeRenderer{theme: theme}
}

// Render draws one block per window: a header with index, title and state,
// then one line per pane. The visible pane is marked with "*".
func (r *TreeRenderer) Render(state *entity.SessionState) string {
	if state == nil || len(state.Windows) == 0 {
		return r.theme.Subtle.Render("No windows.")
	}

	var b strings.Builder
	for i, w := range state.Windows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.renderWindow(w))
	}
	return b.String()
}

func (r *TreeRenderer) renderWindow(w entity.WindowSnapshot) string {
	var b strings.Builder

	stateStyle := r.theme.BadgeMuted
	if w.State() == entity.WindowFocused {
		stateStyle = r.theme.Badge
	}
	fmt.Fprintf(&b, "%s %s %s  %s\n",
		r.theme.Highlight.Render(IconWindow),
		r.theme.Title.Render(fmt.Sprintf("[%d] %s", w.Index, w.Title)),
		stateStyle.Render(w.State().String()),
		r.theme.Subtle.Render(fmt.Sprintf("%gx%g", w.Frame.Size.Width, w.Frame.Size.Height)),
	)
	if w.AddressText != "" {
		fmt.Fprintf(&b, "  %s %s\n", r.theme.Subtle.Render(IconGlobe), r.theme.Normal.Render(w.AddressText))
	}

	if len(w.Panes) == 0 {
		b.WriteString("  " + r.theme.Subtle.Render("(no panes)") + "\n")
		return b.String()
	}
	for p, pane := range w.Panes {
		marker, style := " ", r.theme.Subtle
		if pane.Visible {
			marker, style = "*", r.theme.Highlight
		}
		uri := pane.URI
		if uri == "" {
			uri = "about:blank"
		}
		fmt.Fprintf(&b, "  %s %s %s\n", style.Render(marker), r.theme.Subtle.Render(fmt.Sprintf("%d", p)), style.Render(uri))
	}
	return b.String()
}
