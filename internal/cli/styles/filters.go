package styles

import (
	"fmt"
	"strings"
	"time"
)

// FilterEntry is one compiled content filter as shown by `filters list`.
type FilterEntry struct {
	ID         string    `json:"identifier"`
	Rules      int       `json:"rules"`
	CompiledAt time.Time `json:"compiled_at"`
}

// FiltersRenderer renders the output of the filters subcommands.
type FiltersRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewFiltersRenderer(theme *Theme) *FiltersRenderer {
	return &FiltersRenderer{theme: theme, now: time.Now}
}

func (r *FiltersRenderer) RenderList(entries []FilterEntry, active string) string {
	if len(entries) == 0 {
		return r.theme.Subtle.Render("No compiled filters found.")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", r.theme.Highlight.Render(IconFilter), r.theme.Title.Render("Content filters")))
	for _, e := range entries {
		marker := " "
		if e.ID == active {
			marker = r.theme.SuccessStyle.Render("*")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
			marker,
			r.theme.Highlight.Render(e.ID),
			r.theme.BadgeMuted.Render(plural(e.Rules, "rule")),
			r.theme.Subtle.Render(relativeTime(r.now(), e.CompiledAt)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCompiled reports a compiled filter; replaced is true when an older
// filter of the same name was overwritten.
func (r *FiltersRenderer) RenderCompiled(entry FilterEntry, replaced bool) string {
	verb := "Compiled"
	if replaced {
		verb = "Recompiled"
	}
	return fmt.Sprintf("%s %s filter %s (%s)",
		r.theme.SuccessStyle.Render(IconCheck),
		verb,
		r.theme.Highlight.Render(entry.ID),
		plural(entry.Rules, "rule"),
	)
}

func (r *FiltersRenderer) RenderRemoved(id string) string {
	return fmt.Sprintf("%s Filter %s removed.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(id),
	)
}
