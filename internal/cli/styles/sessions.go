package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/paneshell/internal/domain/entity"
)

// SessionsRenderer renders the output of the sessions subcommands.
type SessionsRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewSessionsRenderer(theme *Theme) *SessionsRenderer {
	return &SessionsRenderer{theme: theme, now: time.Now}
}

func (r *SessionsRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved sessions found.")
}

func (r *SessionsRenderer) RenderList(items []entity.SessionInfo) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", r.theme.Highlight.Render(IconStack), r.theme.Title.Render("Sessions")))
	for _, info := range items {
		b.WriteString(fmt.Sprintf("  %s  %s %s  %s\n",
			r.theme.Highlight.Render(string(info.SessionID)),
			r.theme.BadgeMuted.Render(plural(info.WindowCount, "window")),
			r.theme.BadgeMuted.Render(plural(info.PaneCount, "pane")),
			r.theme.Subtle.Render(relativeTime(r.now(), info.UpdatedAt)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *SessionsRenderer) RenderRestored(sessionID entity.SessionID) string {
	return fmt.Sprintf("%s Restored session %s",
		r.theme.SuccessStyle.Render(IconRestore),
		r.theme.Highlight.Render(string(sessionID)),
	)
}

func (r *SessionsRenderer) RenderDeleted(sessionID entity.SessionID) string {
	return fmt.Sprintf("%s Session %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(sessionID)),
	)
}

func (r *SessionsRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02 15:04")
	}
}
