package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/paneshell/internal/application/usecase"
	"github.com/bnema/paneshell/internal/domain/entity"
	"github.com/bnema/paneshell/internal/infrastructure/headless"
)

func TestManageWindows_OpenAddsOneWindowWithOneVisiblePane(t *testing.T) {
	h := newHarness(t, nil)

	for n := 1; n <= 3; n++ {
		before := h.windows.Count()
		w := h.open(t)

		assert.Equal(t, before+1, h.windows.Count())
		assert.Equal(t, n-1, w)
		assert.Equal(t, []bool{true}, h.panes.Visibility(w))
		assert.Equal(t, "", h.fields.AddressText(w))
		assert.Equal(t, "", h.fields.CommandText(w))
	}
}

func TestManageWindows_OpenUsesDefaults(t *testing.T) {
	h := newHarness(t, nil)
	w := h.open(t)

	assert.Equal(t, "paneshell", h.windows.Title(w))
	window, ok := h.registry.Resolve(w)
	require.True(t, ok)
	assert.Equal(t, entity.Size{Width: 700, Height: 700}, window.Frame().Size)
	assert.Equal(t, entity.Point{X: 610, Y: 190}, window.Frame().Origin, "centered on the default 1920x1080 screen")
	assert.Equal(t, entity.WindowFocused, h.windows.State(w))
	assert.Equal(t, w, h.windows.FocusedIndex())

	pane, ok := h.panes.At(w, 0)
	require.True(t, ok)
	assert.Empty(t, pane.URI())
}

func TestManageWindows_OpenFailsWhenServerIsDown(t *testing.T) {
	h := newHarness(t, nil)
	h.server.Shutdown()

	opened, err := h.windows.Open(h.ctx)
	assert.Nil(t, opened)
	assert.ErrorIs(t, err, headless.ErrServerClosed)
	assert.Equal(t, 0, h.windows.Count())
}

func TestManageWindows_SetTitleRoundTrips(t *testing.T) {
	h := newHarness(t, nil)
	w := h.open(t)

	for _, title := range []string{"X", "", "日本語のタイトル", "emoji 🐱 title"} {
		h.windows.SetTitle(w, title)
		assert.Equal(t, title, h.windows.Title(w))
	}
}

func TestManageWindows_ResizeKeepsOrigin(t *testing.T) {
	h := newHarness(t, nil)
	w := h.open(t)
	window, _ := h.registry.Resolve(w)
	origin := window.Frame().Origin

	h.windows.Resize(h.ctx, w, 1024, 333.5)

	assert.Equal(t, origin, window.Frame().Origin)
	assert.Equal(t, entity.Size{Width: 1024, Height: 333.5}, window.Frame().Size)
}

func TestManageWindows_FocusAndToggle(t *testing.T) {
	h := newHarness(t, nil)
	first := h.open(t)
	second := h.open(t)
	require.Equal(t, second, h.windows.FocusedIndex())

	h.windows.Focus(h.ctx, first)
	assert.Equal(t, first, h.windows.FocusedIndex())
	assert.Equal(t, entity.WindowVisible, h.windows.State(second))

	h.windows.Toggle(h.ctx, first, false)
	assert.Equal(t, entity.WindowHidden, h.windows.State(first))
	assert.Equal(t, second, h.windows.FocusedIndex(), "key passes to the remaining window")

	h.windows.Toggle(h.ctx, first, true)
	assert.Equal(t, entity.WindowFocused, h.windows.State(first))
}

func TestManageWindows_FocusedIndexDefaultsToZero(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, 0, h.windows.FocusedIndex())

	w := h.open(t)
	h.windows.Toggle(h.ctx, w, false)
	assert.Equal(t, 0, h.windows.FocusedIndex())
}

func TestManageWindows_CloseSingleWindowThenUseStaleIndex(t *testing.T) {
	h := newHarness(t, nil)
	w := h.open(t)

	h.windows.Close(h.ctx, w)
	assert.Equal(t, 0, h.windows.Count())

	h.windows.Focus(h.ctx, 0)
	assert.Equal(t, "", h.windows.Title(0))
	assert.Equal(t, entity.WindowAbsent, h.windows.State(0))
	assert.Equal(t, 0, h.windows.Count())
}

func TestManageWindows_CloseShiftsLaterWindowsDown(t *testing.T) {
	h := newHarness(t, nil)
	h.open(t)
	h.open(t)
	h.windows.SetTitle(1, "second")

	h.windows.Close(h.ctx, 0)

	assert.Equal(t, 1, h.windows.Count())
	assert.Equal(t, "second", h.windows.Title(0))
}

func TestManageWindows_UnresolvedIndexIsNoop(t *testing.T) {
	h := newHarness(t, nil)
	w := h.open(t)
	window, _ := h.registry.Resolve(w)
	frame := window.Frame()

	for _, idx := range []int{-1, 1, 42} {
		h.windows.SetTitle(idx, "nope")
		h.windows.Resize(h.ctx, idx, 1, 1)
		h.windows.Toggle(h.ctx, idx, false)
		h.windows.Focus(h.ctx, idx)
		h.windows.Close(h.ctx, idx)
		assert.Equal(t, "", h.windows.Title(idx))
		assert.Equal(t, entity.WindowAbsent, h.windows.State(idx))
	}

	assert.Equal(t, 1, h.windows.Count())
	assert.Equal(t, "paneshell", h.windows.Title(w))
	assert.Equal(t, frame, window.Frame())
	assert.Equal(t, entity.WindowFocused, h.windows.State(w))
}

func TestManageWindows_SetDefaultsAppliesToLaterWindows(t *testing.T) {
	h := newHarness(t, nil)
	first := h.open(t)

	h.windows.SetDefaults(usecase.WindowDefaults{Title: "small", Width: 300, Height: 200})
	second := h.open(t)

	assert.Equal(t, "paneshell", h.windows.Title(first))
	assert.Equal(t, "small", h.windows.Title(second))
	window, ok := h.registry.Resolve(second)
	require.True(t, ok)
	assert.Equal(t, entity.Size{Width: 300, Height: 200}, window.Frame().Size)
	assert.Equal(t, "small", h.windows.Defaults().Title)
}

