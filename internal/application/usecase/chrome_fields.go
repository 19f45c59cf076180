package usecase

import (
	"github.com/bnema/paneshell/internal/application/port"
	"github.com/bnema/paneshell/internal/domain/entity"
)

// ChromeFieldsUseCase reads and writes the address and command bars.
type ChromeFieldsUseCase struct {
	registry *WindowRegistry
}

// NewChromeFieldsUseCase creates a new chrome field accessor.
func NewChromeFieldsUseCase(registry *WindowRegistry) *ChromeFieldsUseCase {
	return &ChromeFieldsUseCase{registry: registry}
}

func (uc *ChromeFieldsUseCase) field(windowIndex int, region entity.ChromeRegion) (port.TextField, bool) {
	if !region.IsTextField() {
		return nil, false
	}
	window, ok := uc.registry.Resolve(windowIndex)
	if !ok {
		return nil, false
	}
	view, ok := regionView(window, region)
	if !ok {
		return nil, false
	}
	field, ok := view.(port.TextField)
	return field, ok
}

// Text returns the bar's text, or "" when the field cannot be resolved.
func (uc *ChromeFieldsUseCase) Text(windowIndex int, region entity.ChromeRegion) string {
	field, ok := uc.field(windowIndex, region)
	if !ok {
		return ""
	}
	return field.Text()
}

// SetText replaces the bar's text. Unresolved fields are ignored.
func (uc *ChromeFieldsUseCase) SetText(windowIndex int, region entity.ChromeRegion, value string) {
	field, ok := uc.field(windowIndex, region)
	if !ok {
		return
	}
	field.SetText(value)
}

// AddressText is Text for the address bar.
func (uc *ChromeFieldsUseCase) AddressText(windowIndex int) string {
	return uc.Text(windowIndex, entity.AddressBar)
}

// SetAddressText is SetText for the address bar.
func (uc *ChromeFieldsUseCase) SetAddressText(windowIndex int, value string) {
	uc.SetText(windowIndex, entity.AddressBar, value)
}

// CommandText is Text for the command bar.
func (uc *ChromeFieldsUseCase) CommandText(windowIndex int) string {
	return uc.Text(windowIndex, entity.CommandBar)
}

// SetCommandText is SetText for the command bar.
func (uc *ChromeFieldsUseCase) SetCommandText(windowIndex int, value string) {
	uc.SetText(windowIndex, entity.CommandBar, value)
}
