package store

import (
	"context"

	"lightnovel-reader/model"
)

// Theme holds the dark/light preference. Until the user picks one, it
// follows the ambient preference of the platform.
type Theme struct {
	slot *slot[model.Theme]
}

// NewTheme loads the stored preference; ambient is consulted only when none
// has been stored yet and may be nil.
func NewTheme(ctx context.Context, storage Storage, ambient func() bool) *Theme {
	t := &Theme{slot: newSlot(storage, ThemeKey, model.ThemeLight)}
	if t.slot.load(ctx) {
		if t.slot.value != model.ThemeDark {
			t.slot.value = model.ThemeLight
		}
		return t
	}
	if ambient != nil {
		t.slot.value = model.ThemeFor(ambient())
	}
	return t
}

func (t *Theme) Get() model.Theme {
	return t.slot.get()
}

func (t *Theme) IsDark() bool {
	return t.slot.get() == model.ThemeDark
}

// Toggle flips the theme and returns whether it is now dark.
func (t *Theme) Toggle(ctx context.Context) bool {
	next := t.slot.mutate(ctx, func(current model.Theme) (model.Theme, bool) {
		return model.ThemeFor(current != model.ThemeDark), true
	})
	return next == model.ThemeDark
}

func (t *Theme) Set(ctx context.Context, dark bool) bool {
	next := t.slot.mutate(ctx, func(current model.Theme) (model.Theme, bool) {
		// persist even when unchanged so an ambient default becomes explicit
		return model.ThemeFor(dark), true
	})
	return next == model.ThemeDark
}
