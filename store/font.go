package store

import (
	"context"

	"lightnovel-reader/model"
)

const lineHeightStep = 0.1

// FontSettings holds the reader's font preferences as one record.
type FontSettings struct {
	slot *slot[model.FontSettings]
}

func NewFontSettings(ctx context.Context, storage Storage) *FontSettings {
	f := &FontSettings{slot: newSlot(storage, FontKey, model.DefaultFontSettings())}
	if f.slot.load(ctx) {
		f.slot.value = f.slot.value.Clamp()
	}
	return f
}

func (f *FontSettings) Get() model.FontSettings {
	return f.slot.get()
}

// Set stores settings after clamping them into range.
func (f *FontSettings) Set(ctx context.Context, settings model.FontSettings) model.FontSettings {
	return f.update(ctx, func(model.FontSettings) model.FontSettings { return settings })
}

func (f *FontSettings) IncreaseFontSize(ctx context.Context) model.FontSettings {
	return f.update(ctx, func(s model.FontSettings) model.FontSettings {
		s.FontSize++
		return s
	})
}

func (f *FontSettings) DecreaseFontSize(ctx context.Context) model.FontSettings {
	return f.update(ctx, func(s model.FontSettings) model.FontSettings {
		s.FontSize--
		return s
	})
}

func (f *FontSettings) IncreaseLineHeight(ctx context.Context) model.FontSettings {
	return f.update(ctx, func(s model.FontSettings) model.FontSettings {
		s.LineHeight += lineHeightStep
		return s
	})
}

func (f *FontSettings) DecreaseLineHeight(ctx context.Context) model.FontSettings {
	return f.update(ctx, func(s model.FontSettings) model.FontSettings {
		s.LineHeight -= lineHeightStep
		return s
	})
}

func (f *FontSettings) ToggleFontFamily(ctx context.Context) model.FontSettings {
	return f.update(ctx, func(s model.FontSettings) model.FontSettings {
		if s.FontFamily == model.FontSerif {
			s.FontFamily = model.FontSansSerif
		} else {
			s.FontFamily = model.FontSerif
		}
		return s
	})
}

func (f *FontSettings) update(ctx context.Context, fn func(model.FontSettings) model.FontSettings) model.FontSettings {
	return f.slot.mutate(ctx, func(current model.FontSettings) (model.FontSettings, bool) {
		next := fn(current).Clamp()
		return next, next != current
	})
}
