package state

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

// Theme is the color theme of the user interface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(token string) (Theme, error) {
	switch Theme(token) {
	case ThemeLight, ThemeDark:
		return Theme(token), nil
	default:
		return "", fmt.Errorf("invalid theme %q: must be light or dark", token)
	}
}

// Preferences holds the search direction and the theme.
type Preferences struct {
	direction *Cell[krdict.Direction]
	theme     *Cell[Theme]
}

func NewPreferences(store Store) *Preferences {
	return &Preferences{
		direction: NewCell(store, KeyDirection, krdict.KoreanToFrench),
		theme:     NewCell(store, KeyTheme, ThemeLight),
	}
}

func (p *Preferences) Direction(ctx context.Context) (krdict.Direction, error) {
	return p.direction.Get(ctx)
}

func (p *Preferences) SetDirection(ctx context.Context, direction krdict.Direction) error {
	return p.direction.Set(ctx, direction)
}

func (p *Preferences) Theme(ctx context.Context) (Theme, error) {
	return p.theme.Get(ctx)
}

func (p *Preferences) SetTheme(ctx context.Context, theme Theme) error {
	return p.theme.Set(ctx, theme)
}

// ToggleTheme switches between the light and dark themes and returns the new theme.
func (p *Preferences) ToggleTheme(ctx context.Context) (Theme, error) {
	return p.theme.Update(ctx, func(current Theme) Theme {
		if current == ThemeDark {
			return ThemeLight
		}
		return ThemeDark
	})
}
