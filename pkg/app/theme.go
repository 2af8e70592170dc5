package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/memo/pkg/store"
)

// Theme is the colour scheme used by the terminal UI.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts user input to a Theme.
func ParseTheme(raw string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(raw))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("app: unknown theme %q", raw)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Theme returns the stored theme, or DefaultTheme when none is stored.
func (s *Service) Theme(ctx context.Context) (Theme, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fallback := s.DefaultTheme
	if fallback == "" {
		fallback = ThemeLight
	}
	data, ok, err := s.Persistence.Read(store.SlotTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return fallback, nil
	}
	t, err := ParseTheme(string(data))
	if err != nil {
		s.log.Warn("theme slot unreadable, using default", "value", string(data))
		return fallback, nil
	}
	return t, nil
}

// SetTheme stores t.
func (s *Service) SetTheme(ctx context.Context, t Theme) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Persistence.Write(store.SlotTheme, []byte(t))
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (Theme, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
