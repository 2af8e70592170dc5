// Package theme shows or changes the stored UI theme.
package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/memo/pkg/app"
)

// Toggle is the argument that flips the current theme.
const Toggle = "toggle"

type Theme struct {
	Service *app.Service
	// Set is light, dark or toggle. Empty prints the current theme.
	Set string
	Out io.Writer
}

func (n *Theme) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("theme: no service")
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	var (
		t   app.Theme
		err error
	)
	switch set := strings.ToLower(strings.TrimSpace(n.Set)); set {
	case "":
		t, err = n.Service.Theme(ctx)
	case Toggle:
		t, err = n.Service.ToggleTheme(ctx)
	default:
		t, err = app.ParseTheme(set)
		if err == nil {
			err = n.Service.SetTheme(ctx, t)
		}
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, t)
	return nil
}
