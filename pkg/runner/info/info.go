package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/config"
	"tableflip.dev/memo/pkg/store"
)

type Info struct {
	Config  *config.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(w, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, config.EnvConfigPath, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	if n.Config.File != "" {
		_, _ = fmt.Fprintln(w, "Config file:", n.Config.File)
	}
	_, _ = fmt.Fprintln(w, "Config.path:", n.Config.BasePath())

	if n.Service == nil || n.Service.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	notes, err := n.Service.Notes(ctx)
	if err != nil {
		return err
	}
	todos, err := n.Service.Todos(ctx)
	if err != nil {
		return err
	}
	th, err := n.Service.Theme(ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Slot"), bold.Sprint("Stored"), bold.Sprint("Value"))
	for _, slot := range store.Slots() {
		value := ""
		switch slot {
		case store.SlotNotes:
			value = fmt.Sprintf("%d notes", len(notes))
		case store.SlotTodos:
			value = fmt.Sprintf("%d tasks", len(todos))
		case store.SlotCategories:
			cats, err := n.Service.Categories(ctx)
			if err != nil {
				return err
			}
			value = fmt.Sprintf("%d categories", len(cats))
		case store.SlotTheme:
			value = string(th)
		}
		tbl.AddRow(string(slot), n.Service.Persistence.Has(slot), value)
	}
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
