package commands

import (
	"os"

	"tableflip.dev/memo/pkg/app"
	"tableflip.dev/memo/pkg/config"
	"tableflip.dev/memo/pkg/logging"
	"tableflip.dev/memo/pkg/store"
)

// loadService wires config, logging and the store into an app.Service.
func loadService() (*app.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	l := logging.New(os.Stderr, opts)

	p, err := store.Load(cfg, store.WithLogger(l))
	if err != nil {
		return nil, nil, err
	}
	svc := app.New(p)
	if th, err := app.ParseTheme(cfg.Theme); err == nil {
		svc.DefaultTheme = th
	}
	return svc, cfg, nil
}
