package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"tableflip.dev/memo/pkg/commands"
	"tableflip.dev/memo/pkg/commands/options"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		if errors.Is(err, options.ErrReported) {
			stop()
			os.Exit(1)
		}
		log.Fatal("error during command execution", "err", err)
	}
}
