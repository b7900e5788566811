// Package main is the entry point for the listbot CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"listbot/internal/cli"
	"listbot/internal/commands"
	"listbot/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, store.Load)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
