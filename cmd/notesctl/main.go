// Package main runs the notesctl command line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/tenantnotes/internal/cmd/notesctl"
	"github.com/louisbranch/tenantnotes/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := notesctl.Execute(ctx, os.Args[1:]); err != nil {
		config.Exitf("notesctl: %v", err)
	}
}
