// Package main provides the craftshelf command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/qyinm/craftshelf/cli"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New(version).Run(ctx, os.Args)
}
