package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/config"
	"github.com/qyinm/craftshelf/logging"
	"github.com/qyinm/craftshelf/mcpsrv"
)

var version = "dev"

// Logs go to stderr or the configured file; stdout carries the protocol.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, err := config.Load(os.Getenv("CRAFTSHELF_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(3)
	}
	logger, err := logging.New(appCfg.Log.Level, appCfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(3)
	}
	defer func() { _ = logger.Sync() }()

	cfg := mcpsrv.LoadConfig()
	server := mcpsrv.NewServer(catalog.NewStore(appCfg.Source()), version, &mcpsrv.ServerOptions{
		EnableOrders:  cfg.EnableOrders,
		Composer:      appCfg.Composer(),
		DefaultFilter: appCfg.DefaultFilter(),
		Currency:      appCfg.Display.Currency,
		Logger:        logger,
	})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal("stdio mcp server failed", zap.Error(err))
	}
}
