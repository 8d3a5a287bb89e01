package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/config"
	"github.com/qyinm/craftshelf/logging"
	"github.com/qyinm/craftshelf/mcpsrv"
)

var version = "dev"

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
	store := catalog.NewStore(appCfg.Source())
	server := mcpsrv.NewServer(store, version, &mcpsrv.ServerOptions{
		EnableOrders:  cfg.EnableOrders,
		Composer:      appCfg.Composer(),
		DefaultFilter: appCfg.DefaultFilter(),
		Currency:      appCfg.Display.Currency,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mcpsrv.Routes(server, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("craftshelf-mcp listening",
		zap.String("addr", httpServer.Addr),
		zap.Bool("orders", cfg.EnableOrders),
		zap.Bool("auth", cfg.APIKey != ""),
	)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}
