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
	"github.com/qyinm/craftshelf/faq"
	"github.com/qyinm/craftshelf/logging"
	"github.com/qyinm/craftshelf/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CRAFTSHELF_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(3)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(3)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := web.New(web.Options{
		Store:         catalog.NewStore(cfg.Source()),
		DefaultFilter: cfg.DefaultFilter(),
		Render:        cfg.RenderOptions(),
		Composer:      cfg.Composer(),
		FAQ:           faq.Default(),
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("storefront setup failed", zap.Error(err))
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8081"
	}
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
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

	logger.Info("craftshelf-web listening", zap.String("addr", httpServer.Addr))
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}
