// Command scout-server serves the reel catalog, dashboards, news, sentiment
// and favorites over HTTP.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scout/internal/app"
	"scout/internal/catalog"
	"scout/internal/config"
	"scout/internal/httpapi"
)

func main() {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, closeLog, err := app.OpenLog("scout-server", cfg.Logging, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, err := app.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("opening services: %v", err)
	}
	defer svc.Close()

	loc := cfg.Reel.Location()
	resolver, err := catalog.NewResolver(catalog.Reels(), catalog.DaySeed(time.Now().In(loc)))
	if err != nil {
		log.Fatalf("building reel order: %v", err)
	}

	opts := httpapi.Options{
		Resolver:  resolver,
		Location:  loc,
		KV:        svc.KV,
		Favorites: svc.Favorites,
		Loader:    svc.Loader,
		News:      svc.News,
		User:      cfg.User,
		NewsLimit: cfg.Reel.NewsLimit,
		Timeout:   cfg.Server.RequestTimeout,
		Limiter:   httpapi.NewRateLimiter(cfg.Server.RateLimitPerMin, cfg.Server.RateBurst, logger),
		Log:       logger,
	}
	if svc.Sentiment != nil {
		opts.Sentiment = svc.Sentiment
	}
	srv, err := httpapi.NewServer(opts)
	if err != nil {
		log.Fatalf("creating server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr(),
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("scout server listening", "addr", httpServer.Addr, "seed", resolver.Seed())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down scout server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
