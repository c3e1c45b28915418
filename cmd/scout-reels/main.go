// Command scout-reels is the terminal reel dashboard: one company per screen,
// advanced by key, wheel or click.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scout/internal/app"
	"scout/internal/config"
	"scout/internal/tui"
)

func main() {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// The alternate screen owns stdout, so log to the file only.
	logger, closeLog, err := app.OpenLog("scout-reels", cfg.Logging, nil)
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

	eng, err := svc.NewEngine(cfg.User)
	if err != nil {
		log.Fatalf("creating reel engine: %v", err)
	}

	loc := cfg.Reel.Location()
	m := tui.New(tui.Options{
		Engine:    eng,
		Loader:    svc.Loader,
		Favorites: svc.Favorites,
		User:      cfg.User,
		WheelStep: cfg.Reel.WheelStep,
		Log:       logger,
		Now:       func() time.Time { return time.Now().In(loc) },
	})
	defer m.Close()

	logger.Info("scout-reels starting", "user", cfg.User, "position", eng.Position(), "seed", eng.Seed())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "scout-reels: %v\n", err)
		os.Exit(1)
	}
	logger.Info("scout-reels stopped", "position", eng.Position())
}
