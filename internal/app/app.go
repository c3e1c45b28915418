// Package app wires configuration into the stores and data providers shared
// by scout-reels and scout-server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"scout/internal/catalog"
	"scout/internal/config"
	"scout/internal/dashboard"
	"scout/internal/market"
	"scout/internal/news"
	"scout/internal/reel"
	"scout/internal/sentiment"
	"scout/internal/store"
)

// snapshotTimeout bounds one dashboard load.
const snapshotTimeout = 20 * time.Second

// Services holds the wired providers. Sentiment is nil when no GenAI key is
// configured.
type Services struct {
	Config    *config.Config
	KV        store.KV
	Favorites store.FavoriteStore
	Parquet   *store.ParquetStore
	Bars      *market.BarProvider
	Finnhub   *market.FinnhubClient
	News      *news.Fetcher
	Sentiment *sentiment.Analyzer
	Loader    *dashboard.Loader

	log     *slog.Logger
	closers []func() error
}

// Open builds every service from cfg. No network calls are made.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Services, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Services{Config: cfg, log: log}

	kv, favs, closer, err := OpenStore(cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	s.KV, s.Favorites = kv, favs
	if closer != nil {
		s.closers = append(s.closers, closer)
	}

	s.Parquet = store.NewParquetStore(cfg.Storage.DataDir)
	s.Bars = market.NewAlpacaBarProvider(cfg.Alpaca, s.Parquet, log)
	s.Finnhub = market.NewFinnhubClient(cfg.Finnhub, log)
	s.News = news.NewFetcher(newsSources(cfg.Alpaca), s.Parquet, log)

	if cfg.GenAI.APIKey != "" {
		s.Sentiment, err = sentiment.NewGenAIAnalyzer(ctx, cfg.GenAI, log)
		if err != nil {
			s.Close()
			return nil, err
		}
	} else {
		log.Info("sentiment disabled", "reason", "no GenAI API key")
	}

	s.Loader = &dashboard.Loader{
		Bars:         s.Bars,
		Fundamentals: s.Finnhub,
		News:         s.News,
		NewsLimit:    cfg.Reel.NewsLimit,
		Timeout:      snapshotTimeout,
		Log:          log,
	}
	if s.Sentiment != nil {
		s.Loader.Sentiment = s.Sentiment
	}
	return s, nil
}

// newsSources lists the feeds to query. Alpaca is included only with
// credentials.
func newsSources(cfg config.Alpaca) []news.Source {
	sources := []news.Source{news.GoogleNews(), news.GlobeNewswire(), &news.StockTwitsSource{}}
	if cfg.APIKey != "" {
		opts := marketdata.ClientOpts{APIKey: cfg.APIKey, APISecret: cfg.APISecret}
		if cfg.DataURL != "" {
			opts.BaseURL = cfg.DataURL
		}
		sources = append([]news.Source{&news.AlpacaSource{Client: marketdata.NewClient(opts)}}, sources...)
	}
	return sources
}

// OpenStore opens the key-value and favorites stores for the configured
// backend. The returned closer may be nil.
func OpenStore(cfg config.Storage, log *slog.Logger) (store.KV, store.FavoriteStore, func() error, error) {
	if log == nil {
		log = slog.Default()
	}
	switch cfg.Backend {
	case "", "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
		db, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return db, db, db.Close, nil
	case "file":
		log.Warn("file backend keeps favorites in memory only")
		return store.NewFileStore(cfg.StatePath, log), store.NewMemoryStore(), nil, nil
	case "memory":
		m := store.NewMemoryStore()
		return m, m, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewEngine builds a reel engine for user over the reel catalog. The caller
// mounts it.
func (s *Services) NewEngine(user string) (*reel.Engine, error) {
	res, err := catalog.NewResolver(catalog.Reels(), 0)
	if err != nil {
		return nil, err
	}
	seq := reel.NewSequencer(s.KV, store.PositionKey(user), s.log)
	return reel.NewEngine(s.Config.Reel.EngineConfig(), seq, res, s.log)
}

// Close releases the stores.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
