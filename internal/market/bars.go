// Package market provides the price and fundamentals providers behind the
// company dashboards: daily bars from Alpaca with a Parquet cache in front,
// and earnings, metrics and profile data from Finnhub.
package market

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"scout/internal/config"
	"scout/internal/domain"
	"scout/internal/store"
	"scout/internal/util"
)

// BarSource is the subset of the Alpaca market data client used here.
type BarSource interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// BarProvider serves recent daily bars, reading through a BarStore cache.
type BarProvider struct {
	src     BarSource
	cache   store.BarStore
	cal     *util.TradingCalendar
	days    int
	feed    string
	log     *slog.Logger
	now     func() time.Time
	backoff time.Duration
}

// NewAlpacaBarProvider creates a BarProvider backed by the Alpaca market data
// API. cache may be nil.
func NewAlpacaBarProvider(cfg config.Alpaca, cache store.BarStore, log *slog.Logger) *BarProvider {
	opts := marketdata.ClientOpts{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	}
	if cfg.DataURL != "" {
		opts.BaseURL = cfg.DataURL
	}
	return NewBarProvider(marketdata.NewClient(opts), cache, cfg.BarDays, cfg.Feed, log)
}

// NewBarProvider creates a BarProvider over an arbitrary source.
func NewBarProvider(src BarSource, cache store.BarStore, days int, feed string, log *slog.Logger) *BarProvider {
	if days <= 0 {
		days = 90
	}
	if log == nil {
		log = slog.Default()
	}
	return &BarProvider{
		src:     src,
		cache:   cache,
		cal:     util.NewTradingCalendar(),
		days:    days,
		feed:    feed,
		log:     log.With("provider", "alpaca-bars"),
		now:     time.Now,
		backoff: 500 * time.Millisecond,
	}
}

// Bars returns daily bars for symbol covering the configured number of
// trading days, oldest first. Cached bars are served when they already reach
// the last completed session; a failed fetch falls back to stale cache.
func (p *BarProvider) Bars(ctx context.Context, symbol string) ([]domain.Bar, error) {
	symbol = store.NormalizeSymbol(symbol)
	now := p.now()
	start := p.cal.TradingDaysBack(now, p.days)
	freshAfter := p.cal.TradingDaysBack(now, 1)

	var cached []domain.Bar
	if p.cache != nil {
		var err error
		cached, err = p.cache.ReadBars(ctx, symbol, start, now)
		if err != nil {
			p.log.Warn("reading bar cache", "symbol", symbol, "error", err)
		}
		if n := len(cached); n > 0 && !cached[n-1].Timestamp.Before(freshAfter) {
			return cached, nil
		}
	}

	var fetched []domain.Bar
	err := util.Retry(ctx, 3, p.backoff, func() error {
		if ctx.Err() != nil {
			return util.Permanent(ctx.Err())
		}
		raw, err := p.src.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Start:      start,
			End:        now.Add(-15 * time.Minute), // free feeds reject the most recent 15 minutes
			Feed:       marketdata.Feed(p.feed),
			Adjustment: marketdata.Split,
		})
		if err != nil {
			return err
		}
		fetched = convertBars(symbol, raw)
		return nil
	})
	if err != nil {
		if len(cached) > 0 {
			p.log.Warn("fetching bars, serving stale cache", "symbol", symbol, "cached", len(cached), "error", err)
			return cached, nil
		}
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}

	if p.cache != nil && len(fetched) > 0 {
		if err := p.cache.WriteBars(ctx, fetched); err != nil {
			p.log.Warn("writing bar cache", "symbol", symbol, "error", err)
		}
	}
	return fetched, nil
}

func convertBars(symbol string, raw []marketdata.Bar) []domain.Bar {
	bars := make([]domain.Bar, 0, len(raw))
	for _, ab := range raw {
		bars = append(bars, domain.Bar{
			Symbol:     strings.ToUpper(symbol),
			Timestamp:  ab.Timestamp.UTC(),
			Open:       ab.Open,
			High:       ab.High,
			Low:        ab.Low,
			Close:      ab.Close,
			Volume:     int64(ab.Volume),
			TradeCount: int64(ab.TradeCount),
			VWAP:       ab.VWAP,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	return bars
}
