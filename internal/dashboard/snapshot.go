package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"scout/internal/catalog"
	"scout/internal/domain"
)

// BarsFetcher returns daily bars for a symbol.
type BarsFetcher interface {
	Bars(ctx context.Context, symbol string) ([]domain.Bar, error)
}

// Fundamentals returns earnings, metrics and the company profile.
type Fundamentals interface {
	Earnings(ctx context.Context, symbol string) ([]domain.Earning, error)
	Metrics(ctx context.Context, symbol string) (domain.Metrics, error)
	Profile(ctx context.Context, symbol string) (domain.Profile, error)
}

// NewsFetcher returns recent articles for a symbol.
type NewsFetcher interface {
	Fetch(ctx context.Context, symbol, company string, limit int) ([]domain.Article, error)
}

// SentimentAnalyzer scores headlines.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, company string, headlines []string) (domain.Sentiment, error)
}

// Snapshot is everything the dashboard shows for one catalog entry. A section
// that failed to load is left empty and its error recorded in Errors.
type Snapshot struct {
	Entry     catalog.Entry     `json:"entry"`
	LoadedAt  time.Time         `json:"loaded_at"`
	Bars      []domain.Bar      `json:"bars,omitempty"`
	Stats     PriceStats        `json:"stats"`
	Earnings  []domain.Earning  `json:"earnings,omitempty"`
	Metrics   *domain.Metrics   `json:"metrics,omitempty"`
	Profile   *domain.Profile   `json:"profile,omitempty"`
	News      []domain.Article  `json:"news,omitempty"`
	Sentiment *domain.Sentiment `json:"sentiment,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Failed reports whether section could not be loaded.
func (s *Snapshot) Failed(section string) bool {
	_, ok := s.Errors[section]
	return ok
}

func (s *Snapshot) fail(section string, err error) {
	if s.Errors == nil {
		s.Errors = make(map[string]string)
	}
	s.Errors[section] = err.Error()
}

// Section names used as keys in Snapshot.Errors.
const (
	SectionBars      = "bars"
	SectionEarnings  = "earnings"
	SectionMetrics   = "metrics"
	SectionProfile   = "profile"
	SectionNews      = "news"
	SectionSentiment = "sentiment"
)

// Loader fans out to the data providers. Any provider may be nil; its section
// is then simply absent.
type Loader struct {
	Bars         BarsFetcher
	Fundamentals Fundamentals
	News         NewsFetcher
	Sentiment    SentimentAnalyzer
	NewsLimit    int
	Timeout      time.Duration
	Log          *slog.Logger

	now func() time.Time
}

// Load fetches every section for entry concurrently. It never returns an
// error for a failed provider; only context cancellation aborts the load.
func (l *Loader) Load(ctx context.Context, entry catalog.Entry) (*Snapshot, error) {
	log := l.Log
	if log == nil {
		log = slog.Default()
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	snap := &Snapshot{Entry: entry, LoadedAt: now()}
	var (
		bars     []domain.Bar
		earnings []domain.Earning
		metrics  domain.Metrics
		profile  domain.Profile
		articles []domain.Article
		errs     [5]error
	)

	// Each goroutine writes only its own variables; errors are collected
	// after Wait so a failed section never cancels its siblings.
	g, gctx := errgroup.WithContext(ctx)
	if l.Bars != nil {
		g.Go(func() error {
			bars, errs[0] = l.Bars.Bars(gctx, entry.Symbol)
			return nil
		})
	}
	if l.Fundamentals != nil {
		g.Go(func() error {
			earnings, errs[1] = l.Fundamentals.Earnings(gctx, entry.Symbol)
			return nil
		})
		g.Go(func() error {
			metrics, errs[2] = l.Fundamentals.Metrics(gctx, entry.Symbol)
			return nil
		})
		g.Go(func() error {
			profile, errs[3] = l.Fundamentals.Profile(gctx, entry.Symbol)
			return nil
		})
	}
	if l.News != nil {
		limit := l.NewsLimit
		if limit <= 0 {
			limit = 8
		}
		g.Go(func() error {
			articles, errs[4] = l.News.Fetch(gctx, entry.Symbol, entry.Name, limit)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return nil, err
	}

	sections := [5]string{SectionBars, SectionEarnings, SectionMetrics, SectionProfile, SectionNews}
	for i, err := range errs {
		if err != nil {
			snap.fail(sections[i], err)
			log.Warn("snapshot section failed", "symbol", entry.Symbol, "section", sections[i], "error", err)
		}
	}
	if errs[0] == nil && l.Bars != nil {
		snap.Bars = bars
		snap.Stats = AggregateBars(bars)
	}
	if errs[1] == nil && l.Fundamentals != nil {
		snap.Earnings = earnings
	}
	if errs[2] == nil && l.Fundamentals != nil {
		snap.Metrics = &metrics
	}
	if errs[3] == nil && l.Fundamentals != nil {
		snap.Profile = &profile
	}
	if errs[4] == nil && l.News != nil {
		snap.News = articles
	}

	// Sentiment depends on the headlines, so it runs after the fan-out.
	if l.Sentiment != nil && len(snap.News) > 0 && ctx.Err() == nil {
		headlines := make([]string, 0, len(snap.News))
		for _, a := range snap.News {
			headlines = append(headlines, a.Headline)
		}
		s, err := l.Sentiment.Analyze(ctx, entry.Name, headlines)
		if err != nil {
			snap.fail(SectionSentiment, err)
			log.Warn("sentiment failed", "symbol", entry.Symbol, "error", err)
		} else {
			snap.Sentiment = &s
		}
	}

	log.Debug("snapshot loaded", "symbol", entry.Symbol, "failed", len(snap.Errors),
		"elapsed", now().Sub(snap.LoadedAt))
	return snap, nil
}
