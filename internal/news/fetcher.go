package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"scout/internal/domain"
	"scout/internal/store"
)

// DefaultTTL is how long a symbol's cached news is served before refetching.
const DefaultTTL = time.Hour

// Fetcher merges several sources behind a per-symbol cache.
type Fetcher struct {
	sources  []Source
	cache    store.NewsStore
	ttl      time.Duration
	lookback time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewFetcher creates a Fetcher. cache may be nil.
func NewFetcher(sources []Source, cache store.NewsStore, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		sources:  sources,
		cache:    cache,
		ttl:      DefaultTTL,
		lookback: 7 * 24 * time.Hour,
		log:      log.With("component", "news"),
		now:      time.Now,
	}
}

// Fetch returns up to limit articles for symbol, newest first. Fresh cache
// entries are returned without touching the network. Sources are queried in
// parallel; the call fails only when every source fails and nothing is
// cached.
func (f *Fetcher) Fetch(ctx context.Context, symbol, company string, limit int) ([]domain.Article, error) {
	symbol = store.NormalizeSymbol(symbol)
	now := f.now()

	var cached []domain.Article
	var fetchedAt time.Time
	if f.cache != nil {
		var err error
		cached, fetchedAt, err = f.cache.ReadNews(ctx, symbol)
		if err != nil {
			f.log.Warn("reading news cache", "symbol", symbol, "error", err)
		}
		if !fetchedAt.IsZero() && now.Sub(fetchedAt) < f.ttl {
			return trim(cached, limit), nil
		}
	}

	start := now.Add(-f.lookback)
	results := make([][]domain.Article, len(f.sources))
	errs := make([]error, len(f.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		g.Go(func() error {
			arts, err := src.Fetch(gctx, symbol, company, start, now)
			if err != nil {
				f.log.Debug("news source failed", "source", src.Name(), "symbol", symbol, "error", err)
				errs[i] = fmt.Errorf("%s: %w", src.Name(), err)
				return nil
			}
			results[i] = arts
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(f.sources) == 0 || failed == len(f.sources) {
		if len(cached) > 0 {
			f.log.Warn("all news sources failed, serving stale cache", "symbol", symbol)
			return trim(cached, limit), nil
		}
		if len(f.sources) == 0 {
			return nil, errors.New("news: no sources configured")
		}
		return nil, fmt.Errorf("news for %s: %w", symbol, errors.Join(errs...))
	}

	merged := Merge(results...)
	if f.cache != nil {
		if err := f.cache.WriteNews(ctx, symbol, now, merged); err != nil {
			f.log.Warn("writing news cache", "symbol", symbol, "error", err)
		}
	}
	return trim(merged, limit), nil
}

// Merge combines article lists, drops repeated headlines and sorts newest
// first.
func Merge(lists ...[]domain.Article) []domain.Article {
	seen := make(map[string]bool)
	var out []domain.Article
	for _, l := range lists {
		for _, a := range l {
			key := strings.ToLower(strings.Join(strings.Fields(a.Headline), " "))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}

func trim(a []domain.Article, limit int) []domain.Article {
	if limit > 0 && len(a) > limit {
		return a[:limit]
	}
	return a
}
