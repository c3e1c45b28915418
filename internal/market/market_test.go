package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/config"
	"scout/internal/store"
	"scout/internal/util"
)

type fakeBars struct {
	calls atomic.Int32
	bars  []marketdata.Bar
	err   error
	last  marketdata.GetBarsRequest
}

func (f *fakeBars) GetBars(_ string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.calls.Add(1)
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}

// Wednesday 2025-03-19 18:00 ET.
var wed = time.Date(2025, 3, 19, 18, 0, 0, 0, util.NewYork)

func dailyBar(day int, close float64) marketdata.Bar {
	return marketdata.Bar{
		Timestamp: time.Date(2025, 3, day, 4, 0, 0, 0, time.UTC),
		Open:      close - 1,
		High:      close + 1,
		Low:       close - 2,
		Close:     close,
		Volume:    1000,
	}
}

func newProvider(src BarSource, cache store.BarStore) *BarProvider {
	p := NewBarProvider(src, cache, 30, "iex", nil)
	p.now = func() time.Time { return wed }
	p.backoff = 0
	return p
}

func TestBarProviderCachesFreshBars(t *testing.T) {
	src := &fakeBars{bars: []marketdata.Bar{dailyBar(18, 101), dailyBar(17, 100)}}
	p := newProvider(src, store.NewParquetStore(t.TempDir()))
	ctx := context.Background()

	bars, err := p.Bars(ctx, "aapl")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "AAPL", bars[0].Symbol)
	assert.Equal(t, 100.0, bars[0].Close, "bars sorted oldest first")
	assert.Equal(t, marketdata.OneDay, src.last.TimeFrame)

	bars, err = p.Bars(ctx, "AAPL")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	assert.Equal(t, int32(1), src.calls.Load(), "second call served from cache")
}

func TestBarProviderRefetchesStaleCache(t *testing.T) {
	cache := store.NewParquetStore(t.TempDir())
	require.NoError(t, cache.WriteBars(context.Background(), convertBars("MSFT", []marketdata.Bar{dailyBar(10, 390)})))

	src := &fakeBars{bars: []marketdata.Bar{dailyBar(17, 400), dailyBar(18, 401)}}
	p := newProvider(src, cache)

	bars, err := p.Bars(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestBarProviderFallsBackToStaleCache(t *testing.T) {
	cache := store.NewParquetStore(t.TempDir())
	require.NoError(t, cache.WriteBars(context.Background(), convertBars("MSFT", []marketdata.Bar{dailyBar(10, 390)})))

	src := &fakeBars{err: errors.New("503")}
	p := newProvider(src, cache)

	bars, err := p.Bars(context.Background(), "MSFT")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 390.0, bars[0].Close)
	assert.Equal(t, int32(3), src.calls.Load(), "retried before falling back")
}

func TestBarProviderErrorWithoutCache(t *testing.T) {
	src := &fakeBars{err: errors.New("unauthorized")}
	p := newProvider(src, nil)

	_, err := p.Bars(context.Background(), "NVDA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NVDA")
}

func newFinnhub(t *testing.T, h http.HandlerFunc) *FinnhubClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewFinnhubClient(config.Finnhub{APIKey: "k", BaseURL: srv.URL + "/", RateLimitPerMin: 6000}, nil)
	c.backoff = 0
	return c
}

func TestFinnhubEarnings(t *testing.T) {
	c := newFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/earnings", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "k", r.Header.Get("X-Finnhub-Token"))
		w.Write([]byte(`[
			{"actual":1.64,"estimate":1.6,"period":"2024-12-31","quarter":1,"year":2025,"surprise":0.04,"surprisePercent":2.5,"symbol":"AAPL"},
			{"actual":null,"estimate":1.35,"period":"2024-09-30","quarter":4,"year":2024,"surprise":null,"surprisePercent":null,"symbol":"AAPL"}
		]`))
	})

	got, err := c.Earnings(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-09-30", got[0].Period)
	assert.Zero(t, got[0].Actual)
	assert.Equal(t, 1.35, got[0].Estimate)
	assert.Equal(t, 2.5, got[1].SurprisePercent)
	assert.Equal(t, "Q1 2025", got[1].Label())
}

func TestFinnhubMetricsAndProfile(t *testing.T) {
	c := newFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/metric":
			assert.Equal(t, "all", r.URL.Query().Get("metric"))
			w.Write([]byte(`{"metric":{"52WeekHigh":260.1,"52WeekLow":164.08,"peTTM":38.2,"grossMarginTTM":46.2,"10DayAverageTradingVolume":52.5,"marketCapitalization":3500000,"beta":1.2}}`))
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc","ticker":"AAPL","exchange":"NASDAQ","logo":"https://x/logo.png","weburl":"https://apple.com"}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	m, err := c.Metrics(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 38.2, m.PERatio)
	assert.Equal(t, 260.1, m.WeekHigh52)
	assert.InDelta(t, 52.5e6, m.Volume10Day, 1)
	assert.InDelta(t, 3.5e12, m.MarketCap, 1)

	p, err := c.Profile(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", p.Name)
	assert.Equal(t, "N/A", p.Industry)
	assert.Equal(t, "https://x/logo.png", p.Logo)
}

func TestFinnhubRetryPolicy(t *testing.T) {
	var hits atomic.Int32
	var status atomic.Int32
	status.Store(http.StatusInternalServerError)
	c := newFinnhub(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(int(status.Load()))
		w.Write([]byte("nope"))
	})
	ctx := context.Background()

	_, err := c.Profile(ctx, "AAPL")
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 500, serr.Code)
	assert.Equal(t, int32(3), hits.Load())

	hits.Store(0)
	status.Store(http.StatusForbidden)
	_, err = c.Profile(ctx, "AAPL")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 403, serr.Code)
	assert.Equal(t, int32(1), hits.Load(), "4xx is not retried")
}

func TestFinnhubNoAPIKey(t *testing.T) {
	c := NewFinnhubClient(config.Finnhub{}, nil)
	_, err := c.Earnings(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
