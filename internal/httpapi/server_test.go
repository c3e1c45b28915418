package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/catalog"
	"scout/internal/dashboard"
	"scout/internal/domain"
	"scout/internal/store"
)

var now0 = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

const seed0 = int64(20250314)

// The fakes are read by handler goroutines and the test, so they lock.
type fakeLoader struct {
	mu    sync.Mutex
	got   catalog.Entry
	err   error
	block bool
}

func (f *fakeLoader) set(err error, block bool) {
	f.mu.Lock()
	f.err, f.block = err, block
	f.mu.Unlock()
}

func (f *fakeLoader) lastEntry() catalog.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got
}

func (f *fakeLoader) Load(ctx context.Context, e catalog.Entry) (*dashboard.Snapshot, error) {
	f.mu.Lock()
	f.got = e
	err, block := f.err, f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return &dashboard.Snapshot{Entry: e, LoadedAt: now0}, nil
}

type fakeNews struct {
	mu       sync.Mutex
	articles []domain.Article
	err      error
	limit    int
}

func (f *fakeNews) set(articles []domain.Article, err error) {
	f.mu.Lock()
	f.articles, f.err = articles, err
	f.mu.Unlock()
}

func (f *fakeNews) lastLimit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limit
}

func (f *fakeNews) Fetch(_ context.Context, _, _ string, limit int) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	return f.articles, f.err
}

type fakeSentiment struct {
	mu  sync.Mutex
	err error
}

func (f *fakeSentiment) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSentiment) Analyze(_ context.Context, _ string, headlines []string) (domain.Sentiment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Sentiment{}, f.err
	}
	return domain.Sentiment{Score: 6.5, Bullets: []string{headlines[0]}, Raw: "Average Sentiment Score: 6.5/10"}, nil
}

type testEnv struct {
	srv    *httptest.Server
	mem    *store.MemoryStore
	loader *fakeLoader
	news   *fakeNews
	sent   *fakeSentiment
}

func newTestEnv(t *testing.T, mutate func(*Options)) *testEnv {
	t.Helper()
	res, err := catalog.NewResolver(catalog.Reels(), 0)
	require.NoError(t, err)

	env := &testEnv{
		mem:    store.NewMemoryStore(),
		loader: &fakeLoader{},
		news: &fakeNews{articles: []domain.Article{
			{Time: now0, Source: "google", Headline: "Apple beats estimates"},
			{Time: now0.Add(-time.Hour), Source: "alpaca", Headline: "iPhone sales climb"},
		}},
		sent: &fakeSentiment{},
	}
	opts := Options{
		Resolver:  res,
		Location:  time.UTC,
		KV:        env.mem,
		Favorites: env.mem,
		Loader:    env.loader,
		News:      env.news,
		Sentiment: env.sent,
		User:      "local",
		Now:       func() time.Time { return now0 },
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := NewServer(opts)
	require.NoError(t, err)
	env.srv = httptest.NewServer(s.Handler())
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestNewServerRequiresResolver(t *testing.T) {
	_, err := NewServer(Options{})
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, "GET", "/api/reels/today", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	got := decode[TodayJSON](t, resp)
	want := catalog.Shuffle(catalog.Reels(), seed0)
	assert.Equal(t, "2025-03-14", got.Date)
	assert.Equal(t, seed0, got.Seed)
	assert.Equal(t, len(want), got.Count)
	require.Len(t, got.Entries, len(want))
	for i, e := range got.Entries {
		assert.Equal(t, int64(i), e.Position)
		assert.Equal(t, want[i].Symbol, e.Symbol)
	}
}

func TestTodayMatchesSeedAcrossDayChange(t *testing.T) {
	var day atomic.Int64
	env := newTestEnv(t, func(o *Options) {
		o.Now = func() time.Time {
			return now0.AddDate(0, 0, int(day.Add(1)%2))
		}
	})
	orders := map[int64][]catalog.Entry{
		seed0:     catalog.Shuffle(catalog.Reels(), seed0),
		seed0 + 1: catalog.Shuffle(catalog.Reels(), seed0+1),
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				resp := env.do(t, "GET", "/api/reels/today", "", nil)
				var got TodayJSON
				if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
					t.Errorf("decode: %v", err)
					return
				}
				resp.Body.Close()
				want, ok := orders[got.Seed]
				if !assert.True(t, ok, "unexpected seed %d", got.Seed) {
					return
				}
				for i, e := range got.Entries {
					if e.Symbol != want[i].Symbol {
						t.Errorf("seed %d entry %d = %s, want %s", got.Seed, i, e.Symbol, want[i].Symbol)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestReelAtPosition(t *testing.T) {
	env := newTestEnv(t, nil)
	want := catalog.Shuffle(catalog.Reels(), seed0)

	got := decode[ReelJSON](t, env.do(t, "GET", "/api/reels/3", "", nil))
	assert.Equal(t, int64(3), got.Position)
	assert.Equal(t, want[3], got.Current)
	assert.Equal(t, want[4], got.Next)

	// Positions wrap around the catalog.
	n := len(want)
	got = decode[ReelJSON](t, env.do(t, "GET", "/api/reels/"+strconv.Itoa(n-1), "", nil))
	assert.Equal(t, want[n-1], got.Current)
	assert.Equal(t, want[0], got.Next)

	for _, bad := range []string{"-1", "abc"} {
		resp := env.do(t, "GET", "/api/reels/"+bad, "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestPosition(t *testing.T) {
	env := newTestEnv(t, nil)
	want := catalog.Shuffle(catalog.Reels(), seed0)
	alice := map[string]string{UserHeader: "alice"}

	got := decode[ReelJSON](t, env.do(t, "GET", "/api/reels/position", "", alice))
	assert.Equal(t, int64(0), got.Position)

	resp := env.do(t, "PUT", "/api/reels/position", `{"position": 7}`, alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, PositionJSON{User: "alice", Position: 7}, decode[PositionJSON](t, resp))

	got = decode[ReelJSON](t, env.do(t, "GET", "/api/reels/position", "", alice))
	assert.Equal(t, int64(7), got.Position)
	assert.Equal(t, want[7], got.Current)
	assert.Equal(t, want[8], got.Next)

	// Other users are independent.
	got = decode[ReelJSON](t, env.do(t, "GET", "/api/reels/position", "", nil))
	assert.Equal(t, int64(0), got.Position)

	resp = env.do(t, "PUT", "/api/reels/position", `{"position": -2}`, alice)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, "PUT", "/api/reels/position", `not json`, alice)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NoError(t, env.mem.SetItem(store.PositionKey("bob"), "junk"))
	got = decode[ReelJSON](t, env.do(t, "GET", "/api/reels/position", "", map[string]string{UserHeader: "bob"}))
	assert.Equal(t, int64(0), got.Position)
}

func TestResetPosition(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := map[string]string{UserHeader: "alice"}
	require.NoError(t, env.mem.SetItem(store.PositionKey("alice"), "12"))
	require.NoError(t, env.mem.SetItem(store.PositionKey("bob"), "5"))

	resp := env.do(t, "DELETE", "/api/reels/position", "", alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, PositionJSON{User: "alice", Position: 0}, decode[PositionJSON](t, resp))

	_, ok, err := env.mem.GetItem(store.PositionKey("alice"))
	require.NoError(t, err)
	assert.False(t, ok, "position should be removed")
	got := decode[ReelJSON](t, env.do(t, "GET", "/api/reels/position", "", alice))
	assert.Equal(t, int64(0), got.Position)

	v, ok, _ := env.mem.GetItem(store.PositionKey("bob"))
	assert.True(t, ok)
	assert.Equal(t, "5", v)

	// Resetting twice is fine.
	resp = env.do(t, "DELETE", "/api/reels/position", "", alice)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	noKV := newTestEnv(t, func(o *Options) { o.KV = nil })
	resp = noKV.do(t, "DELETE", "/api/reels/position", "", alice)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t, nil)

	got := decode[[]catalog.Entry](t, env.do(t, "GET", "/api/search?q=aapl", "", nil))
	require.NotEmpty(t, got)
	assert.Equal(t, "AAPL", got[0].Symbol)

	got = decode[[]catalog.Entry](t, env.do(t, "GET", "/api/search?q=a&limit=3", "", nil))
	assert.Len(t, got, 3)

	got = decode[[]catalog.Entry](t, env.do(t, "GET", "/api/search?q=", "", nil))
	assert.Empty(t, got)

	resp := env.do(t, "GET", "/api/search?q=a&limit=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSnapshot(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, "GET", "/api/snapshot/aapl", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[dashboard.Snapshot](t, resp)
	assert.Equal(t, "AAPL", snap.Entry.Symbol)
	assert.Equal(t, "Apple Inc.", env.loader.lastEntry().Name)

	resp = env.do(t, "GET", "/api/snapshot/TOOLONG", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, "GET", "/api/snapshot/ZZZZ", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "not supported")

	env.loader.set(errors.New("boom"), false)
	resp = env.do(t, "GET", "/api/snapshot/AAPL", "", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRequestTimeout(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Timeout = 20 * time.Millisecond })
	env.loader.set(nil, true)

	resp := env.do(t, "GET", "/api/snapshot/AAPL", "", nil)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "request timeout", decode[map[string]string](t, resp)["error"])
}

func TestNews(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.NewsLimit = 5 })

	got := decode[NewsJSON](t, env.do(t, "GET", "/api/news/msft", "", nil))
	assert.Equal(t, "MSFT", got.Symbol)
	assert.Equal(t, "Microsoft", got.Company)
	assert.Len(t, got.Articles, 2)
	assert.Equal(t, 5, env.news.lastLimit())

	env.do(t, "GET", "/api/news/msft?limit=500", "", nil)
	assert.Equal(t, maxNewsLimit, env.news.lastLimit())

	env.news.set(nil, errors.New("all sources failed"))
	resp := env.do(t, "GET", "/api/news/MSFT", "", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSentiment(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, "POST", "/api/sentiment", `{"company": " Apple Inc. "}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[SentimentJSON](t, resp)
	assert.Equal(t, "AAPL", got.Symbol)
	require.NotNil(t, got.Score)
	assert.Equal(t, 6.5, *got.Score)
	assert.Equal(t, []string{"Apple beats estimates", "iPhone sales climb"}, got.Headlines)
	assert.Equal(t, []string{"Apple beats estimates"}, got.Bullets)

	// Model failures degrade to a fixed message.
	env.sent.fail(errors.New("quota exceeded"))
	got = decode[SentimentJSON](t, env.do(t, "POST", "/api/sentiment", `{"company": "Apple Inc."}`, nil))
	assert.Equal(t, sentimentUnavailable, got.Sentiment)
	assert.Nil(t, got.Score)
	assert.Len(t, got.Headlines, 2)

	for body, status := range map[string]int{
		`{"company": "A"}`:             http.StatusBadRequest,
		`{"company": "Not A Company"}`: http.StatusBadRequest,
		`{`:                            http.StatusBadRequest,
	} {
		resp := env.do(t, "POST", "/api/sentiment", body, nil)
		assert.Equal(t, status, resp.StatusCode, body)
	}

	env.news.set(nil, nil)
	resp = env.do(t, "POST", "/api/sentiment", `{"company": "Apple Inc."}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFavorites(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := map[string]string{UserHeader: "alice"}

	resp := env.do(t, "PUT", "/api/favorites/aapl", "", alice)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, FavoriteChangeJSON{Symbol: "AAPL", Changed: true}, decode[FavoriteChangeJSON](t, resp))

	resp = env.do(t, "PUT", "/api/favorites/AAPL", "", alice)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[FavoriteChangeJSON](t, resp).Changed)

	resp = env.do(t, "PUT", "/api/favorites/ZZZZ", "", alice)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	list := decode[[]FavoriteJSON](t, env.do(t, "GET", "/api/favorites", "", alice))
	require.Len(t, list, 1)
	assert.Equal(t, "Apple Inc.", list[0].Name)
	assert.True(t, list[0].AddedAt.Equal(now0))

	assert.Empty(t, decode[[]FavoriteJSON](t, env.do(t, "GET", "/api/favorites", "", nil)))

	resp = env.do(t, "DELETE", "/api/favorites/aapl", "", alice)
	assert.True(t, decode[FavoriteChangeJSON](t, resp).Changed)
	resp = env.do(t, "DELETE", "/api/favorites/aapl", "", alice)
	assert.False(t, decode[FavoriteChangeJSON](t, resp).Changed)
}

func TestUnconfiguredProviders(t *testing.T) {
	env := newTestEnv(t, func(o *Options) {
		o.KV, o.Favorites, o.Loader, o.News = nil, nil, nil, nil
	})
	for _, path := range []string{"/api/reels/position", "/api/favorites", "/api/snapshot/AAPL", "/api/news/AAPL"} {
		resp := env.do(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := env.do(t, "OPTIONS", "/api/favorites/AAPL", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), UserHeader)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Limiter = NewRateLimiter(60, 2, nil) })
	a := map[string]string{"X-Real-IP": "10.0.0.1"}

	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/test", "", a).StatusCode)
	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/test", "", a).StatusCode)
	resp := env.do(t, "GET", "/api/test", "", a)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	b := map[string]string{"X-Real-IP": "10.0.0.2"}
	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/test", "", b).StatusCode)
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(60, 1, nil)
	clk := now0
	rl.now = func() time.Time { return clk }

	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	clk = clk.Add(visitorTTL + time.Second)
	assert.True(t, rl.allow("b"))
	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
}

func TestClientID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientID(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", clientID(r))

	r.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", clientID(r))
}
