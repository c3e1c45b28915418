package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"scout/internal/catalog"
	"scout/internal/dashboard"
	"scout/internal/reel"
	"scout/internal/store"
)

// UserHeader selects the user whose position and favorites a request reads.
const UserHeader = "X-Scout-User"

const (
	maxSymbolLen  = 5
	defaultSearch = 10
	maxSearch     = 50
	maxNewsLimit  = 50
)

// SnapshotLoader builds the dashboard snapshot for an entry.
type SnapshotLoader interface {
	Load(ctx context.Context, entry catalog.Entry) (*dashboard.Snapshot, error)
}

// Options configures a Server. Nil providers disable their routes with 503.
type Options struct {
	Resolver  *catalog.Resolver
	Location  *time.Location
	KV        store.KV
	Favorites store.FavoriteStore
	Loader    SnapshotLoader
	News      dashboard.NewsFetcher
	Sentiment dashboard.SentimentAnalyzer
	User      string
	NewsLimit int
	Timeout   time.Duration
	Limiter   *RateLimiter
	Log       *slog.Logger
	Now       func() time.Time
}

// Server serves the scout HTTP API.
type Server struct {
	resolver  *catalog.Resolver
	loc       *time.Location
	kv        store.KV
	favs      store.FavoriteStore
	loader    SnapshotLoader
	news      dashboard.NewsFetcher
	sentiment dashboard.SentimentAnalyzer
	user      string
	newsLimit int
	timeout   time.Duration
	limiter   *RateLimiter
	log       *slog.Logger
	now       func() time.Time
}

// NewServer creates a Server. A resolver is required.
func NewServer(opts Options) (*Server, error) {
	if opts.Resolver == nil {
		return nil, errors.New("httpapi: nil resolver")
	}
	s := &Server{
		resolver:  opts.Resolver,
		loc:       opts.Location,
		kv:        opts.KV,
		favs:      opts.Favorites,
		loader:    opts.Loader,
		news:      opts.News,
		sentiment: opts.Sentiment,
		user:      opts.User,
		newsLimit: opts.NewsLimit,
		timeout:   opts.Timeout,
		limiter:   opts.Limiter,
		log:       opts.Log,
		now:       opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newsLimit <= 0 {
		s.newsLimit = 8
	}
	return s, nil
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/test", s.handleTest)
	mux.HandleFunc("GET /api/reels/today", s.handleToday)
	mux.HandleFunc("GET /api/reels/position", s.handleGetPosition)
	mux.HandleFunc("PUT /api/reels/position", s.handlePutPosition)
	mux.HandleFunc("DELETE /api/reels/position", s.handleResetPosition)
	mux.HandleFunc("GET /api/reels/{position}", s.handleReel)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/snapshot/{symbol}", s.handleSnapshot)
	mux.HandleFunc("GET /api/news/{symbol}", s.handleNews)
	mux.HandleFunc("POST /api/sentiment", s.handleSentiment)
	mux.HandleFunc("GET /api/favorites", s.handleListFavorites)
	mux.HandleFunc("PUT /api/favorites/{symbol}", s.handleAddFavorite)
	mux.HandleFunc("DELETE /api/favorites/{symbol}", s.handleRemoveFavorite)
}

// Handler returns an http.Handler with CORS, rate limiting and the request
// timeout applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(s.limiter.Middleware(timeoutMiddleware(s.timeout, mux)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeStatusJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeUpstreamError reports a provider failure, mapping an expired request
// context to 504.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		writeError(w, http.StatusGatewayTimeout, "request timeout")
		return
	}
	s.log.Warn("upstream failure", "what", what, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, fmt.Sprintf("%s unavailable: %v", what, err))
}

// requestUser returns the user named by UserHeader or the server default.
func (s *Server) requestUser(r *http.Request) string {
	if u := strings.TrimSpace(r.Header.Get(UserHeader)); u != "" {
		return u
	}
	if s.user != "" {
		return s.user
	}
	return "local"
}

// validateSymbol normalizes raw and looks it up in the supported companies.
// It writes the error response and returns false when the symbol is rejected.
func validateSymbol(w http.ResponseWriter, raw string) (catalog.Entry, bool) {
	sym := store.NormalizeSymbol(raw)
	if sym == "" || len(sym) > maxSymbolLen {
		writeError(w, http.StatusBadRequest, "invalid symbol format")
		return catalog.Entry{}, false
	}
	e, ok := catalog.Lookup(catalog.Suggestions, sym)
	if !ok {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("symbol %q not supported; %d companies are tracked", sym, len(catalog.Suggestions)))
		return catalog.Entry{}, false
	}
	return e, true
}

// today reseeds the resolver for the current day in the server location and
// returns that day's order.
func (s *Server) today() (time.Time, catalog.Day) {
	now := s.now().In(s.loc)
	day, changed := s.resolver.ReseedDay(catalog.DaySeed(now))
	if changed {
		s.log.Info("reel order reshuffled", "seed", day.Seed)
	}
	return now, day
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatusJSON{Message: "scout API is running", Status: "OK"})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	now, day := s.today()
	resp := TodayJSON{
		Date:    now.Format("2006-01-02"),
		Seed:    day.Seed,
		Count:   len(day.Order),
		Entries: make([]ReelEntryJSON, len(day.Order)),
	}
	for i, e := range day.Order {
		resp.Entries[i] = ReelEntryJSON{Position: int64(i), Symbol: e.Symbol, Name: e.Name}
	}
	writeJSON(w, resp)
}

func (s *Server) reelAt(pos int64) ReelJSON {
	_, day := s.today()
	return ReelJSON{
		Position: pos,
		Seed:     day.Seed,
		Current:  day.At(pos),
		Next:     day.At(pos + 1),
	}
}

func (s *Server) handleReel(w http.ResponseWriter, r *http.Request) {
	pos, err := reel.ParsePosition(r.PathValue("position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "position must be a non-negative integer")
		return
	}
	writeJSON(w, s.reelAt(pos))
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	if s.kv == nil {
		writeError(w, http.StatusServiceUnavailable, "position store not configured")
		return
	}
	user := s.requestUser(r)
	raw, ok, err := s.kv.GetItem(store.PositionKey(user))
	if err != nil {
		s.log.Error("reading position", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read position")
		return
	}
	var pos int64
	if ok {
		// Malformed or negative values read as a fresh start.
		if n, err := reel.ParsePosition(raw); err == nil {
			pos = n
		}
	}
	writeJSON(w, s.reelAt(pos))
}

func (s *Server) handlePutPosition(w http.ResponseWriter, r *http.Request) {
	if s.kv == nil {
		writeError(w, http.StatusServiceUnavailable, "position store not configured")
		return
	}
	var req PositionJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Position < 0 {
		writeError(w, http.StatusBadRequest, "position must be a non-negative integer")
		return
	}
	user := s.requestUser(r)
	if err := s.kv.SetItem(store.PositionKey(user), strconv.FormatInt(req.Position, 10)); err != nil {
		s.log.Error("writing position", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store position")
		return
	}
	writeJSON(w, PositionJSON{User: user, Position: req.Position})
}

// handleResetPosition drops the stored position so the user's next reel
// session starts from the top of the day's order.
func (s *Server) handleResetPosition(w http.ResponseWriter, r *http.Request) {
	if s.kv == nil {
		writeError(w, http.StatusServiceUnavailable, "position store not configured")
		return
	}
	user := s.requestUser(r)
	if err := s.kv.DeleteItem(store.PositionKey(user)); err != nil {
		s.log.Error("resetting position", "user", user, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset position")
		return
	}
	s.log.Info("position reset", "user", user)
	writeJSON(w, PositionJSON{User: user, Position: 0})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := defaultSearch
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxSearch)
	}
	results := catalog.Search(catalog.Suggestions, q.Get("q"), limit)
	if results == nil {
		results = []catalog.Entry{}
	}
	writeJSON(w, results)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshots not configured")
		return
	}
	entry, ok := validateSymbol(w, r.PathValue("symbol"))
	if !ok {
		return
	}
	snap, err := s.loader.Load(r.Context(), entry)
	if err != nil {
		s.writeUpstreamError(w, r, "snapshot", err)
		return
	}
	writeJSON(w, snap)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		writeError(w, http.StatusServiceUnavailable, "news not configured")
		return
	}
	entry, ok := validateSymbol(w, r.PathValue("symbol"))
	if !ok {
		return
	}
	limit := s.newsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxNewsLimit)
	}
	articles, err := s.news.Fetch(r.Context(), entry.Symbol, entry.Name, limit)
	if err != nil {
		s.writeUpstreamError(w, r, "news", err)
		return
	}
	writeJSON(w, NewsJSON{Symbol: entry.Symbol, Company: entry.Name, Articles: articles})
}

// sentimentUnavailable is returned in place of a summary when the model
// cannot be reached.
const sentimentUnavailable = "Unable to analyze sentiment due to API error."

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		writeError(w, http.StatusServiceUnavailable, "news not configured")
		return
	}
	var req SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	company := strings.TrimSpace(req.Company)
	switch {
	case len(company) < 2:
		writeError(w, http.StatusBadRequest, "company name too short")
		return
	case len(company) > 100:
		writeError(w, http.StatusBadRequest, "company name too long")
		return
	}
	entry, ok := lookupCompany(company)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid company")
		return
	}

	articles, err := s.news.Fetch(r.Context(), entry.Symbol, entry.Name, s.newsLimit)
	if err != nil {
		s.writeUpstreamError(w, r, "news", err)
		return
	}
	if len(articles) == 0 {
		writeError(w, http.StatusNotFound, "no news found")
		return
	}
	resp := SentimentJSON{Company: entry.Name, Symbol: entry.Symbol}
	for _, a := range articles {
		resp.Headlines = append(resp.Headlines, a.Headline)
	}

	resp.Sentiment = sentimentUnavailable
	if s.sentiment != nil {
		res, err := s.sentiment.Analyze(r.Context(), entry.Name, resp.Headlines)
		if err != nil {
			s.log.Warn("sentiment failed", "company", entry.Name, "error", err)
		} else {
			resp.Sentiment = res.Raw
			resp.Score = &res.Score
			resp.Bullets = res.Bullets
		}
	}
	writeJSON(w, resp)
}

// lookupCompany finds a tracked company by exact display name.
func lookupCompany(name string) (catalog.Entry, bool) {
	for _, e := range catalog.Suggestions {
		if e.Name == name {
			return e, true
		}
	}
	return catalog.Entry{}, false
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if s.favs == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not configured")
		return
	}
	list, err := s.favs.ListFavorites(r.Context(), s.requestUser(r))
	if err != nil {
		s.log.Error("listing favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	out := make([]FavoriteJSON, len(list))
	for i, f := range list {
		out[i] = FavoriteJSON{Symbol: f.Symbol, Name: f.Name, AddedAt: f.AddedAt}
	}
	writeJSON(w, out)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	if s.favs == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not configured")
		return
	}
	entry, ok := validateSymbol(w, r.PathValue("symbol"))
	if !ok {
		return
	}
	fav := store.Favorite{Symbol: entry.Symbol, Name: entry.Name, AddedAt: s.now()}
	added, err := s.favs.AddFavorite(r.Context(), s.requestUser(r), fav)
	if err != nil {
		s.log.Error("adding favorite", "symbol", entry.Symbol, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to add %s", entry.Symbol))
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeStatusJSON(w, status, FavoriteChangeJSON{Symbol: entry.Symbol, Changed: added})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if s.favs == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not configured")
		return
	}
	sym := store.NormalizeSymbol(r.PathValue("symbol"))
	if sym == "" || len(sym) > maxSymbolLen {
		writeError(w, http.StatusBadRequest, "invalid symbol format")
		return
	}
	removed, err := s.favs.RemoveFavorite(r.Context(), s.requestUser(r), sym)
	if err != nil {
		s.log.Error("removing favorite", "symbol", sym, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to remove %s", sym))
		return
	}
	writeJSON(w, FavoriteChangeJSON{Symbol: sym, Changed: removed})
}
