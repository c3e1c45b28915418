package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"scout/internal/config"
	"scout/internal/domain"
	"scout/internal/util"
)

// ErrNoAPIKey is returned when a provider is used without credentials.
var ErrNoAPIKey = errors.New("market: no api key configured")

// StatusError is a non-2xx response from an upstream API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// FinnhubClient fetches fundamentals from Finnhub. Requests share one rate
// limiter since the free tier allows 60 calls per minute.
type FinnhubClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *util.RateLimiter
	backoff time.Duration
	log     *slog.Logger
}

// NewFinnhubClient creates a client from the finnhub config section.
func NewFinnhubClient(cfg config.Finnhub, log *slog.Logger) *FinnhubClient {
	perMin := cfg.RateLimitPerMin
	if perMin <= 0 {
		perMin = 60
	}
	if log == nil {
		log = slog.Default()
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://finnhub.io/api/v1"
	}
	return &FinnhubClient{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: util.NewBurstRateLimiter(perMin, 5),
		backoff: time.Second,
		log:     log.With("provider", "finnhub"),
	}
}

// get issues one rate-limited, retried GET and decodes the JSON body into out.
// 4xx responses other than 429 are not retried.
func (c *FinnhubClient) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	u := c.baseURL + path + "?" + q.Encode()

	return util.Retry(ctx, 3, c.backoff, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return util.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return util.Permanent(err)
		}
		req.Header.Set("X-Finnhub-Token", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			serr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return util.Permanent(serr)
			}
			c.log.Debug("finnhub retryable status", "path", path, "status", resp.StatusCode)
			return serr
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return util.Permanent(fmt.Errorf("decoding %s: %w", path, err))
		}
		return nil
	})
}

type finnhubEarning struct {
	Actual          *float64 `json:"actual"`
	Estimate        *float64 `json:"estimate"`
	Period          string   `json:"period"`
	Quarter         int      `json:"quarter"`
	Year            int      `json:"year"`
	Surprise        *float64 `json:"surprise"`
	SurprisePercent *float64 `json:"surprisePercent"`
	Symbol          string   `json:"symbol"`
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Earnings returns the reported quarters for symbol, oldest first.
func (c *FinnhubClient) Earnings(ctx context.Context, symbol string) ([]domain.Earning, error) {
	var raw []finnhubEarning
	if err := c.get(ctx, "/stock/earnings", url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, fmt.Errorf("finnhub earnings %s: %w", symbol, err)
	}

	out := make([]domain.Earning, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Earning{
			Symbol:          strings.ToUpper(symbol),
			Period:          r.Period,
			Year:            r.Year,
			Quarter:         r.Quarter,
			Estimate:        deref(r.Estimate),
			Actual:          deref(r.Actual),
			Surprise:        deref(r.Surprise),
			SurprisePercent: deref(r.SurprisePercent),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

type finnhubMetricResponse struct {
	Metric map[string]any `json:"metric"`
}

// metricFloat reads the first numeric value among keys.
func metricFloat(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := m[k].(float64); ok {
			return v
		}
	}
	return 0
}

// Metrics returns the headline ratios for symbol.
func (c *FinnhubClient) Metrics(ctx context.Context, symbol string) (domain.Metrics, error) {
	var raw finnhubMetricResponse
	q := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := c.get(ctx, "/stock/metric", q, &raw); err != nil {
		return domain.Metrics{}, fmt.Errorf("finnhub metrics %s: %w", symbol, err)
	}
	m := raw.Metric
	return domain.Metrics{
		PERatio:     metricFloat(m, "peBasicExclExtraTTM", "peTTM", "peExclExtraTTM"),
		WeekHigh52:  metricFloat(m, "52WeekHigh"),
		WeekLow52:   metricFloat(m, "52WeekLow"),
		GrossMargin: metricFloat(m, "grossMarginTTM", "grossMarginAnnual"),
		// Finnhub reports volume in millions of shares and cap in millions of dollars.
		Volume10Day: metricFloat(m, "10DayAverageTradingVolume") * 1e6,
		MarketCap:   metricFloat(m, "marketCapitalization") * 1e6,
		Beta:        metricFloat(m, "beta"),
	}, nil
}

type finnhubProfile struct {
	Name            string `json:"name"`
	Ticker          string `json:"ticker"`
	Exchange        string `json:"exchange"`
	FinnhubIndustry string `json:"finnhubIndustry"`
	Logo            string `json:"logo"`
	WebURL          string `json:"weburl"`
	Country         string `json:"country"`
}

// Profile returns the company profile for symbol.
func (c *FinnhubClient) Profile(ctx context.Context, symbol string) (domain.Profile, error) {
	var raw finnhubProfile
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &raw); err != nil {
		return domain.Profile{}, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	industry := raw.FinnhubIndustry
	if industry == "" {
		industry = "N/A"
	}
	return domain.Profile{
		Name:     raw.Name,
		Ticker:   raw.Ticker,
		Exchange: raw.Exchange,
		Industry: industry,
		Logo:     raw.Logo,
		WebURL:   raw.WebURL,
		Country:  raw.Country,
	}, nil
}
