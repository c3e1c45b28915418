// Package news fetches company news from Alpaca, Google News RSS,
// GlobeNewswire RSS and StockTwits, caches it per symbol and merges sources
// into one newest-first list.
package news

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"scout/internal/domain"
)

// Source is one news backend.
type Source interface {
	Name() string
	Fetch(ctx context.Context, symbol, company string, start, end time.Time) ([]domain.Article, error)
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// --- Alpaca ---

// AlpacaNewsClient is the subset of the Alpaca market data client used here.
type AlpacaNewsClient interface {
	GetNews(req marketdata.GetNewsRequest) ([]marketdata.News, error)
}

// AlpacaSource reads the Alpaca (Benzinga) news feed.
type AlpacaSource struct {
	Client AlpacaNewsClient
	Limit  int
}

func (s *AlpacaSource) Name() string { return "alpaca" }

// Fetch returns articles tagged with symbol.
func (s *AlpacaSource) Fetch(ctx context.Context, symbol, _ string, start, end time.Time) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := s.Limit
	if limit <= 0 {
		limit = 50
	}
	alpacaNews, err := s.Client.GetNews(marketdata.GetNewsRequest{
		Symbols:            []string{symbol},
		Start:              start,
		End:                end,
		TotalLimit:         limit,
		IncludeContent:     true,
		ExcludeContentless: false,
		Sort:               marketdata.SortDesc,
	})
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(alpacaNews))
	for _, a := range alpacaNews {
		body := a.Summary
		if body == "" && a.Content != "" {
			body = ExtractSymbolContent(a.Content, symbol)
		}
		articles = append(articles, domain.Article{
			Time:     a.CreatedAt.UTC(),
			Source:   "alpaca",
			Headline: a.Headline,
			Content:  body,
			URL:      a.URL,
		})
	}
	return articles, nil
}

// --- RSS (Google News, GlobeNewswire) ---

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Desc    string `xml:"description"`
}

var rssTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

func parseRSSTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range rssTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RSSSource reads an RSS search feed.
type RSSSource struct {
	name string
	// URL builds the feed address for a symbol and company name.
	URL func(symbol, company string) string
	// Clean post-processes each headline.
	Clean func(string) string
	HTTP  *http.Client
}

// GoogleNews returns the Google News RSS search source.
func GoogleNews() *RSSSource {
	return &RSSSource{
		name: "google",
		URL: func(symbol, company string) string {
			q := symbol + " stock"
			if company != "" {
				q = company + " " + q
			}
			return "https://news.google.com/rss/search?q=" + url.QueryEscape(q) + "&hl=en-US&gl=US&ceid=US:en"
		},
		// Google appends " - Publisher" to every title.
		Clean: func(h string) string {
			if idx := strings.LastIndex(h, " - "); idx > 0 {
				return h[:idx]
			}
			return h
		},
	}
}

// GlobeNewswire returns the GlobeNewswire keyword RSS source.
func GlobeNewswire() *RSSSource {
	return &RSSSource{
		name: "globenewswire",
		URL: func(symbol, _ string) string {
			return "https://www.globenewswire.com/RssFeed/keyword/" + url.PathEscape(symbol) + "/feedTitle/GlobeNewswire.xml"
		},
	}
}

func (s *RSSSource) Name() string { return s.name }

// Fetch downloads and filters the feed to [start, end].
func (s *RSSSource) Fetch(ctx context.Context, symbol, company string, start, end time.Time) ([]domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(symbol, company), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := s.HTTP
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s rss status %d", s.name, resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("decoding %s rss: %w", s.name, err)
	}

	var articles []domain.Article
	for _, item := range rss.Channel.Items {
		t, ok := parseRSSTime(item.PubDate)
		if !ok || t.Before(start) || t.After(end) {
			continue
		}
		headline := html.UnescapeString(strings.TrimSpace(item.Title))
		if s.Clean != nil {
			headline = s.Clean(headline)
		}
		articles = append(articles, domain.Article{
			Time:     t,
			Source:   s.name,
			Headline: headline,
			Content:  StripHTML(item.Desc),
			URL:      strings.TrimSpace(item.Link),
		})
	}
	return articles, nil
}

// --- StockTwits ---

type stocktwitsResponse struct {
	Response struct {
		Status int `json:"status"`
	} `json:"response"`
	Messages []stocktwitsMessage `json:"messages"`
}

type stocktwitsMessage struct {
	ID        int    `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
}

// StockTwitsSource reads the latest page of a symbol's StockTwits stream.
type StockTwitsSource struct {
	BaseURL string
	HTTP    *http.Client
}

func (s *StockTwitsSource) Name() string { return "stocktwits" }

// Fetch returns messages in [start, end] as articles headed by the author.
func (s *StockTwitsSource) Fetch(ctx context.Context, symbol, _ string, start, end time.Time) ([]domain.Article, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://api.stocktwits.com/api/2"
	}
	u := strings.TrimRight(base, "/") + "/streams/symbol/" + url.PathEscape(symbol) + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := s.HTTP
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var st stocktwitsResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("decoding stocktwits: %w", err)
	}
	if st.Response.Status != http.StatusOK {
		return nil, fmt.Errorf("stocktwits status %d", st.Response.Status)
	}

	var out []domain.Article
	for _, msg := range st.Messages {
		t, err := time.Parse(time.RFC3339, msg.CreatedAt)
		if err != nil || t.Before(start) || t.After(end) {
			continue
		}
		out = append(out, domain.Article{
			Time:     t.UTC(),
			Source:   "stocktwits",
			Headline: "@" + msg.User.Username,
			Content:  html.UnescapeString(msg.Body),
		})
	}
	return out, nil
}

// --- HTML helpers ---

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)
var htmlParaRe = regexp.MustCompile(`(?i)</?(p|br|div|li|h[1-6])\b[^>]*>`)

// StripHTML removes HTML tags and normalizes whitespace.
func StripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// ExtractSymbolContent extracts paragraphs mentioning the symbol from HTML content.
// Falls back to full stripped HTML if no paragraphs mention the symbol.
func ExtractSymbolContent(rawHTML, symbol string) string {
	chunks := htmlParaRe.Split(rawHTML, -1)
	var matched []string
	upper := strings.ToUpper(symbol)
	for _, chunk := range chunks {
		plain := StripHTML(chunk)
		if plain == "" {
			continue
		}
		if strings.Contains(strings.ToUpper(plain), upper) {
			matched = append(matched, plain)
		}
	}
	if len(matched) > 0 {
		return strings.Join(matched, " ")
	}
	return StripHTML(rawHTML)
}
