package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scout/internal/domain"
)

func TestPositionKey(t *testing.T) {
	if got := PositionKey("alice"); got != "reels:position:alice" {
		t.Errorf("PositionKey(alice) = %q", got)
	}
	if got := PositionKey("  "); got != "reels:position:local" {
		t.Errorf("PositionKey(blank) = %q", got)
	}
}

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	bp := ps.barPath("aapl", 2024)
	wantBarPath := filepath.Join("/data", "bars", "AAPL", "2024.parquet")
	if bp != wantBarPath {
		t.Errorf("barPath mismatch:\n  got  %s\n  want %s", bp, wantBarPath)
	}

	np := ps.newsPath("tsla")
	wantNewsPath := filepath.Join("/data", "news", "TSLA.parquet")
	if np != wantNewsPath {
		t.Errorf("newsPath mismatch:\n  got  %s\n  want %s", np, wantNewsPath)
	}
}

func TestParquetStoreWriteReadBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	bars := []domain.Bar{
		{
			Symbol:     "AAPL",
			Timestamp:  time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC),
			Open:       185.0,
			High:       186.5,
			Low:        184.0,
			Close:      185.5,
			Volume:     50000000,
			TradeCount: 500000,
			VWAP:       185.25,
		},
		{
			Symbol:     "AAPL",
			Timestamp:  time.Date(2024, 1, 3, 5, 0, 0, 0, time.UTC),
			Open:       185.5,
			High:       187.0,
			Low:        185.0,
			Close:      186.0,
			Volume:     45000000,
			TradeCount: 450000,
			VWAP:       185.75,
		},
	}
	if err := ps.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ps.ReadBars(ctx, "AAPL", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars, want 2", len(got))
	}
	if got[0].Close != 185.5 || got[1].Close != 186.0 {
		t.Errorf("closes = %v, %v", got[0].Close, got[1].Close)
	}
	if !got[0].Timestamp.Equal(bars[0].Timestamp) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, bars[0].Timestamp)
	}

	// Narrow window and a year with no file.
	got, err = ps.ReadBars(ctx, "AAPL", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadBars returned %d bars, want 1", len(got))
	}
}

func TestParquetStoreMergeBars(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if err := ps.WriteBars(ctx, []domain.Bar{{Symbol: "MSFT", Timestamp: day1, Close: 403.0}}); err != nil {
		t.Fatalf("WriteBars (first): %v", err)
	}
	// Same day rewritten plus a new day: merge, newest value wins.
	if err := ps.WriteBars(ctx, []domain.Bar{
		{Symbol: "MSFT", Timestamp: day1, Close: 404.0},
		{Symbol: "MSFT", Timestamp: day2, Close: 408.0},
	}); err != nil {
		t.Fatalf("WriteBars (second): %v", err)
	}

	got, err := ps.ReadBars(ctx, "MSFT", day1, day2)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars after merge, want 2", len(got))
	}
	if got[0].Close != 404.0 {
		t.Errorf("merged close = %v, want 404", got[0].Close)
	}
}

func TestParquetStoreNews(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	articles, fetched, err := ps.ReadNews(ctx, "NVDA")
	if err != nil || articles != nil || !fetched.IsZero() {
		t.Fatalf("ReadNews on empty cache = %v, %v, %v", articles, fetched, err)
	}

	at := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	in := []domain.Article{
		{Time: at.Add(-time.Hour), Source: "google", Headline: "Nvidia beats", URL: "https://example.com/a"},
		{Time: at.Add(-2 * time.Hour), Source: "alpaca", Headline: "Chip stocks rally", Content: "body"},
	}
	if err := ps.WriteNews(ctx, "nvda", at, in); err != nil {
		t.Fatalf("WriteNews: %v", err)
	}

	articles, fetched, err = ps.ReadNews(ctx, "NVDA")
	if err != nil {
		t.Fatalf("ReadNews: %v", err)
	}
	if !fetched.Equal(at) {
		t.Errorf("fetchedAt = %v, want %v", fetched, at)
	}
	if len(articles) != 2 || articles[0].Headline != "Nvidia beats" || articles[1].Content != "body" {
		t.Errorf("articles = %+v", articles)
	}

	// An empty fetch is remembered.
	if err := ps.WriteNews(ctx, "QUIET", at, nil); err != nil {
		t.Fatalf("WriteNews empty: %v", err)
	}
	articles, fetched, err = ps.ReadNews(ctx, "QUIET")
	if err != nil || len(articles) != 0 || !fetched.Equal(at) {
		t.Errorf("ReadNews(QUIET) = %v, %v, %v", articles, fetched, err)
	}
}
