package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/parquet-go/parquet-go"

	"scout/internal/domain"
)

var (
	_ BarStore  = (*ParquetStore)(nil)
	_ NewsStore = (*ParquetStore)(nil)
)

// ParquetStore caches daily bars and news on disk as Parquet files:
//
//	<DataDir>/bars/<SYMBOL>/<YYYY>.parquet
//	<DataDir>/news/<SYMBOL>.parquet
type ParquetStore struct {
	DataDir string
}

// NewParquetStore creates a ParquetStore rooted at dataDir.
func NewParquetStore(dataDir string) *ParquetStore {
	return &ParquetStore{DataDir: dataDir}
}

// BarRecord is the on-disk row for one daily bar.
type BarRecord struct {
	Symbol     string  `parquet:"symbol"`
	Timestamp  int64   `parquet:"timestamp,timestamp(millisecond)"`
	Open       float64 `parquet:"open"`
	High       float64 `parquet:"high"`
	Low        float64 `parquet:"low"`
	Close      float64 `parquet:"close"`
	Volume     int64   `parquet:"volume"`
	TradeCount int64   `parquet:"trade_count"`
	VWAP       float64 `parquet:"vwap"`
}

func barRecord(b domain.Bar) BarRecord {
	return BarRecord{
		Symbol:     NormalizeSymbol(b.Symbol),
		Timestamp:  b.Timestamp.UnixMilli(),
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		TradeCount: b.TradeCount,
		VWAP:       b.VWAP,
	}
}

func (r BarRecord) bar() domain.Bar {
	return domain.Bar{
		Symbol:     r.Symbol,
		Timestamp:  time.UnixMilli(r.Timestamp).UTC(),
		Open:       r.Open,
		High:       r.High,
		Low:        r.Low,
		Close:      r.Close,
		Volume:     r.Volume,
		TradeCount: r.TradeCount,
		VWAP:       r.VWAP,
	}
}

// NewsRecord is the on-disk row for one cached article. FetchedAt is the
// same on every row of a file.
type NewsRecord struct {
	Symbol    string `parquet:"symbol"`
	FetchedAt int64  `parquet:"fetched_at,timestamp(millisecond)"`
	Time      int64  `parquet:"time,timestamp(millisecond)"`
	Source    string `parquet:"source"`
	Headline  string `parquet:"headline"`
	Content   string `parquet:"content"`
	URL       string `parquet:"url"`
}

// WriteBars merges bars into the per-symbol, per-year files. A bar already
// on disk for the same day is replaced.
func (s *ParquetStore) WriteBars(_ context.Context, bars []domain.Bar) error {
	type fileKey struct {
		symbol string
		year   int
	}
	files := make(map[fileKey][]BarRecord)
	for _, b := range bars {
		rec := barRecord(b)
		k := fileKey{rec.Symbol, b.Timestamp.UTC().Year()}
		files[k] = append(files[k], rec)
	}

	for k, incoming := range files {
		path := s.barPath(k.symbol, k.year)
		existing, err := readParquetFile[BarRecord](path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading bars for %s/%d: %w", k.symbol, k.year, err)
		}
		if err := writeParquetFile(path, mergeBarRecords(existing, incoming)); err != nil {
			return fmt.Errorf("writing bars for %s/%d: %w", k.symbol, k.year, err)
		}
	}
	return nil
}

// ReadBars returns the cached bars for symbol within [start, end], oldest
// first.
func (s *ParquetStore) ReadBars(_ context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	symbol = NormalizeSymbol(symbol)
	var bars []domain.Bar
	for year := start.UTC().Year(); year <= end.UTC().Year(); year++ {
		records, err := readParquetFile[BarRecord](s.barPath(symbol, year))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading bars for %s/%d: %w", symbol, year, err)
		}
		for _, r := range records {
			b := r.bar()
			if b.Timestamp.Before(start) || b.Timestamp.After(end) {
				continue
			}
			bars = append(bars, b)
		}
	}
	return bars, nil
}

// WriteNews replaces the cached articles for symbol. An empty list is still
// written so a quiet symbol is not refetched until the cache expires.
func (s *ParquetStore) WriteNews(_ context.Context, symbol string, fetchedAt time.Time, articles []domain.Article) error {
	sym := NormalizeSymbol(symbol)
	stamp := fetchedAt.UnixMilli()
	records := make([]NewsRecord, 0, max(len(articles), 1))
	for _, a := range articles {
		records = append(records, NewsRecord{
			Symbol:    sym,
			FetchedAt: stamp,
			Time:      a.Time.UnixMilli(),
			Source:    a.Source,
			Headline:  a.Headline,
			Content:   a.Content,
			URL:       a.URL,
		})
	}
	if len(records) == 0 {
		records = append(records, NewsRecord{Symbol: sym, FetchedAt: stamp})
	}
	if err := writeParquetFile(s.newsPath(sym), records); err != nil {
		return fmt.Errorf("writing news for %s: %w", sym, err)
	}
	return nil
}

// ReadNews returns the cached articles for symbol and when they were fetched.
func (s *ParquetStore) ReadNews(_ context.Context, symbol string) ([]domain.Article, time.Time, error) {
	sym := NormalizeSymbol(symbol)
	records, err := readParquetFile[NewsRecord](s.newsPath(sym))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading news for %s: %w", sym, err)
	}
	if len(records) == 0 {
		return nil, time.Time{}, nil
	}

	var articles []domain.Article
	for _, r := range records {
		if r.Headline == "" {
			continue // placeholder row of an empty fetch
		}
		articles = append(articles, domain.Article{
			Time:     time.UnixMilli(r.Time).UTC(),
			Source:   r.Source,
			Headline: r.Headline,
			Content:  r.Content,
			URL:      r.URL,
		})
	}
	return articles, time.UnixMilli(records[0].FetchedAt).UTC(), nil
}

func (s *ParquetStore) barPath(symbol string, year int) string {
	return filepath.Join(s.DataDir, "bars", NormalizeSymbol(symbol), fmt.Sprintf("%d.parquet", year))
}

func (s *ParquetStore) newsPath(symbol string) string {
	return filepath.Join(s.DataDir, "news", NormalizeSymbol(symbol)+".parquet")
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return parquet.ReadFile[T](path)
}

// mergeBarRecords dedupes by (symbol, timestamp) with incoming rows winning,
// sorted by timestamp.
func mergeBarRecords(existing, incoming []BarRecord) []BarRecord {
	type rowKey struct {
		symbol string
		ts     int64
	}
	byKey := make(map[rowKey]BarRecord, len(existing)+len(incoming))
	for _, rows := range [][]BarRecord{existing, incoming} {
		for _, r := range rows {
			byKey[rowKey{r.Symbol, r.Timestamp}] = r
		}
	}

	merged := make([]BarRecord, 0, len(byKey))
	for _, r := range byKey {
		merged = append(merged, r)
	}
	slices.SortFunc(merged, func(a, b BarRecord) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return merged
}
