// Package store defines storage interfaces and backends for the reel
// position, user favorites and cached market data.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"scout/internal/domain"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// KV is a durable string key-value store.
type KV interface {
	// GetItem returns the value under key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// DeleteItem removes key. Removing a missing key is not an error.
	DeleteItem(key string) error
}

// Favorite is one symbol a user has saved.
type Favorite struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// FavoriteStore keeps a per-user set of favorite symbols.
type FavoriteStore interface {
	// AddFavorite saves symbol for user. It reports false when the symbol
	// was already a favorite.
	AddFavorite(ctx context.Context, user string, fav Favorite) (bool, error)

	// RemoveFavorite deletes symbol for user and reports whether it existed.
	RemoveFavorite(ctx context.Context, user, symbol string) (bool, error)

	// IsFavorite reports whether user has saved symbol.
	IsFavorite(ctx context.Context, user, symbol string) (bool, error)

	// ListFavorites returns the user's favorites, newest first.
	ListFavorites(ctx context.Context, user string) ([]Favorite, error)
}

// BarStore persists and retrieves OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end].
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}

// NewsStore caches articles per symbol along with when they were fetched.
type NewsStore interface {
	// WriteNews replaces the cached articles for symbol.
	WriteNews(ctx context.Context, symbol string, fetchedAt time.Time, articles []domain.Article) error

	// ReadNews returns the cached articles for symbol and when they were
	// fetched. A zero time means nothing is cached.
	ReadNews(ctx context.Context, symbol string) ([]domain.Article, time.Time, error)
}

// PositionKey is the key the reel position of user is stored under.
func PositionKey(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		user = "local"
	}
	return "reels:position:" + user
}

// NormalizeSymbol upper-cases and trims a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
