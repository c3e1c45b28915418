// Package httpapi provides the scout REST API: the daily reel order, per-stock
// dashboard snapshots, news, sentiment and favorites, in JSON.
package httpapi

import (
	"time"

	"scout/internal/catalog"
	"scout/internal/domain"
)

// ReelEntryJSON is one slot of the daily reel order.
type ReelEntryJSON struct {
	Position int64  `json:"position"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// TodayJSON is the full reel order for one day.
type TodayJSON struct {
	Date    string          `json:"date"`
	Seed    int64           `json:"seed"`
	Count   int             `json:"count"`
	Entries []ReelEntryJSON `json:"entries"`
}

// ReelJSON resolves one position: the entry shown there and the one after it.
type ReelJSON struct {
	Position int64         `json:"position"`
	Seed     int64         `json:"seed"`
	Current  catalog.Entry `json:"current"`
	Next     catalog.Entry `json:"next"`
}

// PositionJSON is the persisted reel position of a user.
type PositionJSON struct {
	User     string `json:"user"`
	Position int64  `json:"position"`
}

// NewsJSON lists recent articles for a symbol.
type NewsJSON struct {
	Symbol   string           `json:"symbol"`
	Company  string           `json:"company"`
	Articles []domain.Article `json:"articles"`
}

// SentimentRequest is the body of POST /api/sentiment.
type SentimentRequest struct {
	Company string `json:"company"`
}

// SentimentJSON is the sentiment reading for a company. Score is absent when
// the model could not be reached.
type SentimentJSON struct {
	Company   string   `json:"company"`
	Symbol    string   `json:"symbol"`
	Sentiment string   `json:"sentiment"`
	Score     *float64 `json:"score,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
	Headlines []string `json:"headlines"`
}

// FavoriteJSON is one saved symbol.
type FavoriteJSON struct {
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// FavoriteChangeJSON reports the outcome of adding or removing a favorite.
type FavoriteChangeJSON struct {
	Symbol  string `json:"symbol"`
	Changed bool   `json:"changed"`
}

// StatusJSON is the health check response.
type StatusJSON struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
