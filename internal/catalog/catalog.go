// Package catalog holds the fixed company reference data and the daily
// reel ordering derived from it.
package catalog

import (
	"sort"
	"strings"
)

// Entry is one company that can be shown as a reel or returned by search.
type Entry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// IsZero reports whether e is the zero Entry.
func (e Entry) IsZero() bool {
	return e.Symbol == "" && e.Name == ""
}

// Reels returns a copy of the reel catalog in its canonical order.
func Reels() []Entry {
	out := make([]Entry, reelCount)
	copy(out, Suggestions[:reelCount])
	return out
}

// Lookup returns the entry for symbol (case-insensitive) from entries.
func Lookup(entries []Entry, symbol string) (Entry, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, e := range entries {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// Search returns up to limit entries whose symbol or name matches query,
// case-insensitively. Exact symbol matches rank first, then symbol prefixes,
// then name prefixes, then substring matches anywhere. A limit <= 0 means no
// limit.
func Search(entries []Entry, query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type hit struct {
		entry Entry
		rank  int
		idx   int
	}
	var hits []hit
	for i, e := range entries {
		sym := strings.ToLower(e.Symbol)
		name := strings.ToLower(e.Name)
		rank := -1
		switch {
		case sym == q:
			rank = 0
		case strings.HasPrefix(sym, q):
			rank = 1
		case strings.HasPrefix(name, q):
			rank = 2
		case strings.Contains(sym, q), strings.Contains(name, q):
			rank = 3
		}
		if rank >= 0 {
			hits = append(hits, hit{entry: e, rank: rank, idx: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].idx < hits[j].idx
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}
