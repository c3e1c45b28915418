package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ KV = (*MemoryStore)(nil)
var _ FavoriteStore = (*MemoryStore)(nil)

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
	favs  map[string]map[string]memFavorite // user -> symbol
	seq   int64
	now   func() time.Time
}

type memFavorite struct {
	Favorite
	seq int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
		favs:  make(map[string]map[string]memFavorite),
		now:   time.Now,
	}
}

// GetItem returns the value under key.
func (m *MemoryStore) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// DeleteItem removes key.
func (m *MemoryStore) DeleteItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// AddFavorite saves a favorite unless it already exists.
func (m *MemoryStore) AddFavorite(_ context.Context, user string, fav Favorite) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fav.Symbol = NormalizeSymbol(fav.Symbol)
	if fav.AddedAt.IsZero() {
		fav.AddedAt = m.now()
	}
	byUser := m.favs[user]
	if byUser == nil {
		byUser = make(map[string]memFavorite)
		m.favs[user] = byUser
	}
	if _, ok := byUser[fav.Symbol]; ok {
		return false, nil
	}
	m.seq++
	byUser[fav.Symbol] = memFavorite{Favorite: fav, seq: m.seq}
	return true, nil
}

// RemoveFavorite deletes a favorite.
func (m *MemoryStore) RemoveFavorite(_ context.Context, user, symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = NormalizeSymbol(symbol)
	if _, ok := m.favs[user][symbol]; !ok {
		return false, nil
	}
	delete(m.favs[user], symbol)
	return true, nil
}

// IsFavorite checks a single favorite.
func (m *MemoryStore) IsFavorite(_ context.Context, user, symbol string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.favs[user][NormalizeSymbol(symbol)]
	return ok, nil
}

// ListFavorites returns the user's favorites, newest first.
func (m *MemoryStore) ListFavorites(_ context.Context, user string) ([]Favorite, error) {
	m.mu.RLock()
	all := make([]memFavorite, 0, len(m.favs[user]))
	for _, f := range m.favs[user] {
		all = append(all, f)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].AddedAt.Equal(all[j].AddedAt) {
			return all[i].AddedAt.After(all[j].AddedAt)
		}
		return all[i].seq > all[j].seq
	})
	out := make([]Favorite, len(all))
	for i, f := range all {
		out[i] = f.Favorite
	}
	return out, nil
}
