package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ KV = (*SQLiteStore)(nil)
var _ FavoriteStore = (*SQLiteStore)(nil)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user     TEXT NOT NULL,
		symbol   TEXT NOT NULL,
		name     TEXT NOT NULL DEFAULT '',
		added_at INTEGER NOT NULL,
		PRIMARY KEY (user, symbol)
	)`,
	`CREATE INDEX IF NOT EXISTS favorites_user_added ON favorites (user, added_at DESC)`,
}

// SQLiteStore implements KV and FavoriteStore backed by a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, runs the
// schema migrations and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One writer keeps modernc sqlite free of SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite migration %d: %w", i, err)
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// KV implementation
// ---------------------------------------------------------------------------

// GetItem returns the value stored under key.
func (s *SQLiteStore) GetItem(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return v, true, nil
}

// SetItem upserts value under key.
func (s *SQLiteStore) SetItem(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// DeleteItem removes key.
func (s *SQLiteStore) DeleteItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// FavoriteStore implementation
// ---------------------------------------------------------------------------

// AddFavorite inserts a favorite unless the user already has it.
func (s *SQLiteStore) AddFavorite(ctx context.Context, user string, fav Favorite) (bool, error) {
	added := fav.AddedAt
	if added.IsZero() {
		added = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user, symbol, name, added_at) VALUES (?, ?, ?, ?)`,
		user, NormalizeSymbol(fav.Symbol), fav.Name, added.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("adding favorite %s: %w", fav.Symbol, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveFavorite deletes a favorite.
func (s *SQLiteStore) RemoveFavorite(ctx context.Context, user, symbol string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user = ? AND symbol = ?`,
		user, NormalizeSymbol(symbol),
	)
	if err != nil {
		return false, fmt.Errorf("removing favorite %s: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsFavorite checks a single favorite.
func (s *SQLiteStore) IsFavorite(ctx context.Context, user, symbol string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE user = ? AND symbol = ?`,
		user, NormalizeSymbol(symbol),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking favorite %s: %w", symbol, err)
	}
	return true, nil
}

// ListFavorites returns the user's favorites, newest first.
func (s *SQLiteStore) ListFavorites(ctx context.Context, user string) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, name, added_at FROM favorites WHERE user = ?
		 ORDER BY added_at DESC, rowid DESC`,
		user,
	)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var f Favorite
		var added int64
		if err := rows.Scan(&f.Symbol, &f.Name, &added); err != nil {
			return nil, err
		}
		f.AddedAt = time.Unix(0, added)
		out = append(out, f)
	}
	return out, rows.Err()
}
