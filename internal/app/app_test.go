package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/config"
	"scout/internal/store"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = dir
	cfg.Storage.SQLitePath = filepath.Join(dir, "db", "scout.db")
	cfg.Storage.StatePath = filepath.Join(dir, "state.json")
	return cfg
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), testConfig(t, "memory"), nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.Sentiment)
	assert.Nil(t, s.Loader.Sentiment)
	assert.NotNil(t, s.Loader.Bars)
	assert.Equal(t, 8, s.Loader.NewsLimit)

	require.NoError(t, s.KV.SetItem("k", "v"))
	v, ok, err := s.KV.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpenSQLitePersistsPosition(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	s, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.KV.SetItem(store.PositionKey("alice"), "12"))
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	eng, err := s.NewEngine("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(12), eng.Position())
}

func TestOpenStoreBackends(t *testing.T) {
	cfg := testConfig(t, "file")
	kv, favs, closer, err := OpenStore(cfg.Storage, nil)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &store.FileStore{}, kv)
	assert.IsType(t, &store.MemoryStore{}, favs)

	cfg.Storage.Backend = "redis"
	_, _, _, err = OpenStore(cfg.Storage, nil)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestNewsSources(t *testing.T) {
	assert.Len(t, newsSources(config.Alpaca{}), 3)

	src := newsSources(config.Alpaca{APIKey: "k", APISecret: "s"})
	require.Len(t, src, 4)
	assert.Equal(t, "alpaca", src[0].Name())
}
