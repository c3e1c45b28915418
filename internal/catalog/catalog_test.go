package catalog

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedSymbols(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	sort.Strings(out)
	return out
}

func TestReelsIsPrefixOfSuggestions(t *testing.T) {
	reels := Reels()
	require.Len(t, reels, reelCount)
	assert.Equal(t, Suggestions[:reelCount], reels)

	// Mutating the copy must not touch the package data.
	reels[0].Symbol = "XXXX"
	assert.Equal(t, "AAPL", Suggestions[0].Symbol)
}

func TestSuggestionsHaveUniqueSymbols(t *testing.T) {
	seen := make(map[string]bool, len(Suggestions))
	for _, e := range Suggestions {
		require.NotEmpty(t, e.Symbol)
		require.NotEmpty(t, e.Name)
		assert.False(t, seen[e.Symbol], "duplicate symbol %s", e.Symbol)
		seen[e.Symbol] = true
	}
}

func TestDaySeed(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ts := time.Date(2025, 3, 9, 23, 30, 0, 0, ny)
	assert.Equal(t, int64(20250309), DaySeed(ts))
	// The same instant is already the next day in UTC.
	assert.Equal(t, int64(20250310), DaySeed(ts.UTC()))
}

func TestShuffleIsDeterministic(t *testing.T) {
	reels := Reels()
	a := Shuffle(reels, 20250101)
	b := Shuffle(reels, 20250101)
	assert.Equal(t, a, b)
	assert.Equal(t, Reels(), reels, "input must not be modified")
}

func TestShuffleIsPermutation(t *testing.T) {
	reels := Reels()
	want := sortedSymbols(reels)
	for seed := int64(20240101); seed < 20240131; seed++ {
		got := Shuffle(reels, seed)
		require.Len(t, got, len(reels))
		assert.Equal(t, want, sortedSymbols(got), "seed %d", seed)
	}
}

func TestShuffleVariesWithSeed(t *testing.T) {
	reels := Reels()
	base := Shuffle(reels, 20250101)
	differs := 0
	for seed := int64(20250102); seed < 20250112; seed++ {
		if !assert.ObjectsAreEqual(base, Shuffle(reels, seed)) {
			differs++
		}
	}
	assert.Greater(t, differs, 0)
}

func TestShuffleUniformFirstSlot(t *testing.T) {
	entries := []Entry{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}, {Symbol: "D"}}
	counts := make(map[string]int)
	const runs = 4000
	for seed := int64(0); seed < runs; seed++ {
		counts[Shuffle(entries, seed)[0].Symbol]++
	}
	for _, e := range entries {
		// Expect ~1000 each; allow a generous band.
		assert.InDelta(t, runs/len(entries), counts[e.Symbol], 150, "symbol %s", e.Symbol)
	}
}

func TestShuffleSmallInputs(t *testing.T) {
	assert.Empty(t, Shuffle(nil, 1))
	one := []Entry{{Symbol: "ONLY", Name: "Only Co"}}
	assert.Equal(t, one, Shuffle(one, 42))
}

func TestNewResolverRejectsEmpty(t *testing.T) {
	_, err := NewResolver(nil, 1)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestResolverDeterminismAndWraparound(t *testing.T) {
	r, err := NewResolver(Reels(), 20250615)
	require.NoError(t, err)
	n := int64(r.Len())

	for p := int64(0); p < 3*n; p++ {
		first := r.Resolve(p)
		assert.Equal(t, first, r.Resolve(p), "position %d", p)
		assert.Equal(t, first, r.Resolve(p+n), "wraparound at %d", p)
	}

	again, err := NewResolver(Reels(), 20250615)
	require.NoError(t, err)
	assert.Equal(t, r.Order(), again.Order())
}

func TestResolverNextIsDistinct(t *testing.T) {
	r, err := NewResolver(Reels(), 20250615)
	require.NoError(t, err)
	assert.NotEqual(t, r.Resolve(0), r.Resolve(1))

	single, err := NewResolver([]Entry{{Symbol: "ONLY"}}, 7)
	require.NoError(t, err)
	assert.Equal(t, single.Resolve(0), single.Resolve(1))
}

func TestResolverReseedMemoizes(t *testing.T) {
	r, err := NewResolver(Reels(), 20250101)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Reshuffles())

	for i := 0; i < 100; i++ {
		r.Resolve(int64(i))
	}
	assert.False(t, r.Reseed(20250101))
	assert.Equal(t, 1, r.Reshuffles())

	assert.True(t, r.Reseed(20250102))
	assert.Equal(t, 2, r.Reshuffles())
	assert.Equal(t, int64(20250102), r.Seed())
	assert.Equal(t, Shuffle(Reels(), 20250102), r.Order())
}

func TestSearch(t *testing.T) {
	got := Search(Suggestions, "ms", 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "MS", got[0].Symbol, "exact symbol match ranks first")
	assert.Equal(t, "MSFT", got[1].Symbol)

	got = Search(Suggestions, "coca", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "KO", got[0].Symbol)

	assert.Len(t, Search(Suggestions, "a", 3), 3)
	assert.Nil(t, Search(Suggestions, "   ", 10))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(Suggestions, " nvda ")
	require.True(t, ok)
	assert.Equal(t, "NVIDIA", e.Name)

	_, ok = Lookup(Suggestions, "NOPE")
	assert.False(t, ok)
}

func TestResolverReseedDay(t *testing.T) {
	r, err := NewResolver(Reels(), 20250101)
	require.NoError(t, err)

	day, changed := r.ReseedDay(20250101)
	assert.False(t, changed)
	assert.Equal(t, int64(20250101), day.Seed)
	assert.Equal(t, Shuffle(Reels(), 20250101), day.Order)

	day, changed = r.ReseedDay(20250102)
	assert.True(t, changed)
	assert.Equal(t, int64(20250102), day.Seed)
	assert.Equal(t, r.Order(), day.Order)

	n := int64(len(day.Order))
	assert.Equal(t, day.Order[3], day.At(3))
	assert.Equal(t, day.Order[0], day.At(n))
	assert.Equal(t, Entry{}, Day{}.At(0))

	// The snapshot survives a later reseed.
	held := day.At(0)
	r.ReseedDay(20250103)
	assert.Equal(t, held, day.At(0))
	assert.Equal(t, Shuffle(Reels(), 20250102)[0], day.At(0))
}
