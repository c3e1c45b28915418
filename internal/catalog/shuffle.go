package catalog

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

// shuffleStream is the fixed PCG stream selector. Changing it reorders every
// day's reels.
const shuffleStream = 0x5c0a7_2e31

// ErrEmptyCatalog is returned when a resolver is built without entries.
var ErrEmptyCatalog = errors.New("catalog: no entries")

// DaySeed returns the calendar date of t as YYYYMMDD, evaluated in t's own
// location. Callers pick the location; the seed is only stable within it.
func DaySeed(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// Shuffle returns a permutation of entries using a Fisher-Yates shuffle
// driven by a PCG generator seeded with seed. The input is not modified and
// the result depends only on (entries, seed).
func Shuffle(entries []Entry, seed int64) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	rng := rand.New(rand.NewPCG(uint64(seed), shuffleStream))
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Resolver maps reel positions to catalog entries through the seeded
// shuffle. The shuffled order is memoized per seed.
type Resolver struct {
	mu        sync.RWMutex
	entries   []Entry
	seed      int64
	order     []Entry
	reshuffle int
}

// NewResolver creates a Resolver over a copy of entries, shuffled with seed.
func NewResolver(entries []Entry, seed int64) (*Resolver, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	r := &Resolver{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	r.seed = seed
	r.order = Shuffle(r.entries, seed)
	r.reshuffle = 1
	return r, nil
}

// Reseed switches the resolver to seed. The order is recomputed only when the
// seed differs from the current one; it reports whether that happened.
func (r *Resolver) Reseed(seed int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seed == r.seed {
		return false
	}
	r.seed = seed
	r.order = Shuffle(r.entries, seed)
	r.reshuffle++
	return true
}

// Seed returns the seed of the current order.
func (r *Resolver) Seed() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seed
}

// Len returns the catalog length.
func (r *Resolver) Len() int {
	return len(r.entries)
}

// Resolve returns the entry shown at position, wrapping modulo the catalog
// length.
func (r *Resolver) Resolve(position int64) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return at(r.order, position)
}

// Day is one day's order and the seed it was shuffled with.
type Day struct {
	Seed  int64
	Order []Entry
}

// At returns the entry at position, wrapping modulo the order length.
func (d Day) At(position int64) Entry {
	return at(d.Order, position)
}

// ReseedDay switches the resolver to seed and returns a copy of the
// resulting order under the same lock, so Order always belongs to Seed. The
// bool reports whether the order was recomputed.
func (r *Resolver) ReseedDay(seed int64) (Day, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := seed != r.seed
	if changed {
		r.seed = seed
		r.order = Shuffle(r.entries, seed)
		r.reshuffle++
	}
	order := make([]Entry, len(r.order))
	copy(order, r.order)
	return Day{Seed: r.seed, Order: order}, changed
}

func at(order []Entry, position int64) Entry {
	n := int64(len(order))
	if n == 0 {
		return Entry{}
	}
	idx := position % n
	if idx < 0 {
		idx += n
	}
	return order[idx]
}

// Order returns a copy of the current shuffled order.
func (r *Resolver) Order() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.order))
	copy(out, r.order)
	return out
}

// Reshuffles returns how many times the order has been computed.
func (r *Resolver) Reshuffles() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reshuffle
}
