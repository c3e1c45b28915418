package reel

import (
	"log/slog"
	"strconv"
	"strings"
)

// Storage is the durable key-value store the position is persisted in.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
}

// Sequencer owns the reel position. The position only ever grows, one step
// per completed transition, and is written through to Storage.
//
// A Storage failure switches the sequencer to memory-only mode for the rest
// of its life; the position keeps advancing but is no longer persisted.
type Sequencer struct {
	store      Storage
	key        string
	pos        int64
	memoryOnly bool
	log        *slog.Logger
}

// NewSequencer restores the position stored under key. Missing, malformed or
// negative values start at 0. A nil store gives a memory-only sequencer.
func NewSequencer(store Storage, key string, log *slog.Logger) *Sequencer {
	if log == nil {
		log = slog.Default()
	}
	s := &Sequencer{store: store, key: key, log: log.With("component", "sequencer")}
	if store == nil {
		s.memoryOnly = true
		return s
	}

	raw, ok, err := store.GetItem(key)
	switch {
	case err != nil:
		s.log.Warn("reading reel position, continuing in memory", "key", key, "error", err)
		s.memoryOnly = true
	case !ok:
		s.log.Debug("no stored reel position", "key", key)
	default:
		pos, perr := ParsePosition(raw)
		if perr != nil {
			s.log.Debug("ignoring malformed reel position", "key", key, "value", raw, "error", perr)
		} else {
			s.pos = pos
		}
	}
	return s
}

// ParsePosition parses a stored or user-supplied position. Surrounding space
// is ignored; negative values are rejected.
func ParsePosition(raw string) (int64, error) {
	pos, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if pos < 0 {
		return 0, strconv.ErrRange
	}
	return pos, nil
}

// Get returns the current position.
func (s *Sequencer) Get() int64 {
	return s.pos
}

// MemoryOnly reports whether persistence has been given up.
func (s *Sequencer) MemoryOnly() bool {
	return s.memoryOnly
}

// advance increments the position and persists it before returning. Only the
// engine calls it, once per finished transition.
func (s *Sequencer) advance() int64 {
	s.pos++
	if s.memoryOnly {
		return s.pos
	}
	if err := s.store.SetItem(s.key, strconv.FormatInt(s.pos, 10)); err != nil {
		s.log.Warn("persisting reel position, continuing in memory", "key", s.key, "position", s.pos, "error", err)
		s.memoryOnly = true
	}
	return s.pos
}
