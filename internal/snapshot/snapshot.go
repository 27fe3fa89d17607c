// Package snapshot holds the latest completed refresh cycle for readers.
// Cycles are replaced wholesale; nothing is mutated in place, so readers
// can hold a returned cycle across requests safely.
package snapshot

import (
	"strings"
	"sync"
	"time"

	"ShortSentinel/internal/model"
)

// Cycle is the output of one completed refresh pass, ranked and timed.
type Cycle struct {
	Scores      []model.CoinScore
	Market      *model.MarketPattern
	TimingScore float64
	Source      string // fetcher name
	RefreshedAt time.Time
}

// Store is a concurrency-safe holder of the latest Cycle.
type Store struct {
	mu    sync.RWMutex
	cycle *Cycle
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current cycle.
func (s *Store) Set(c *Cycle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle = c
}

// Latest returns the current cycle, or nil before the first refresh
// completes. The returned cycle must be treated as read-only.
func (s *Store) Latest() *Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycle
}

// Score looks up one symbol's score in the current cycle.
func (s *Store) Score(symbol string) (model.CoinScore, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cycle == nil {
		return model.CoinScore{}, false
	}
	for _, cs := range s.cycle.Scores {
		if strings.EqualFold(cs.Symbol, symbol) {
			return cs, true
		}
	}
	return model.CoinScore{}, false
}
