package snapshot

import (
	"testing"
	"time"

	"ShortSentinel/internal/model"
)

func TestStore_EmptyUntilFirstCycle(t *testing.T) {
	s := NewStore()
	if s.Latest() != nil {
		t.Error("fresh store must report no cycle")
	}
	if _, ok := s.Score("BTCUSDT"); ok {
		t.Error("lookup on an empty store must miss")
	}
}

func TestStore_SetAndLookup(t *testing.T) {
	s := NewStore()
	first := &Cycle{
		Scores: []model.CoinScore{
			{Symbol: "ALTUSDT", FinalScore: 72},
		},
		Source:      "mock",
		RefreshedAt: time.Now(),
	}
	s.Set(first)

	if got := s.Latest(); got != first {
		t.Fatal("Latest must return the cycle that was set")
	}

	// Symbol lookup is case-insensitive.
	cs, ok := s.Score("altusdt")
	if !ok || cs.FinalScore != 72 {
		t.Errorf("case-insensitive lookup failed: ok=%v score=%+v", ok, cs)
	}
	if _, ok := s.Score("MISSINGUSDT"); ok {
		t.Error("unknown symbol must miss")
	}

	// A newer cycle replaces the old one wholesale.
	second := &Cycle{Source: "mock", RefreshedAt: time.Now()}
	s.Set(second)
	if s.Latest() != second {
		t.Error("Set must replace the previous cycle")
	}
	if _, ok := s.Score("ALTUSDT"); ok {
		t.Error("scores from the replaced cycle must be gone")
	}
}
