package recorder

import (
	"time"

	"ShortSentinel/internal/model"
)

// CycleSnapshot holds the data recorded after one completed refresh cycle.
type CycleSnapshot struct {
	RefreshedAt time.Time
	Source      string
	SymbolCount int
	TimingScore float64
	TopScores   []model.CoinScore
}

// Recorder persists score history for the dashboard's history charts.
type Recorder interface {
	RecordCycle(snap *CycleSnapshot) error
	Prune(olderThan time.Time) error
	Close() error
}
