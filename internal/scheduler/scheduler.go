package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"ShortSentinel/internal/collector"
	"ShortSentinel/internal/recorder"
	"ShortSentinel/internal/seasonal"
	"ShortSentinel/internal/snapshot"
	"ShortSentinel/internal/strategy"
)

// Scheduler drives the periodic refresh and maintenance tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Store     *snapshot.Store
	Recorder  recorder.Recorder
	Ctx       context.Context

	ExcludeTopVolume int
	RetentionDays    int
	TopKRecorded     int

	mu            sync.Mutex
	cancelCurrent context.CancelFunc
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *strategy.Engine, store *snapshot.Store, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:             cron.New(cron.WithSeconds()),
		Collector:        col,
		Engine:           eng,
		Store:            store,
		Recorder:         rec,
		Ctx:              ctx,
		ExcludeTopVolume: seasonal.DefaultMajorsExcluded,
		RetentionDays:    30,
		TopKRecorded:     20,
	}
}

// RegisterAll registers the refresh and history-prune tasks.
func (s *Scheduler) RegisterAll(refreshCron, pruneCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and any in-flight refresh.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancelCurrent != nil {
		s.cancelCurrent()
	}
	s.mu.Unlock()
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (startup warm-up).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// beginCycle cancels any still-running predecessor and returns the context
// for the new cycle. A stale in-flight pass must fail open rather than race
// a fresher one.
func (s *Scheduler) beginCycle() (context.Context, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelCurrent != nil {
		s.cancelCurrent()
	}
	ctx, cancel := context.WithCancel(s.Ctx)
	s.cancelCurrent = cancel
	return ctx, cancel
}

func (s *Scheduler) refreshTask() {
	ctx, cancel := s.beginCycle()
	defer cancel()

	log.Println("[INFO] running refresh cycle")
	started := time.Now()

	result, err := s.Collector.Collect(ctx)
	if err != nil {
		log.Printf("[ERROR] refresh collect: %v", err)
		return
	}
	if len(result.Scores) == 0 {
		log.Println("[WARN] refresh produced no scores, keeping previous cycle")
		return
	}

	// Market-wide seasonality from the altcoin universe, then one timing
	// score shared by every symbol this cycle.
	market := seasonal.AggregateMarket(result.Patterns, s.ExcludeTopVolume)
	timing := seasonal.TimingScore(market, time.Now())

	for i := range result.Scores {
		s.Engine.Score(&result.Scores[i])
		s.Engine.ApplyTiming(&result.Scores[i], timing)
	}
	strategy.Rank(result.Scores)

	if err := ctx.Err(); err != nil {
		log.Printf("[INFO] refresh cycle superseded before publish: %v", err)
		return
	}

	cycle := &snapshot.Cycle{
		Scores:      result.Scores,
		Market:      market,
		TimingScore: timing,
		Source:      s.Collector.Fetcher.Name(),
		RefreshedAt: time.Now(),
	}
	s.Store.Set(cycle)
	log.Printf("[INFO] refresh cycle done: %d symbols in %s, timing=%.2f",
		len(result.Scores), time.Since(started).Round(time.Millisecond), timing)

	topK := len(cycle.Scores)
	if s.TopKRecorded > 0 && topK > s.TopKRecorded {
		topK = s.TopKRecorded
	}
	if err := s.Recorder.RecordCycle(&recorder.CycleSnapshot{
		RefreshedAt: cycle.RefreshedAt,
		Source:      cycle.Source,
		SymbolCount: len(cycle.Scores),
		TimingScore: timing,
		TopScores:   cycle.Scores[:topK],
	}); err != nil {
		log.Printf("[ERROR] record cycle: %v", err)
	}
}

func (s *Scheduler) pruneTask() {
	cutoff := time.Now().AddDate(0, 0, -s.RetentionDays)
	if err := s.Recorder.Prune(cutoff); err != nil {
		log.Printf("[ERROR] prune history: %v", err)
		return
	}
	log.Printf("[INFO] pruned history older than %s", cutoff.Format("2006-01-02"))
}
