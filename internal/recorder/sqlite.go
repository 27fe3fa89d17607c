package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists score history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard history reads don't block the cycle writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			symbol_count INTEGER,
			timing_score REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS score_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id      INTEGER NOT NULL REFERENCES cycles(id),
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			last_price    REAL,
			final_score   REAL,
			base_score    REAL,
			rsi           REAL,
			atr           REAL,
			adx           REAL,
			trend_dir     TEXT,
			funding_hourly REAL,
			sub_funding   REAL,
			sub_rsi       REAL,
			sub_volume    REAL,
			sub_adx       REAL,
			sub_ma        REAL,
			sub_vpvr      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_ts ON score_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_symbol ON score_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(snap *CycleSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := snap.RefreshedAt.Unix()
	res, err := tx.Exec(`INSERT INTO cycles (timestamp, source, symbol_count, timing_score)
		VALUES (?,?,?,?)`,
		ts, snap.Source, snap.SymbolCount, snap.TimingScore,
	)
	if err != nil {
		return err
	}
	cycleID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, cs := range snap.TopScores {
		if _, err := tx.Exec(`INSERT INTO score_snapshots
			(cycle_id, timestamp, symbol, last_price, final_score, base_score,
			 rsi, atr, adx, trend_dir, funding_hourly,
			 sub_funding, sub_rsi, sub_volume, sub_adx, sub_ma, sub_vpvr)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			cycleID, ts, cs.Symbol, cs.Ticker.LastPrice, cs.FinalScore, cs.BaseScore,
			cs.RSI, cs.ATR, cs.ADX.ADX, string(cs.ADX.Direction), cs.HourlyFundingPct,
			cs.Subs.Funding, cs.Subs.RSI, cs.Subs.Volume, cs.Subs.ADX, cs.Subs.MA, cs.Subs.VPVR,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Prune deletes history older than the cutoff.
func (r *SQLiteRecorder) Prune(olderThan time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := olderThan.Unix()
	if _, err := r.db.Exec(`DELETE FROM score_snapshots WHERE timestamp < ?`, cutoff); err != nil {
		return err
	}
	_, err := r.db.Exec(`DELETE FROM cycles WHERE timestamp < ?`, cutoff)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
