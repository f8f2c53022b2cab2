package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists runs and their per-view trade results.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the results database and runs migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLite{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			dataset     TEXT,
			filter_desc TEXT,
			trigger_bar INTEGER,
			direction   TEXT,
			target_pct  REAL,
			stop_pct    REAL,
			views       INTEGER,
			wins        INTEGER,
			losses      INTEGER,
			skipped     INTEGER,
			decisive    INTEGER,
			win_rate    REAL,
			avg_pnl     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES scan_runs(id),
			view_key    TEXT,
			outcome     TEXT,
			pnl         REAL,
			entry       REAL,
			target      REAL,
			stop        REAL,
			skip_reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON scan_trades(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:32], err)
		}
	}
	return nil
}

func (r *SQLite) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	s := run.Summary
	res, err := tx.Exec(`INSERT INTO scan_runs
		(timestamp, dataset, filter_desc, trigger_bar, direction, target_pct, stop_pct,
		 views, wins, losses, skipped, decisive, win_rate, avg_pnl)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Dataset, run.FilterDesc,
		run.Params.TriggerBar, string(run.Params.Direction), run.Params.TargetPct, run.Params.StopPct,
		run.Views, s.Wins, s.Losses, s.Skipped, s.Decisive, s.WinRate, s.AvgPnL,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, t := range s.Results {
		if _, err := tx.Exec(`INSERT INTO scan_trades
			(run_id, view_key, outcome, pnl, entry, target, stop, skip_reason)
			VALUES (?,?,?,?,?,?,?,?)`,
			runID, t.ViewKey, string(t.Outcome), t.PnL, t.Entry, t.Target, t.Stop, string(t.SkipReason),
		); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ViewKey, err)
		}
	}

	return tx.Commit()
}

func (r *SQLite) Close() error {
	return r.db.Close()
}
