package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists discoveries to a SQLite database.
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

	// WAL mode for better concurrent read performance (Grafana reads while bot writes).
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
		`CREATE TABLE IF NOT EXISTS discoveries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			pool_id        TEXT NOT NULL,
			baseline_price REAL,
			ath_value      REAL,
			ath_precise    INTEGER,
			gain_percent   REAL,
			gain_tier      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_discoveries_ts ON discoveries(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_discoveries_symbol ON discoveries(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordDiscovery(rec *DiscoveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	precise := 0
	if rec.Ath.Precise {
		precise = 1
	}
	_, err := r.db.Exec(`INSERT INTO discoveries
		(timestamp, symbol, pool_id, baseline_price, ath_value, ath_precise, gain_percent, gain_tier)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.DiscoveredAt, rec.Symbol, rec.PoolID, rec.BaselinePrice,
		rec.Ath.Value, precise, rec.Gain.GainPercent, string(rec.Gain.Tier),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
