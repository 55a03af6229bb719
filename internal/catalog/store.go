package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store persists scan runs and the deduplicated satellite set in SQLite.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	logger *zap.Logger
}

// Run records one completed scan invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Radius     int
	Exponent   uint
	Rounds     int
	Stars      int
	Satellites int
	Twins      int
}

// StoreStats summarizes the catalog contents.
type StoreStats struct {
	Runs       int
	Stars      int
	Satellites int
	Twins      int
	MinStar    int64
	MaxStar    int64
}

// Open initializes the SQLite catalog at the given path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}
	// synchronous=NORMAL is safe under WAL and much faster than FULL.
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logger.Debug("failed to set sqlite synchronous=NORMAL", zap.Error(err))
	}

	store := &Store{db: db, dbPath: path, logger: logger}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		radius INTEGER NOT NULL,
		exponent INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		stars INTEGER NOT NULL,
		satellites INTEGER NOT NULL,
		twins INTEGER NOT NULL
	);
	`

	satellitesTable := `
	CREATE TABLE IF NOT EXISTS satellites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		star INTEGER NOT NULL,
		gap INTEGER NOT NULL,
		twin INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(star, gap)
	);
	CREATE INDEX IF NOT EXISTS idx_satellites_star ON satellites(star);
	CREATE INDEX IF NOT EXISTS idx_satellites_run ON satellites(run_id);
	`

	for _, schema := range []string{runsTable, satellitesTable} {
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun records a run and its satellites in one transaction. Satellites
// already present from earlier runs are kept, not duplicated. Returns the
// run id (generated when run.ID is empty).
func (s *Store) SaveRun(run Run, sats []Satellite) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, finished_at, radius, exponent, rounds, stars, satellites, twins)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Radius, run.Exponent, run.Rounds,
		run.Stars, run.Satellites, run.Twins,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO satellites (run_id, star, gap, twin)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare satellite insert: %w", err)
	}
	defer stmt.Close()

	for _, sat := range sats {
		twin := 0
		if sat.Twin() {
			twin = 1
		}
		if _, err := stmt.Exec(run.ID, sat.Star, sat.Gap, twin); err != nil {
			return "", fmt.Errorf("failed to insert satellite (%d,%d): %w", sat.Star, sat.Gap, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	s.logger.Info("saved scan run",
		zap.String("run_id", run.ID),
		zap.Int("satellites", len(sats)))
	return run.ID, nil
}

// Import loads catalog rows without a run association, returning how many
// rows were actually new.
func (s *Store) Import(sats []Satellite) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO satellites (star, gap, twin)
		VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, sat := range sats {
		twin := 0
		if sat.Twin() {
			twin = 1
		}
		res, err := stmt.Exec(sat.Star, sat.Gap, twin)
		if err != nil {
			return 0, fmt.Errorf("failed to import satellite (%d,%d): %w", sat.Star, sat.Gap, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return inserted, nil
}

// Satellites returns every catalog row ordered by (star, gap).
func (s *Store) Satellites() ([]Satellite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT star, gap FROM satellites ORDER BY star, gap`)
	if err != nil {
		return nil, fmt.Errorf("failed to query satellites: %w", err)
	}
	defer rows.Close()

	var sats []Satellite
	for rows.Next() {
		var sat Satellite
		if err := rows.Scan(&sat.Star, &sat.Gap); err != nil {
			return nil, fmt.Errorf("failed to scan satellite: %w", err)
		}
		sats = append(sats, sat)
	}
	return sats, rows.Err()
}

// Runs returns recorded runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, radius, exponent, rounds, stars, satellites, twins
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished,
			&run.Radius, &run.Exponent, &run.Rounds,
			&run.Stars, &run.Satellites, &run.Twins); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			run.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			run.FinishedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetStats returns catalog-wide counters.
func (s *Store) GetStats() (StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st StoreStats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT star),
		       COALESCE(SUM(twin), 0),
		       COALESCE(MIN(star), 0),
		       COALESCE(MAX(star), 0)
		FROM satellites`).Scan(&st.Satellites, &st.Stars, &st.Twins, &st.MinStar, &st.MaxStar)
	if err != nil {
		return StoreStats{}, fmt.Errorf("failed to read satellite stats: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&st.Runs); err != nil {
		return StoreStats{}, fmt.Errorf("failed to count runs: %w", err)
	}
	return st, nil
}
