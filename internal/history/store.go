// Package history keeps an append-only log of route requests in DuckDB.
// Recording is best-effort: a history failure is logged and never affects
// session state.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// Entry is one recorded route request.
type Entry struct {
	ID          int    `json:"id"`
	RequestedAt int64  `json:"requestedAt"` // Unix ms
	SessionID   string `json:"sessionId"`
	StartID     string `json:"startId"`
	EndID       string `json:"endId"`
	Outcome     string `json:"outcome"` // routeDisplayed | noRouteFound | error
	Waypoints   int    `json:"waypoints"`
	Length      int    `json:"length"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Outcome values for recorded requests.
const (
	OutcomeRouteDisplayed = "routeDisplayed"
	OutcomeNoRouteFound   = "noRouteFound"
	OutcomeError          = "error"
)

// Store is a DuckDB-backed route request log.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	nextID int
}

// NewStore opens (or creates) the history database at dbPath. An empty path
// opens an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS route_requests (
			id           INTEGER PRIMARY KEY,
			requested_at BIGINT NOT NULL,
			session_id   VARCHAR NOT NULL,
			start_id     VARCHAR NOT NULL,
			end_id       VARCHAR NOT NULL,
			outcome      VARCHAR NOT NULL,
			waypoints    INTEGER NOT NULL,
			length       INTEGER NOT NULL,
			elapsed_ms   BIGINT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	s := &Store{db: db}
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM route_requests`).Scan(&s.nextID); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read history high-water mark: %w", err)
	}

	fmt.Printf("[History] Store ready (path=%q, entries up to id %d)\n", dbPath, s.nextID)
	return s, nil
}

// Record appends a route request to the log. The entry's ID and RequestedAt
// are assigned here when unset.
func (s *Store) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	e.ID = s.nextID
	if e.RequestedAt == 0 {
		e.RequestedAt = time.Now().UnixMilli()
	}

	_, err := s.db.Exec(`
		INSERT INTO route_requests (id, requested_at, session_id, start_id, end_id, outcome, waypoints, length, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RequestedAt, e.SessionID, e.StartID, e.EndID, e.Outcome, e.Waypoints, e.Length, e.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record route request: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, requested_at, session_id, start_id, end_id, outcome, waypoints, length, elapsed_ms
		FROM route_requests
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RequestedAt, &e.SessionID, &e.StartID, &e.EndID,
			&e.Outcome, &e.Waypoints, &e.Length, &e.ElapsedMs); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
