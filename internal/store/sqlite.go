// ABOUTME: SQLite implementation of the EventStore interface using modernc.org/sqlite
// ABOUTME: Persists agent lifecycle events with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements the EventStore interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != MemoryPath {
		// Ensure parent directory exists
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: gets its own database
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS agent_events (
			event_id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL,
			kind     TEXT NOT NULL,
			detail   TEXT NOT NULL DEFAULT '',
			ts       TEXT NOT NULL,

			CHECK (kind IN ('connect', 'register', 'path_register', 'path_unregister', 'disconnect', 'evict'))
		);

		CREATE INDEX IF NOT EXISTS idx_agent_events_agent_ts
			ON agent_events(agent_id, ts);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// RecordEvent appends an event to the agent_events table.
func (s *SQLiteStore) RecordEvent(ctx context.Context, e *AgentEvent) error {
	if err := prepareEvent(e, uuid.NewString); err != nil {
		return err
	}

	query := `
		INSERT INTO agent_events (event_id, agent_id, kind, detail, ts)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.AgentID,
		string(e.Kind),
		e.Detail,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting agent event: %w", err)
	}

	s.logger.Debug("recorded agent event",
		"id", e.ID,
		"agent_id", e.AgentID,
		"kind", e.Kind,
	)
	return nil
}

// ListEvents returns an agent's most recent events, newest first.
func (s *SQLiteStore) ListEvents(ctx context.Context, agentID string, limit int) ([]*AgentEvent, error) {
	query := `
		SELECT event_id, agent_id, kind, detail, ts
		FROM agent_events
		WHERE agent_id = ?
		ORDER BY ts DESC, rowid DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, agentID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying agent events: %w", err)
	}
	defer rows.Close()

	var events []*AgentEvent
	for rows.Next() {
		e, err := scanAgentEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agent events: %w", err)
	}

	return events, nil
}

// scanAgentEvent scans a row into an AgentEvent.
func scanAgentEvent(scanner interface{ Scan(dest ...any) error }) (*AgentEvent, error) {
	var e AgentEvent
	var kind, ts string
	if err := scanner.Scan(&e.ID, &e.AgentID, &kind, &e.Detail, &ts); err != nil {
		return nil, fmt.Errorf("scanning agent event: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing event timestamp: %w", err)
	}
	e.Kind = EventKind(kind)
	e.Timestamp = parsed
	return &e, nil
}

// Compile-time check that SQLiteStore implements EventStore.
var _ EventStore = (*SQLiteStore)(nil)
