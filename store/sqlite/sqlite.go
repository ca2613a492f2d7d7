/*
Package sqlite provides a SQLite-backed audit log of engine invocations.

PURPOSE:

	Every call through the API boundary (parse, project, export) is recorded
	as an immutable execution row: who called, what action, how long it took,
	the input, and the output or error. The projection engine itself has no
	dependency on this package; the API layer works with a nil store.

APPEND-ONLY ENFORCEMENT:

	Executions are never updated or deleted. There are no UPDATE or DELETE
	statements on the executions table.

KEY TABLE:

	executions: One row per API call, with JSON payloads for input/output.

INDEXES:

	idx_executions_timestamp:   Recency-ordered listing (hot path)
	idx_executions_action_type: Per-action stats

CONCURRENCY:

	Uses sync.RWMutex for thread-safety. SQLite is opened with WAL
	(Write-Ahead Logging): multiple readers don't block, single writer.

USAGE:

	store, err := sqlite.New("./data/activity.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	id, err := store.LogExecution(ctx, sqlite.Execution{
	    ActionType: sqlite.ActionProject,
	    IPAddress:  "10.0.0.1",
	    ElapsedMS:  12.4,
	    Success:    true,
	})

SEE ALSO:
  - api/handlers.go: Writes executions around each call
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Action kinds recorded in the audit log.
const (
	ActionParse   = "parse"
	ActionProject = "project"
	ActionExport  = "export"
)

// Store is the SQLite-backed execution log.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Executions (append-only audit log)
	CREATE TABLE IF NOT EXISTS executions (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		ip_address TEXT,
		action_type TEXT NOT NULL,
		tokens_used INTEGER DEFAULT 0,
		elapsed_ms REAL DEFAULT 0,
		input_json TEXT,
		output_json TEXT,
		success INTEGER DEFAULT 1,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_executions_timestamp
		ON executions(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_executions_action_type
		ON executions(action_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// Execution is one audited API call.
type Execution struct {
	ID           string
	Timestamp    time.Time
	IPAddress    string
	ActionType   string
	TokensUsed   int
	ElapsedMS    float64
	Input        json.RawMessage
	Output       json.RawMessage
	Success      bool
	ErrorMessage string
}

// Stats summarizes the execution log.
type Stats struct {
	TotalExecutions int     `json:"total_executions"`
	ParseCount      int     `json:"parse_count"`
	ProjectCount    int     `json:"project_count"`
	ExportCount     int     `json:"export_count"`
	TotalTokens     int     `json:"total_tokens"`
	AvgElapsedMS    float64 `json:"avg_elapsed_ms"`
	SuccessCount    int     `json:"success_count"`
	ErrorCount      int     `json:"error_count"`
}

// =============================================================================
// WRITE PATH
// =============================================================================

// LogExecution appends one execution to the log and returns its ID.
// A zero ID or timestamp is filled in here.
func (s *Store) LogExecution(ctx context.Context, e Execution) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = fmt.Sprintf("exec-%d", time.Now().UnixNano())
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions
		(id, timestamp, ip_address, action_type, tokens_used, elapsed_ms,
		 input_json, output_json, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Timestamp.Format(time.RFC3339Nano),
		e.IPAddress,
		e.ActionType,
		e.TokensUsed,
		e.ElapsedMS,
		nullableJSON(e.Input),
		nullableJSON(e.Output),
		boolToInt(e.Success),
		nullableString(e.ErrorMessage),
	)
	if err != nil {
		return "", fmt.Errorf("failed to log execution: %w", err)
	}
	return e.ID, nil
}

// =============================================================================
// READ PATH
// =============================================================================

// ListExecutions returns executions most recent first. Payloads are omitted;
// use GetExecution for the full record.
func (s *Store) ListExecutions(ctx context.Context, limit, offset int) ([]Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, ip_address, action_type, tokens_used,
		       elapsed_ms, success, error_message
		FROM executions
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var execs []Execution
	for rows.Next() {
		var e Execution
		var ts string
		var ip, errMsg sql.NullString
		var success int
		if err := rows.Scan(&e.ID, &ts, &ip, &e.ActionType, &e.TokensUsed,
			&e.ElapsedMS, &success, &errMsg); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		e.IPAddress = ip.String
		e.Success = success == 1
		e.ErrorMessage = errMsg.String
		execs = append(execs, e)
	}
	return execs, rows.Err()
}

// GetExecution returns one execution with full payloads, or nil if absent.
func (s *Store) GetExecution(ctx context.Context, id string) (*Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, ip_address, action_type, tokens_used,
		       elapsed_ms, input_json, output_json, success, error_message
		FROM executions WHERE id = ?`, id)

	var e Execution
	var ts string
	var ip, input, output, errMsg sql.NullString
	var success int
	err := row.Scan(&e.ID, &ts, &ip, &e.ActionType, &e.TokensUsed,
		&e.ElapsedMS, &input, &output, &success, &errMsg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	e.IPAddress = ip.String
	if input.Valid {
		e.Input = json.RawMessage(input.String)
	}
	if output.Valid {
		e.Output = json.RawMessage(output.String)
	}
	e.Success = success == 1
	e.ErrorMessage = errMsg.String
	return &e, nil
}

// Count returns the total number of executions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM executions`).Scan(&n)
	return n, err
}

// GetStats returns summary statistics over the full log.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			SUM(CASE WHEN action_type = 'parse' THEN 1 ELSE 0 END),
			SUM(CASE WHEN action_type = 'project' THEN 1 ELSE 0 END),
			SUM(CASE WHEN action_type = 'export' THEN 1 ELSE 0 END),
			COALESCE(SUM(tokens_used), 0),
			AVG(elapsed_ms),
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)
		FROM executions`).Scan(
		&st.TotalExecutions,
		&nullInt{&st.ParseCount},
		&nullInt{&st.ProjectCount},
		&nullInt{&st.ExportCount},
		&st.TotalTokens,
		&avg,
		&nullInt{&st.SuccessCount},
		&nullInt{&st.ErrorCount},
	)
	if err != nil {
		return Stats{}, err
	}
	if avg.Valid {
		st.AvgElapsedMS = avg.Float64
	}
	return st, nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

// nullInt scans a nullable integer aggregate into an int, treating NULL as 0.
type nullInt struct {
	dst *int
}

func (n *nullInt) Scan(v any) error {
	var ni sql.NullInt64
	if err := ni.Scan(v); err != nil {
		return err
	}
	if ni.Valid {
		*n.dst = int(ni.Int64)
	}
	return nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
