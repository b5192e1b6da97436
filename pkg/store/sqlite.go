package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xingyaoww/langfuse/pkg/sessionquery"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/traces.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. It initializes the
// schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "store.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// initialize applies pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return NewStorageError("sqlite", "enable WAL", err)
		}
	}
	if s.config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", s.config.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return NewStorageError("sqlite", "set busy timeout", err)
		}
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return NewStorageError("sqlite", "enable foreign keys", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create schema", err)
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO schema_info (version) VALUES (?)", SchemaVersion,
	); err != nil {
		return NewStorageError("sqlite", "record schema version", err)
	}

	s.logger.Debug("sqlite store initialized",
		"path", s.config.Path,
		"wal", s.config.WALMode,
	)
	return nil
}

// PutTrace persists a trace with its observations and scores in one
// transaction.
func (s *SQLiteStorage) PutTrace(ctx context.Context, trace *Trace) error {
	metadata, err := json.Marshal(trace.Metadata)
	if err != nil {
		return NewStorageError("sqlite", "marshal metadata", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO traces (id, project_id, session_id, name, user_id, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trace.ID, trace.ProjectID, trace.SessionID, trace.Name,
		nullString(trace.UserID), trace.Timestamp.UTC(), string(metadata),
	); err != nil {
		return NewStorageError("sqlite", "insert trace", err)
	}

	for _, o := range trace.Observations {
		var endTime any
		if o.EndTime != nil {
			endTime = o.EndTime.UTC()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO observations (id, trace_id, type, name, start_time, end_time, model, level)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, trace.ID, o.Type, o.Name, o.StartTime.UTC(), endTime,
			nullString(o.Model), nullString(o.Level),
		); err != nil {
			return NewStorageError("sqlite", "insert observation", err)
		}
	}

	for _, sc := range trace.Scores {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scores (id, trace_id, name, value, timestamp)
			VALUES (?, ?, ?, ?, ?)`,
			sc.ID, trace.ID, sc.Name, sc.Value, sc.Timestamp.UTC(),
		); err != nil {
			return NewStorageError("sqlite", "insert score", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}
	return nil
}

// QuerySessionTraces returns the traces of a session within the optimized
// query's bounds, newest first.
func (s *SQLiteStorage) QuerySessionTraces(ctx context.Context, q sessionquery.OptimizedSessionQuery) ([]*Trace, error) {
	query := `
		SELECT id, project_id, session_id, name, user_id, timestamp, metadata
		FROM traces
		WHERE project_id = ? AND session_id = ? AND timestamp >= ?`
	args := []any{q.ProjectID, q.SessionID, q.FromTimestamp.UTC()}

	if q.ToTimestamp != nil {
		query += " AND timestamp <= ?"
		args = append(args, q.ToTimestamp.UTC())
	}

	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query traces", err)
	}
	defer rows.Close()

	var traces []*Trace
	for rows.Next() {
		trace, err := scanTrace(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan trace", err)
		}
		traces = append(traces, trace)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "iterate traces", err)
	}

	if wantsFieldGroup(q, sessionquery.FieldGroupObservations) {
		for _, trace := range traces {
			if err := s.loadObservations(ctx, trace); err != nil {
				return nil, err
			}
		}
	}
	if wantsFieldGroup(q, sessionquery.FieldGroupScores) {
		for _, trace := range traces {
			if err := s.loadScores(ctx, trace); err != nil {
				return nil, err
			}
		}
	}

	return traces, nil
}

func (s *SQLiteStorage) loadObservations(ctx context.Context, trace *Trace) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trace_id, type, name, start_time, end_time, model, level
		FROM observations WHERE trace_id = ? ORDER BY start_time`, trace.ID)
	if err != nil {
		return NewStorageError("sqlite", "query observations", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o Observation
		var endTime sql.NullTime
		var model, level sql.NullString
		if err := rows.Scan(&o.ID, &o.TraceID, &o.Type, &o.Name,
			&o.StartTime, &endTime, &model, &level); err != nil {
			return NewStorageError("sqlite", "scan observation", err)
		}
		if endTime.Valid {
			t := endTime.Time
			o.EndTime = &t
		}
		o.Model = model.String
		o.Level = level.String
		trace.Observations = append(trace.Observations, o)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadScores(ctx context.Context, trace *Trace) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trace_id, name, value, timestamp
		FROM scores WHERE trace_id = ? ORDER BY timestamp`, trace.ID)
	if err != nil {
		return NewStorageError("sqlite", "query scores", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.TraceID, &sc.Name, &sc.Value, &sc.Timestamp); err != nil {
			return NewStorageError("sqlite", "scan score", err)
		}
		trace.Scores = append(trace.Scores, sc)
	}
	return rows.Err()
}

// DeleteTracesBefore removes traces older than cutoff.
func (s *SQLiteStorage) DeleteTracesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM traces WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, NewStorageError("sqlite", "delete traces", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "rows affected", err)
	}
	return deleted, nil
}

// Ping reports whether the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

// scanTrace scans one traces row.
func scanTrace(rows *sql.Rows) (*Trace, error) {
	var trace Trace
	var userID sql.NullString
	var metadata sql.NullString

	if err := rows.Scan(&trace.ID, &trace.ProjectID, &trace.SessionID,
		&trace.Name, &userID, &trace.Timestamp, &metadata); err != nil {
		return nil, err
	}

	trace.UserID = userID.String
	if metadata.Valid && metadata.String != "" && metadata.String != "null" {
		if err := json.Unmarshal([]byte(metadata.String), &trace.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata for trace %s: %w", trace.ID, err)
		}
	}
	return &trace, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsNotFound reports whether err is a no-rows condition.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
