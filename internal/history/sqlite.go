package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	logger *mdwlog.Logger
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *mdwlog.Logger
}

// Open creates or opens the history database
func Open(cfg Config) (*SQLiteStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, dbError(err, "failed to create history directory", "history.Open").
			WithDetail("path", cfg.Path)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open history database", "history.Open").
			WithDetail("path", cfg.Path)
	}

	s := &SQLiteStore{
		db:     db,
		path:   cfg.Path,
		logger: logger.WithField("component", "pebble-history"),
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "history.Open").
			WithDetail("path", cfg.Path)
	}

	s.logger.Debug("history store opened", mdwlog.Fields{"path": cfg.Path})
	return s, nil
}

// Path returns the database file
func (s *SQLiteStore) Path() string {
	return s.path
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		mode TEXT NOT NULL,
		line TEXT NOT NULL,
		ok INTEGER NOT NULL,
		message TEXT
	);

	CREATE TABLE IF NOT EXISTS variables (
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (session_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// StartSession records a new session and returns its UUID
func (s *SQLiteStore) StartSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions (id, started_at) VALUES (?, ?)`, id, time.Now())
	if err != nil {
		return "", dbError(err, "failed to start session", "history.StartSession")
	}
	return id, nil
}

// EndSession stamps the end time of a session
func (s *SQLiteStore) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET ended_at = ? WHERE id = ?`, time.Now(), sessionID)
	if err != nil {
		return dbError(err, "failed to end session", "history.EndSession")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return mdwerror.Newf("unknown session %s", sessionID).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("history.EndSession")
	}
	return nil
}

// Sessions returns the most recent sessions, newest first
func (s *SQLiteStore) Sessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT s.id, s.started_at, s.ended_at, COUNT(c.id)
		FROM sessions s LEFT JOIN commands c ON c.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC, s.rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query sessions", "history.Sessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var sess Session
		var ended sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &ended, &sess.Commands); err != nil {
			return nil, dbError(err, "failed to scan session", "history.Sessions")
		}
		if ended.Valid {
			sess.EndedAt = ended.Time
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// Append records a handled command
func (s *SQLiteStore) Append(ctx context.Context, cmd *Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd.CreatedAt.IsZero() {
		cmd.CreatedAt = time.Now()
	}
	if cmd.Mode == "" {
		cmd.Mode = ModeConsole
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO commands (session_id, created_at, mode, line, ok, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cmd.SessionID, cmd.CreatedAt, string(cmd.Mode), cmd.Line, cmd.OK, cmd.Message)
	if err != nil {
		return dbError(err, "failed to insert command", "history.Append")
	}
	cmd.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the last limit commands across all sessions, oldest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Command, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, created_at, mode, line, ok, message FROM commands ORDER BY id DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query commands", "history.Recent")
	}
	defer rows.Close()

	var cmds []*Command
	for rows.Next() {
		var cmd Command
		var mode string
		var message sql.NullString
		if err := rows.Scan(&cmd.ID, &cmd.SessionID, &cmd.CreatedAt, &mode, &cmd.Line, &cmd.OK, &message); err != nil {
			return nil, dbError(err, "failed to scan command", "history.Recent")
		}
		cmd.Mode = Mode(mode)
		cmd.Message = message.String
		cmds = append(cmds, &cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read commands", "history.Recent")
	}

	for i, j := 0, len(cmds)-1; i < j; i, j = i+1, j-1 {
		cmds[i], cmds[j] = cmds[j], cmds[i]
	}
	return cmds, nil
}

// SaveVariables replaces the stored variables of a session with env
func (s *SQLiteStore) SaveVariables(ctx context.Context, sessionID string, env *value.Env) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction", "history.SaveVariables")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM variables WHERE session_id = ?`, sessionID); err != nil {
		return dbError(err, "failed to clear variables", "history.SaveVariables")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO variables (session_id, name, position, kind, value)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return dbError(err, "failed to prepare statement", "history.SaveVariables")
	}
	defer stmt.Close()

	for i, name := range env.Names() {
		v, _ := env.Get(name)
		kind, text := encodeValue(v)
		if _, err := stmt.ExecContext(ctx, sessionID, name, i, kind, text); err != nil {
			return dbError(err, "failed to insert variable", "history.SaveVariables").
				WithDetail("name", name)
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit transaction", "history.SaveVariables")
	}
	return nil
}

// LoadVariables returns the variables saved for a session in their
// original binding order
func (s *SQLiteStore) LoadVariables(ctx context.Context, sessionID string) (*value.Env, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, value FROM variables WHERE session_id = ? ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, dbError(err, "failed to query variables", "history.LoadVariables")
	}
	defer rows.Close()

	env := value.NewEnv()
	for rows.Next() {
		var name, kind, text string
		if err := rows.Scan(&name, &kind, &text); err != nil {
			return nil, dbError(err, "failed to scan variable", "history.LoadVariables")
		}
		v, err := decodeValue(kind, text)
		if err != nil {
			return nil, err
		}
		env.Set(name, v)
	}
	return env, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func dbError(err error, message, op string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(op)
}
