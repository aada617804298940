package cas

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - entries table keyed by hash, tagged with the writing session
const currentSchemaVersion = 1

// SQLiteStore persists entries in a SQLite database so snapshots survive
// the process. Every row records the session that first wrote it.
type SQLiteStore struct {
	db      *sql.DB
	session uuid.UUID
}

// OpenSQLite creates or opens the database at path. Pragmas and the schema
// are applied on every open.
func OpenSQLite(path string, session uuid.UUID) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and avoids
	// SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info().Str("path", path).Str("session", session.String()).Msg("opened snapshot store")
	return &SQLiteStore{db: db, session: session}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Put(item Hashable) (Hash, error) {
	h, data, err := encode(item)
	if err != nil {
		return 0, err
	}
	_, err = s.db.Exec(
		"INSERT OR IGNORE INTO entries (hash, session_id, data) VALUES (?, ?, ?)",
		int64(h), s.session.String(), data,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry %s: %w", h, err)
	}
	return h, nil
}

func (s *SQLiteStore) Has(hash Hash) bool {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM entries WHERE hash = ?", int64(hash)).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) getValue(h Hash) (bool, []byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM entries WHERE hash = ?", int64(h)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("select entry %s: %w", h, err)
	}
	return true, data, nil
}

// Sessions lists every session that has written to the database.
func (s *SQLiteStore) Sessions() ([]uuid.UUID, error) {
	rows, err := s.db.Query("SELECT DISTINCT session_id FROM entries ORDER BY session_id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("session id %q: %w", raw, err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
