package transcriptcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"narralign/internal/transcript"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases must be cleared or deleted.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no cached transcript exists for a fingerprint.
var ErrNotFound = errors.New("transcript not cached")

// Store manages transcript persistence backed by SQLite.
type Store struct {
	db        *sql.DB
	lock      *flock.Flock
	path      string
	sessionID string
}

// Open initializes or connects to the cache database in dir. The store
// holds a file lock for its lifetime; a second concurrent open fails.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "transcripts.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("cache at %s is in use by another process", dir)
	}

	dbPath := filepath.Join(dir, "transcripts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath, sessionID: uuid.NewString()}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'narralign cache clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Fingerprint returns the content hash used to key cache entries for the
// file at path.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Put stores a parsed transcript under the given fingerprint, replacing
// any previous entry.
func (s *Store) Put(ctx context.Context, fingerprint string, t *transcript.Transcript) error {
	wordsJSON, err := json.Marshal(t.Words)
	if err != nil {
		return fmt.Errorf("marshal words: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts
            (fingerprint, file_path, language, words_json, full_text, session_id, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fingerprint,
		t.FilePath,
		t.Language,
		string(wordsJSON),
		t.FullText,
		s.sessionID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}
	return nil
}

// Get fetches a cached transcript by fingerprint. Returns ErrNotFound
// when no entry exists.
func (s *Store) Get(ctx context.Context, fingerprint string) (*transcript.Transcript, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT file_path, language, words_json, full_text FROM transcripts WHERE fingerprint = ?`,
		fingerprint,
	)
	var t transcript.Transcript
	var wordsJSON string
	err := row.Scan(&t.FilePath, &t.Language, &wordsJSON, &t.FullText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	if err := json.Unmarshal([]byte(wordsJSON), &t.Words); err != nil {
		return nil, fmt.Errorf("unmarshal words: %w", err)
	}
	return &t, nil
}

// Load returns the parsed transcript for path, reading it from the cache
// when the file contents are unchanged. The second return reports whether
// the cache served the entry.
func (s *Store) Load(ctx context.Context, path string) (*transcript.Transcript, bool, error) {
	fingerprint, err := Fingerprint(path)
	if err != nil {
		return nil, false, err
	}

	cached, err := s.Get(ctx, fingerprint)
	if err == nil {
		return cached, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	parsed, err := transcript.LoadJSON(path)
	if err != nil {
		return nil, false, err
	}
	if err := s.Put(ctx, fingerprint, parsed); err != nil {
		return nil, false, err
	}
	return parsed, false, nil
}

// Count returns the number of cached transcripts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM transcripts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return count, nil
}

// Clear removes every cached transcript.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transcripts"); err != nil {
		return fmt.Errorf("clear transcripts: %w", err)
	}
	return nil
}
