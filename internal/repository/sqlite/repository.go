package sqlite

import (
	"context"
	"database/sql"
	"time"

	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for key-value storage operations
type Repository interface {
	// Get returns the record stored under key, or a key not found error.
	Get(ctx context.Context, key string) (*Record, error)
	// Put stores the record, replacing any previous value for its key.
	Put(ctx context.Context, record *Record) error
	// Delete removes key, failing with a key not found error if it is absent.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	Close() error
}

// Options tunes a repository. Zero values disable the per-call timeouts.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// timeNow is replaced in tests
var timeNow = time.Now

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a new SQLite repository with per-call timeouts
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open the database", err)
	}

	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("prepare the database", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves a record by key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Record, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanRecord, key, key)
}

// Put inserts or overwrites a record
func (r *SQLiteRepository) Put(ctx context.Context, record *Record) error {
	if record.Key == "" {
		return errors.NewInvalidInputError("key", record.Key, "must not be empty")
	}

	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	record.UpdatedAt = timeNow()
	query := `
	INSERT INTO kv (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "write "+record.Key, query, record.Key, record.Value, FormatTimeForDB(record.UpdatedAt))
}

// Delete removes a record by key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM kv WHERE key = ?`
	return ExecuteForKey(ctx, r.db, "delete "+key, query, key, key)
}

// Keys lists all stored keys in ascending order
func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key FROM kv ORDER BY key ASC`
	ptrs, err := QueryMultiple(ctx, r.db, "list keys", query, ScanKeys)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ptrs))
	for i, k := range ptrs {
		keys[i] = *k
	}
	return keys, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
