package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"tasklist/internal/errors"
)

// HandleDatabaseError converts a driver error into a storage or timeout error
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, 0)
	}
	return errors.NewStorageError(operation, err)
}

// ValidateRowsAffected returns a key not found error when result touched no row
func ValidateRowsAffected(result sql.Result, key string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("count changed rows", err)
	}
	if rows == 0 {
		return errors.NewKeyNotFoundError(key)
	}
	return nil
}

// Execute executes a statement whose affected row count does not matter
func Execute(ctx context.Context, db *sql.DB, operation, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleDatabaseError(operation, err)
	}
	return nil
}

// ExecuteForKey executes a statement that must touch the row stored under key
func ExecuteForKey(ctx context.Context, db *sql.DB, operation, query, key string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError(operation, err)
	}
	return ValidateRowsAffected(result, key)
}

// QuerySingle scans the one row stored under key
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), key string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewKeyNotFoundError(key)
		}
		return nil, HandleDatabaseError("read "+key, err)
	}
	return result, nil
}

// QueryMultiple scans every row a query returns
func QueryMultiple[T any](ctx context.Context, db *sql.DB, operation, query string, scanFunc func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError(operation, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError(operation, err)
	}
	return results, nil
}
