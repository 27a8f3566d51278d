package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single key-value record from a database row
func ScanRecord(scanner Scanner) (*Record, error) {
	record := &Record{}
	var updatedAt string

	if err := scanner.Scan(&record.Key, &record.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	record.UpdatedAt = t

	return record, nil
}

// ScanKeys scans a column of keys from database rows
func ScanKeys(rows Rows) ([]*string, error) {
	var keys []*string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, &key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
