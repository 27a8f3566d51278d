package sqlite

import "time"

// Record is a single slot of the key-value store. Value holds the
// serialized payload and is always overwritten wholesale.
type Record struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
