package repositories

import (
	"context"

	"event-handlers-api/internal/models"
)

// RecordRepository is the state store adapter for a single-key-schema table.
// Writes are unconditional: Put replaces whatever is stored under the record's
// id, and Update patches the named fields by key (creating the item if needed),
// so concurrent writers to the same id race and the last one wins.
type RecordRepository interface {
	// Put inserts a record keyed by its id
	Put(ctx context.Context, record models.Record) error

	// Update applies changes to the record stored under id
	Update(ctx context.Context, id string, changes map[string]interface{}) error

	// Get retrieves the record stored under id, returning ErrNotFound if absent
	Get(ctx context.Context, id string) (models.Record, error)

	// Scan returns up to limit records; limit <= 0 returns every record
	Scan(ctx context.Context, limit int) ([]models.Record, error)

	// Close releases any resources held by the implementation
	Close() error
}

// Driver names accepted by STATE_STORE_DRIVER
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverRedis    = "redis"
)
