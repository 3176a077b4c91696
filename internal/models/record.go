package models

import (
	"time"

	"github.com/google/uuid"
)

// Record type discriminators
const (
	RecordTypeS3Processing  = "s3_processing"
	RecordTypeAPIProcessing = "api_processing"
	RecordTypeUser          = "user"
)

// Record field names shared by all flows
const (
	FieldID        = "id"
	FieldType      = "type"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

// TimestampLayout is the ISO-8601 layout used for every *_at field
const TimestampLayout = time.RFC3339

// Record is a persisted unit of work keyed by id. Flow-specific payload
// fields live alongside the common ones.
type Record map[string]interface{}

// NewID generates an opaque record identifier
func NewID() string {
	return uuid.New().String()
}

// NewRecord creates a record with the common fields set
func NewRecord(id, recordType string, status Status, createdAt time.Time) Record {
	return Record{
		FieldID:        id,
		FieldType:      recordType,
		FieldStatus:    string(status),
		FieldCreatedAt: FormatTimestamp(createdAt),
	}
}

// ID returns the record's primary key
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Type returns the record's discriminator
func (r Record) Type() string {
	t, _ := r[FieldType].(string)
	return t
}

// Status returns the record's current status
func (r Record) Status() Status {
	s, _ := r[FieldStatus].(string)
	return Status(s)
}

// String returns a string field, or "" if it is absent or not a string
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatTimestamp formats t as a UTC ISO-8601 timestamp
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
