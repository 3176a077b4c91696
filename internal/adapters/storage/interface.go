package storage

import (
	"context"
	"time"
)

// ObjectMetadata represents metadata about a stored object
type ObjectMetadata struct {
	Bucket       string    `json:"bucket"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
}

// ObjectStorage is the object storage capability the processing flows need:
// existence and metadata lookup for a single object.
type ObjectStorage interface {
	// HeadObject returns metadata for bucket/key, or an error wrapping
	// ErrFileNotFound when the object does not exist
	HeadObject(ctx context.Context, bucket, key string) (*ObjectMetadata, error)
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type     string `json:"type" yaml:"type"`           // "memory", "local" or "s3"
	BasePath string `json:"base_path" yaml:"base_path"` // For local storage
	Region   string `json:"region" yaml:"region"`       // For cloud storage
}
