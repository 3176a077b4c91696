package storage

import (
	"fmt"
	"strings"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeMemory StorageType = "memory"
	StorageTypeLocal  StorageType = "local"
	StorageTypeS3     StorageType = "s3"
)

// Factory creates ObjectStorage instances based on configuration
type Factory struct {
	s3Client S3API
}

// NewFactory creates a new storage factory. s3Client may be nil when S3 is not used.
func NewFactory(s3Client S3API) *Factory {
	return &Factory{s3Client: s3Client}
}

// Create creates an ObjectStorage instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (ObjectStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeMemory, "":
		return NewMockObjectStorage(), nil
	case StorageTypeLocal:
		basePath := config.BasePath
		if basePath == "" {
			basePath = "./data/objects"
		}
		return NewLocalObjectStorage(basePath)
	case StorageTypeS3:
		if f.s3Client == nil {
			return nil, fmt.Errorf("failed to create s3 storage: no S3 client configured")
		}
		return NewS3ObjectStorage(f.s3Client), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}
