package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockObjectStorage is an in-memory implementation of ObjectStorage for local runs and tests
type MockObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]*ObjectMetadata
	faults  map[string]error
}

// NewMockObjectStorage creates a new MockObjectStorage instance
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{
		objects: make(map[string]*ObjectMetadata),
		faults:  make(map[string]error),
	}
}

// PutObject registers an object with the given size and content type
func (m *MockObjectStorage) PutObject(bucket, key string, size int64, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.objects[objectID(bucket, key)] = &ObjectMetadata{
		Bucket:       bucket,
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		LastModified: now,
		ETag:         fmt.Sprintf("%d-%d", size, now.Unix()),
	}
}

// FailOn makes every HeadObject for bucket/key return err
func (m *MockObjectStorage) FailOn(bucket, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[objectID(bucket, key)] = err
}

// HeadObject implements ObjectStorage.HeadObject
func (m *MockObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectMetadata, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("HeadObject", bucket, key, ErrInvalidKey)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.faults[objectID(bucket, key)]; ok {
		return nil, NewStorageError("HeadObject", bucket, key, err)
	}

	obj, exists := m.objects[objectID(bucket, key)]
	if !exists {
		return nil, NewStorageError("HeadObject", bucket, key, ErrFileNotFound)
	}

	copied := *obj
	return &copied, nil
}

func objectID(bucket, key string) string {
	return bucket + "/" + key
}
