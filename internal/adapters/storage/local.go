package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStorage implements ObjectStorage on the local filesystem.
// Buckets are directories directly under basePath.
type LocalObjectStorage struct {
	basePath string
}

// NewLocalObjectStorage creates a new LocalObjectStorage instance
func NewLocalObjectStorage(basePath string) (*LocalObjectStorage, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewStorageError("NewLocalObjectStorage", "", "", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalObjectStorage", "", "", err)
	}

	return &LocalObjectStorage{basePath: absPath}, nil
}

// HeadObject implements ObjectStorage.HeadObject
func (l *LocalObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectMetadata, error) {
	if err := validateKey(bucket); err != nil {
		return nil, NewStorageError("HeadObject", bucket, key, err)
	}
	if err := validateKey(key); err != nil {
		return nil, NewStorageError("HeadObject", bucket, key, err)
	}

	stat, err := os.Stat(filepath.Join(l.basePath, bucket, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("HeadObject", bucket, key, ErrFileNotFound)
		}
		if os.IsPermission(err) {
			return nil, NewStorageError("HeadObject", bucket, key, ErrPermissionDenied)
		}
		return nil, NewStorageError("HeadObject", bucket, key, err)
	}
	if stat.IsDir() {
		return nil, NewStorageError("HeadObject", bucket, key, ErrFileNotFound)
	}

	// Determine content type from file extension
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &ObjectMetadata{
		Bucket:       bucket,
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentType,
		LastModified: stat.ModTime(),
		ETag:         fmt.Sprintf("%d-%d", stat.Size(), stat.ModTime().Unix()),
	}, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	// Prevent directory traversal attacks
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}

	return nil
}
