package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalObjectStorage_HeadObject(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "storage_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	storage, err := NewLocalObjectStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	objectPath := filepath.Join(tempDir, "uploads", "reports", "data.json")
	if err := os.MkdirAll(filepath.Dir(objectPath), 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	if err := os.WriteFile(objectPath, []byte(`{"a": 1}`), 0644); err != nil {
		t.Fatalf("Failed to write object: %v", err)
	}

	ctx := context.Background()

	tests := []struct {
		name         string
		bucket       string
		key          string
		wantErr      bool
		wantNotFound bool
	}{
		{name: "existing object", bucket: "uploads", key: "reports/data.json"},
		{name: "missing object", bucket: "uploads", key: "reports/missing.json", wantErr: true, wantNotFound: true},
		{name: "directory is not an object", bucket: "uploads", key: "reports", wantErr: true, wantNotFound: true},
		{name: "empty key", bucket: "uploads", key: "", wantErr: true},
		{name: "traversal key", bucket: "uploads", key: "../secret", wantErr: true},
		{name: "absolute key", bucket: "uploads", key: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := storage.HeadObject(ctx, tt.bucket, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HeadObject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantNotFound && !IsNotFound(err) {
				t.Errorf("Expected not found error, got %v", err)
			}
			if tt.wantErr {
				return
			}
			if meta.Size != 8 {
				t.Errorf("Size = %d, want 8", meta.Size)
			}
			if meta.ContentType != "application/json" {
				t.Errorf("ContentType = %q, want application/json", meta.ContentType)
			}
			if meta.Bucket != tt.bucket || meta.Key != tt.key {
				t.Errorf("Unexpected bucket/key %q/%q", meta.Bucket, meta.Key)
			}
		})
	}
}
