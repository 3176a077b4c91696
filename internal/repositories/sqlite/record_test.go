package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepo(t *testing.T, db *sql.DB, table string) *RecordRepository {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	repo, err := NewRecordRepository(context.Background(), db, table, logger)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	return repo
}

func TestRecordRepository_PutGet(t *testing.T) {
	db := setupTestDB(t)
	repo := newTestRepo(t, db, "dev-processed-data")
	ctx := context.Background()

	record := models.Record{
		"id":     "job-1",
		"type":   models.RecordTypeAPIProcessing,
		"status": "queued",
		"data":   map[string]interface{}{"k": "v"},
	}
	if err := repo.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := repo.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Type() != models.RecordTypeAPIProcessing || got.Status() != models.StatusQueued {
		t.Errorf("Unexpected record: %v", got)
	}
	if data, ok := got["data"].(map[string]interface{}); !ok || data["k"] != "v" {
		t.Errorf("Nested data not round-tripped: %v", got["data"])
	}

	_, err = repo.Get(ctx, "missing")
	if !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestRecordRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := newTestRepo(t, db, "records")
	ctx := context.Background()

	if err := repo.Put(ctx, models.Record{"id": "job-1", "status": "processing", "bucket": "b"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Update(ctx, "job-1", map[string]interface{}{"status": "completed", "file_size": 10}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := repo.Get(ctx, "job-1")
	if got.Status() != models.StatusCompleted || got["bucket"] != "b" || got["file_size"] != float64(10) {
		t.Errorf("Unexpected record after update: %v", got)
	}

	if err := repo.Update(ctx, "job-2", map[string]interface{}{"status": "failed"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	got, err := repo.Get(ctx, "job-2")
	if err != nil || got.ID() != "job-2" {
		t.Errorf("Expected upserted record, got %v, %v", got, err)
	}

	if err := repo.Update(ctx, "", map[string]interface{}{"status": "failed"}); err == nil {
		t.Error("Expected error for empty id")
	}
}

func TestRecordRepository_ScanAndIsolation(t *testing.T) {
	db := setupTestDB(t)
	users := newTestRepo(t, db, "users")
	other := newTestRepo(t, db, "notifications")
	ctx := context.Background()

	for _, id := range []string{"u-3", "u-1", "u-2"} {
		if err := users.Put(ctx, models.Record{"id": id}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	_ = other.Put(ctx, models.Record{"id": "n-1"})

	all, err := users.Scan(ctx, 0)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(all) != 3 || all[0].ID() != "u-3" {
		t.Errorf("Expected 3 users in insertion order, got %v", all)
	}

	limited, _ := users.Scan(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 user, got %d", len(limited))
	}
}

func TestNewRecordRepository_RejectsBadTableName(t *testing.T) {
	db := setupTestDB(t)
	if _, err := NewRecordRepository(context.Background(), db, `users"; DROP TABLE x; --`, nil); err == nil {
		t.Error("Expected invalid table name error")
	}
}
