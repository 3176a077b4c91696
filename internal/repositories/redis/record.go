package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RecordRepository stores each record as a JSON string under "<table>:rec:<id>"
// and keeps a sorted set "<table>:index" scored by first write time for Scan
// ordering. The two namespaces never overlap whatever the id.
type RecordRepository struct {
	client goredis.Cmdable
	table  string
	logger *logrus.Logger
}

// NewClient parses url and verifies the server is reachable
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRecordRepository creates a repository bound to table
func NewRecordRepository(client goredis.Cmdable, table string, logger *logrus.Logger) *RecordRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &RecordRepository{client: client, table: table, logger: logger}
}

// Put implements repositories.RecordRepository.Put
func (r *RecordRepository) Put(ctx context.Context, record models.Record) error {
	id := record.ID()
	if id == "" {
		return repositories.NewRepositoryError("put", r.table, id, repositories.ErrInvalidID)
	}
	if err := r.write(ctx, id, record); err != nil {
		return repositories.NewRepositoryError("put", r.table, id, err)
	}
	return nil
}

// Update implements repositories.RecordRepository.Update
func (r *RecordRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	if id == "" {
		return repositories.NewRepositoryError("update", r.table, id, repositories.ErrInvalidID)
	}

	record, err := r.read(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return repositories.NewRepositoryError("update", r.table, id, err)
	}
	if record == nil {
		record = models.Record{models.FieldID: id}
	}
	for k, v := range changes {
		if k == models.FieldID {
			continue
		}
		record[k] = v
	}

	if err := r.write(ctx, id, record); err != nil {
		return repositories.NewRepositoryError("update", r.table, id, err)
	}
	return nil
}

// Get implements repositories.RecordRepository.Get
func (r *RecordRepository) Get(ctx context.Context, id string) (models.Record, error) {
	record, err := r.read(ctx, id)
	if err != nil {
		return nil, repositories.NewRepositoryError("get", r.table, id, err)
	}
	return record, nil
}

// Scan implements repositories.RecordRepository.Scan
func (r *RecordRepository) Scan(ctx context.Context, limit int) ([]models.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, stop).Result()
	if err != nil {
		return nil, repositories.NewRepositoryError("scan", r.table, "", err)
	}
	if len(ids) == 0 {
		return []models.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	raws, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, repositories.NewRepositoryError("scan", r.table, "", err)
	}

	records := make([]models.Record, 0, len(raws))
	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		var record models.Record
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			return nil, repositories.NewRepositoryError("scan", r.table, "", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Close is a no-op; the client is shared between tables and closed by its owner
func (r *RecordRepository) Close() error {
	return nil
}

func (r *RecordRepository) read(ctx context.Context, id string) (models.Record, error) {
	raw, err := r.client.Get(ctx, r.recordKey(id)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	var record models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RecordRepository) write(ctx context.Context, id string, record models.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.recordKey(id), data, 0)
	pipe.ZAddNX(ctx, r.indexKey(), goredis.Z{Score: float64(time.Now().UnixNano()), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.WithFields(logrus.Fields{"table": r.table, "id": id, "error": err}).Error("Redis write failed")
		return err
	}
	return nil
}

func (r *RecordRepository) recordKey(id string) string {
	return r.table + ":rec:" + id
}

func (r *RecordRepository) indexKey() string {
	return r.table + ":index"
}
