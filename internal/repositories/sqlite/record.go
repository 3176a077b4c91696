package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var tableNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// RecordRepository stores records as JSON documents in a single SQLite table
type RecordRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// Open opens (or creates) the database at path with a single connection
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite works best with single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewRecordRepository creates the table if needed and returns a repository bound to it
func NewRecordRepository(ctx context.Context, db *sql.DB, table string, logger *logrus.Logger) (*RecordRepository, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if !tableNameRegex.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	r := &RecordRepository{db: db, table: table, logger: logger}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`, r.quoted())
	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, repositories.NewRepositoryError("create_table", table, "", err)
	}
	return r, nil
}

// Put implements repositories.RecordRepository.Put
func (r *RecordRepository) Put(ctx context.Context, record models.Record) error {
	id := record.ID()
	if id == "" {
		return repositories.NewRepositoryError("put", r.table, id, repositories.ErrInvalidID)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return repositories.NewRepositoryError("put", r.table, id, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, r.quoted())

	start := time.Now()
	_, err = r.db.ExecContext(ctx, query, id, string(data))
	r.logQuery("put", id, time.Since(start), err)
	if err != nil {
		return repositories.NewRepositoryError("put", r.table, id, err)
	}
	return nil
}

// Update implements repositories.RecordRepository.Update
func (r *RecordRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	if id == "" {
		return repositories.NewRepositoryError("update", r.table, id, repositories.ErrInvalidID)
	}

	start := time.Now()
	err := r.update(ctx, id, changes)
	r.logQuery("update", id, time.Since(start), err)
	if err != nil {
		return repositories.NewRepositoryError("update", r.table, id, err)
	}
	return nil
}

func (r *RecordRepository) update(ctx context.Context, id string, changes map[string]interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	record := models.Record{models.FieldID: id}
	var raw string
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE id = ?`, r.quoted()), id).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return err
	default:
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return err
		}
	}

	for k, v := range changes {
		if k == models.FieldID {
			continue
		}
		record[k] = v
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, r.quoted())
	if _, err := tx.ExecContext(ctx, query, id, string(data)); err != nil {
		return err
	}
	return tx.Commit()
}

// Get implements repositories.RecordRepository.Get
func (r *RecordRepository) Get(ctx context.Context, id string) (models.Record, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE id = ?`, r.quoted()), id).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NewRepositoryError("get", r.table, id, repositories.ErrNotFound)
		}
		return nil, repositories.NewRepositoryError("get", r.table, id, err)
	}

	var record models.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, repositories.NewRepositoryError("get", r.table, id, err)
	}
	return record, nil
}

// Scan implements repositories.RecordRepository.Scan
func (r *RecordRepository) Scan(ctx context.Context, limit int) ([]models.Record, error) {
	query := fmt.Sprintf(`SELECT data FROM %s ORDER BY rowid`, r.quoted())
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repositories.NewRepositoryError("scan", r.table, "", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, repositories.NewRepositoryError("scan", r.table, "", err)
		}
		var record models.Record
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, repositories.NewRepositoryError("scan", r.table, "", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("scan", r.table, "", err)
	}
	return records, nil
}

// Close is a no-op; the *sql.DB is shared between tables and closed by its owner
func (r *RecordRepository) Close() error {
	return nil
}

func (r *RecordRepository) quoted() string {
	return `"` + r.table + `"`
}

// logQuery logs a statement with its execution time
func (r *RecordRepository) logQuery(operation, id string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"id":        id,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}
