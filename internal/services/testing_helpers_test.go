package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"event-handlers-api/internal/adapters/messaging"
	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testDeps() *Dependencies {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	seq := 0
	return &Dependencies{
		Logger: logger,
		Now:    func() time.Time { return fixedTime },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}
}

// faultyRepo wraps the memory repository and injects failures per operation
type faultyRepo struct {
	*repositories.MemoryRecordRepository
	putErr    error
	updateErr error
	getErr    error
	scanErr   error
	puts      int
	updates   int
}

func newFaultyRepo() *faultyRepo {
	return &faultyRepo{MemoryRecordRepository: repositories.NewMemoryRecordRepository("test")}
}

func (f *faultyRepo) Put(ctx context.Context, record models.Record) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryRecordRepository.Put(ctx, record)
}

func (f *faultyRepo) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.MemoryRecordRepository.Update(ctx, id, changes)
}

func (f *faultyRepo) Get(ctx context.Context, id string) (models.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryRecordRepository.Get(ctx, id)
}

func (f *faultyRepo) Scan(ctx context.Context, limit int) ([]models.Record, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.MemoryRecordRepository.Scan(ctx, limit)
}

// mockPublisher is a testify mock of messaging.Publisher
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg messaging.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
