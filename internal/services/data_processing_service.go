package services

import (
	"context"
	"errors"
	"fmt"

	"event-handlers-api/internal/adapters/storage"
	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// ErrMalformedObjectRecord is returned for object events without a bucket or key
var ErrMalformedObjectRecord = errors.New("object event record has no bucket or key")

// dataProcessingService implements the DataProcessingService interface
type dataProcessingService struct {
	repo    repositories.RecordRepository
	storage storage.ObjectStorage
	deps    *Dependencies
}

// NewDataProcessingService creates a new data processing service instance
func NewDataProcessingService(repo repositories.RecordRepository, objects storage.ObjectStorage, deps *Dependencies) DataProcessingService {
	return &dataProcessingService{
		repo:    repo,
		storage: objects,
		deps:    deps.withDefaults(),
	}
}

// ProcessData persists a queued job, summarizes the data inline and marks the job completed
func (s *dataProcessingService) ProcessData(ctx context.Context, req *models.ProcessRequest) (*models.ProcessedDataView, error) {
	if req == nil {
		return nil, models.NewValidationError(models.InvalidBody, "", `Request body must contain "data" field`)
	}

	id := s.deps.NewID()
	now := s.deps.Now()
	timestamp := models.FormatTimestamp(now)

	job := models.NewRecord(id, models.RecordTypeAPIProcessing, models.StatusQueued, now)
	job["data"] = req.Data
	job["data_type"] = req.Type
	job["metadata"] = req.Metadata

	if err := s.repo.Put(ctx, job); err != nil {
		return nil, models.NewDependencyError("put processing job", err)
	}

	status, err := models.StatusQueued.Transition(models.StatusCompleted)
	if err != nil {
		return nil, err
	}

	result := models.Summarize(req.Data, req.Type, models.FormatTimestamp(s.deps.Now()))
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		models.FieldStatus: string(status),
		"completed_at":     timestamp,
		"result":           result,
	}); err != nil {
		return nil, models.NewDependencyError("complete processing job", err)
	}

	s.deps.Logger.WithFields(logrus.Fields{
		"job_id":    id,
		"data_type": req.Type,
	}).Info("Data processed")

	return &models.ProcessedDataView{
		ID:          id,
		Type:        req.Type,
		Status:      string(models.StatusProcessed),
		ProcessedAt: timestamp,
		Size:        models.DataSize(req.Data),
	}, nil
}

// ProcessObjectEvents handles every record independently; a failing record
// never prevents the next one from being attempted
func (s *dataProcessingService) ProcessObjectEvents(ctx context.Context, records []events.S3EventRecord) []lambda.Outcome[string] {
	return lambda.Fold(records, func(index int, record events.S3EventRecord) (string, error) {
		return s.processObjectRecord(ctx, index, record)
	})
}

func (s *dataProcessingService) processObjectRecord(ctx context.Context, index int, record events.S3EventRecord) (string, error) {
	bucket := record.S3.Bucket.Name
	key := record.S3.Object.URLDecodedKey
	if key == "" {
		key = record.S3.Object.Key
	}

	logger := s.deps.Logger.WithFields(logrus.Fields{
		"record_index": index,
		"bucket":       bucket,
		"key":          key,
		"event_name":   record.EventName,
	})

	if bucket == "" || key == "" {
		logger.WithError(ErrMalformedObjectRecord).Error("Skipping object event record")
		return "", ErrMalformedObjectRecord
	}

	logger.Info("Processing object event")

	id := s.deps.NewID()
	job := models.NewRecord(id, models.RecordTypeS3Processing, models.StatusProcessing, s.deps.Now())
	job["bucket"] = bucket
	job["key"] = key
	job["event_name"] = record.EventName

	if err := s.repo.Put(ctx, job); err != nil {
		logger.WithError(err).Error("Failed to record object job")
		return "", models.NewDependencyError("put object job", err)
	}

	if err := s.completeObjectJob(ctx, id, bucket, key); err != nil {
		logger.WithError(err).WithField("job_id", id).Error("Error processing object event record")
		s.failObjectJob(ctx, logger, id, err)
		return id, err
	}

	return id, nil
}

func (s *dataProcessingService) completeObjectJob(ctx context.Context, id, bucket, key string) error {
	meta, err := s.storage.HeadObject(ctx, bucket, key)
	if err != nil {
		return models.NewDependencyError("head object", err)
	}

	status, err := models.StatusProcessing.Transition(models.StatusCompleted)
	if err != nil {
		return err
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "unknown"
	}

	return models.NewDependencyError("complete object job", s.repo.Update(ctx, id, map[string]interface{}{
		models.FieldStatus: string(status),
		"completed_at":     models.FormatTimestamp(s.deps.Now()),
		"file_size":        meta.Size,
		"content_type":     contentType,
	}))
}

func (s *dataProcessingService) failObjectJob(ctx context.Context, logger *logrus.Entry, id string, cause error) {
	status, err := models.StatusProcessing.Transition(models.StatusFailed)
	if err != nil {
		logger.WithError(err).Error("Cannot mark object job failed")
		return
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{
		models.FieldStatus: string(status),
		"error":            errorMessage(cause),
		"failed_at":        models.FormatTimestamp(s.deps.Now()),
	}); err != nil {
		logger.WithError(err).Error("Failed to mark object job failed")
	}
}

// errorMessage returns the innermost cause of err for storage on a record
func errorMessage(err error) string {
	var dep *models.DependencyError
	if errors.As(err, &dep) && dep.Err != nil {
		return dep.Err.Error()
	}
	return fmt.Sprint(err)
}
