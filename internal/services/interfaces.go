package services

import (
	"context"

	"event-handlers-api/internal/models"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
)

// DataProcessingService defines the data ingestion flows
type DataProcessingService interface {
	// ProcessData runs the synchronous API pipeline: queued record, inline
	// summary, completed record.
	ProcessData(ctx context.Context, req *models.ProcessRequest) (*models.ProcessedDataView, error)

	// ProcessObjectEvents tracks one job per object-created record. The value
	// of each outcome is the job id, when one was assigned.
	ProcessObjectEvents(ctx context.Context, records []events.S3EventRecord) []lambda.Outcome[string]
}

// NotificationService defines the notification dispatch flows
type NotificationService interface {
	// SendNotification validates and publishes a notification. A failed
	// publish is reported through the returned status, not as an error.
	SendNotification(ctx context.Context, req *models.NotificationRequest) (*models.NotificationView, error)

	// ProcessMessages records every pub/sub message as received, then processed
	ProcessMessages(ctx context.Context, records []events.SNSEventRecord) []lambda.Outcome[string]
}

// UserService defines user management operations
type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (models.Record, error)
	GetUser(ctx context.Context, id string) (models.Record, error)
	ListUsers(ctx context.Context, limit int) ([]models.Record, error)
}

// HealthService reports service health
type HealthService interface {
	Check(ctx context.Context, includeDetails bool) *HealthReport
}
