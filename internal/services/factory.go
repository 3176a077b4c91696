package services

import (
	"fmt"
	"time"

	"event-handlers-api/internal/adapters/messaging"
	"event-handlers-api/internal/adapters/storage"
	"event-handlers-api/internal/models"
	"event-handlers-api/internal/observability/metrics"
	"event-handlers-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	DataProcessingService DataProcessingService
	NotificationService   NotificationService
	UserService           UserService
	HealthService         HealthService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Environment string
	Version     string
	Region      string
	TopicARN    string
}

// Dependencies are the collaborators shared by every service
type Dependencies struct {
	ProcessedData repositories.RecordRepository
	Notifications repositories.RecordRepository
	Users         repositories.RecordRepository
	Storage       storage.ObjectStorage
	Publisher     messaging.Publisher
	Runtime       RuntimeInfoProvider
	Logger        *logrus.Logger
	Metrics       *metrics.Metrics
	Now           func() time.Time
	NewID         func() string
}

func (d *Dependencies) withDefaults() *Dependencies {
	var out Dependencies
	if d != nil {
		out = *d
	}
	if out.Logger == nil {
		out.Logger = logrus.New()
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	if out.NewID == nil {
		out.NewID = models.NewID
	}
	if out.Runtime == nil {
		out.Runtime = LambdaRuntimeInfo
	}
	return &out
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(deps *Dependencies, config *ServiceConfig) (*ServiceContainer, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies cannot be nil")
	}
	if config == nil {
		config = &ServiceConfig{Environment: "dev", Version: "1.0.0", Region: "us-east-1"}
	}

	switch {
	case deps.ProcessedData == nil:
		return nil, fmt.Errorf("processed data repository is required")
	case deps.Notifications == nil:
		return nil, fmt.Errorf("notification repository is required")
	case deps.Users == nil:
		return nil, fmt.Errorf("user repository is required")
	case deps.Storage == nil:
		return nil, fmt.Errorf("object storage is required")
	case deps.Publisher == nil:
		return nil, fmt.Errorf("publisher is required")
	}

	d := deps.withDefaults()

	return &ServiceContainer{
		DataProcessingService: NewDataProcessingService(d.ProcessedData, d.Storage, d),
		NotificationService:   NewNotificationService(d.Notifications, d.Publisher, config.TopicARN, d),
		UserService:           NewUserService(d.Users, d),
		HealthService:         NewHealthService(config, d),
	}, nil
}
