package handlers

import (
	"net/http"

	"event-handlers-api/internal/observability/metrics"
	"event-handlers-api/internal/services"
	"event-handlers-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// Function names, one per deployed Lambda
const (
	FunctionDataProcessor  = "data-processor"
	FunctionHealthCheck    = "health-check"
	FunctionNotification   = "notification"
	FunctionUserManagement = "user-management"
)

// Functions lists every function name in a stable order
var Functions = []string{
	FunctionDataProcessor,
	FunctionHealthCheck,
	FunctionNotification,
	FunctionUserManagement,
}

// NewDataProcessorRouter routes POST /process and object-created batches
func NewDataProcessorRouter(svc *services.ServiceContainer, logger *logrus.Logger, m *metrics.Metrics) *lambda.Router {
	h := NewDataProcessorHandler(svc.DataProcessingService, logger, m)

	r := lambda.NewRouter(FunctionDataProcessor, logger, m)
	r.Handle(http.MethodPost, "/process", h.HandleProcess)
	r.HandleBatch(h.HandleObjectEvent)
	return r
}

// NewNotificationRouter routes POST /notify and pub/sub batches
func NewNotificationRouter(svc *services.ServiceContainer, logger *logrus.Logger, m *metrics.Metrics) *lambda.Router {
	h := NewNotificationHandler(svc.NotificationService, logger, m)

	r := lambda.NewRouter(FunctionNotification, logger, m)
	r.Handle(http.MethodPost, "/notify", h.HandleNotify)
	r.HandleBatch(h.HandleMessageEvent)
	return r
}

// NewUserRouter routes the user management endpoints
func NewUserRouter(svc *services.ServiceContainer, logger *logrus.Logger, m *metrics.Metrics) *lambda.Router {
	h := NewUserHandler(svc.UserService, logger)

	r := lambda.NewRouter(FunctionUserManagement, logger, m)
	r.Handle(http.MethodPost, "/users", h.CreateUser)
	r.Handle(http.MethodGet, "/users", h.ListUsers)
	r.Handle(http.MethodGet, "/users/{id}", h.GetUser)
	return r
}

// NewHealthRouter routes GET /health
func NewHealthRouter(svc *services.ServiceContainer, logger *logrus.Logger, m *metrics.Metrics) *lambda.Router {
	h := NewHealthHandler(svc.HealthService)

	r := lambda.NewRouter(FunctionHealthCheck, logger, m)
	r.Handle(http.MethodGet, "/health", h.Check)
	return r
}

// NewRouters builds every function router keyed by function name
func NewRouters(svc *services.ServiceContainer, logger *logrus.Logger, m *metrics.Metrics) map[string]*lambda.Router {
	return map[string]*lambda.Router{
		FunctionDataProcessor:  NewDataProcessorRouter(svc, logger, m),
		FunctionHealthCheck:    NewHealthRouter(svc, logger, m),
		FunctionNotification:   NewNotificationRouter(svc, logger, m),
		FunctionUserManagement: NewUserRouter(svc, logger, m),
	}
}
