package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/observability/metrics"
	"event-handlers-api/internal/services"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// NotificationHandler handles notify requests and pub/sub message batches
type NotificationHandler struct {
	service services.NotificationService
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service services.NotificationService, logger *logrus.Logger, m *metrics.Metrics) *NotificationHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &NotificationHandler{service: service, logger: logger, metrics: m}
}

// HandleNotify handles POST /notify. A failed send still answers 200; the
// failure is visible only in the notification status.
func (h *NotificationHandler) HandleNotify(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	notifyReq, err := decodeRequired[models.NotificationRequest](req.Body)
	if err != nil {
		return respondError(h.logger, err, MsgNotifyFailed), nil
	}

	notification, err := h.service.SendNotification(ctx, notifyReq)
	if err != nil {
		return respondError(h.logger, err, MsgNotifyFailed), nil
	}

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"message":      "Notification sent successfully",
		"notification": notification,
	}, nil), nil
}

// HandleMessageEvent handles a batch of pub/sub records
func (h *NotificationHandler) HandleMessageEvent(ctx context.Context, payload json.RawMessage) (*lambda.Response, error) {
	var event events.SNSEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.WithError(err).Error("Failed to decode pub/sub event")
		return lambda.ErrorResponse(http.StatusInternalServerError, MsgMessageEventFailed), nil
	}

	outcomes := h.service.ProcessMessages(ctx, event.Records)
	for _, o := range outcomes {
		h.metrics.RecordBatchOutcome(FunctionNotification, o.OK())
	}

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"message":           "SNS event processed successfully",
		"processed_records": lambda.CountSuccesses(outcomes),
	}, nil), nil
}

// decodeRequired decodes a non-empty JSON object body into T
func decodeRequired[T any](body []byte) (*T, error) {
	obj, err := models.ParseBody(body)
	if err != nil {
		return nil, err
	}
	if len(obj) == 0 {
		return nil, models.NewValidationError(models.InvalidBody, "", "Request body is required")
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, models.NewValidationError(models.InvalidBody, "", "Invalid JSON in request body")
	}
	return &out, nil
}
