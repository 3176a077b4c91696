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

// DataProcessorHandler handles data ingestion requests and object-created events
type DataProcessorHandler struct {
	service services.DataProcessingService
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// NewDataProcessorHandler creates a new data processor handler
func NewDataProcessorHandler(service services.DataProcessingService, logger *logrus.Logger, m *metrics.Metrics) *DataProcessorHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataProcessorHandler{service: service, logger: logger, metrics: m}
}

// HandleProcess handles POST /process
func (h *DataProcessorHandler) HandleProcess(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	body, err := models.ParseBody(req.Body)
	if err != nil {
		return respondError(h.logger, err, MsgProcessFailed), nil
	}

	processReq, err := models.NewProcessRequest(body)
	if err != nil {
		return respondError(h.logger, err, MsgProcessFailed), nil
	}

	processed, err := h.service.ProcessData(ctx, processReq)
	if err != nil {
		return respondError(h.logger, err, MsgProcessFailed), nil
	}

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"message":        "Data processed successfully",
		"processed_data": processed,
	}, nil), nil
}

// HandleObjectEvent handles a batch of object-created records. The response
// is 200 with the success count even when individual records fail.
func (h *DataProcessorHandler) HandleObjectEvent(ctx context.Context, payload json.RawMessage) (*lambda.Response, error) {
	var event events.S3Event
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.WithError(err).Error("Failed to decode object event")
		return lambda.ErrorResponse(http.StatusInternalServerError, MsgObjectEventFailed), nil
	}

	outcomes := h.service.ProcessObjectEvents(ctx, event.Records)
	for _, o := range outcomes {
		h.metrics.RecordBatchOutcome(FunctionDataProcessor, o.OK())
	}

	processed := lambda.CountSuccesses(outcomes)
	h.logger.WithFields(logrus.Fields{
		"records":   len(outcomes),
		"processed": processed,
	}).Info("Object event processed")

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"message":           "S3 event processed successfully",
		"processed_records": processed,
	}, nil), nil
}
