package handlers

import (
	"context"
	"net/http"

	"event-handlers-api/internal/services"
	"event-handlers-api/pkg/lambda"
)

var healthHeaders = map[string]string{
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "GET,OPTIONS",
}

// HealthHandler handles GET /health
type HealthHandler struct {
	service services.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check reports health, with runtime details when details=true
func (h *HealthHandler) Check(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	report := h.service.Check(ctx, req.Query("details") == "true")
	return lambda.NewJSONResponse(http.StatusOK, report, healthHeaders), nil
}
