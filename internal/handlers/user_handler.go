package handlers

import (
	"context"
	"net/http"
	"strconv"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/services"
	"event-handlers-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// UserHandler handles user management requests
type UserHandler struct {
	service services.UserService
	logger  *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service services.UserService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserHandler{service: service, logger: logger}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	createReq, err := decodeRequired[models.CreateUserRequest](req.Body)
	if err != nil {
		return respondError(h.logger, err, MsgCreateUserFailed), nil
	}

	user, err := h.service.CreateUser(ctx, createReq)
	if err != nil {
		return respondError(h.logger, err, MsgCreateUserFailed), nil
	}

	return lambda.NewJSONResponse(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	}, nil), nil
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	user, err := h.service.GetUser(ctx, req.Param("id"))
	if err != nil {
		return respondError(h.logger, err, MsgGetUserFailed), nil
	}

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"user": user,
	}, nil), nil
}

// ListUsers handles GET /users with an optional positive limit
func (h *UserHandler) ListUsers(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	limit := 0
	if raw := req.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return lambda.ErrorResponse(http.StatusBadRequest, "Limit must be a positive integer"), nil
		}
		limit = n
	}

	users, err := h.service.ListUsers(ctx, limit)
	if err != nil {
		return respondError(h.logger, err, MsgListUsersFailed), nil
	}

	return lambda.NewJSONResponse(http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	}, nil), nil
}
