package handlers

import (
	"errors"
	"net/http"

	"event-handlers-api/internal/models"
	"event-handlers-api/pkg/lambda"

	"github.com/sirupsen/logrus"
)

// Public messages for 500 responses, one per flow
const (
	MsgProcessFailed      = "Failed to process data"
	MsgObjectEventFailed  = "Failed to process S3 event"
	MsgNotifyFailed       = "Failed to send notification"
	MsgMessageEventFailed = "Failed to process SNS event"
	MsgCreateUserFailed   = "Failed to create user"
	MsgGetUserFailed      = "Failed to get user"
	MsgListUsersFailed    = "Failed to list users"
)

// respondError maps err onto a response: validation faults become 400,
// missing entities 404, collaborator faults 500 with failureMessage and
// anything else a generic 500. Details of 500s are logged, never returned.
func respondError(logger *logrus.Logger, err error, failureMessage string) *lambda.Response {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return lambda.ErrorResponse(http.StatusBadRequest, ve.Message)
	}

	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		return lambda.ErrorResponse(http.StatusNotFound, nf.Resource+" not found")
	}

	if models.IsDependencyError(err) {
		logger.WithError(err).Error(failureMessage)
		return lambda.ErrorResponse(http.StatusInternalServerError, failureMessage)
	}

	logger.WithError(err).Error("Unexpected error")
	return lambda.ErrorResponse(http.StatusInternalServerError, lambda.MsgInternalError)
}
