package server

import (
	"context"
	"encoding/json"
	"net/http"

	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// LambdaHandler is the signature passed to the Lambda runtime
type LambdaHandler func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error)

// NewLambdaHandler returns the entry point for one function. The container is
// built on the first invocation and shared by the rest.
func NewLambdaHandler(function string, manager *lambda.ConnectionManager[*Container]) LambdaHandler {
	return func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
		container, err := manager.GetContainer(ctx)
		if err != nil {
			logrus.WithError(err).WithField("function", function).Error("Failed to initialize container")
			return lambda.ErrorResponse(http.StatusInternalServerError, lambda.MsgInternalError).ToProxyResponse(), nil
		}

		router, err := container.Router(function)
		if err != nil {
			container.Logger.WithError(err).Error("No router for function")
			return lambda.ErrorResponse(http.StatusInternalServerError, lambda.MsgInternalError).ToProxyResponse(), nil
		}

		return router.Invoke(ctx, payload)
	}
}
