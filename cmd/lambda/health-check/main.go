package main

import (
	"event-handlers-api/internal/handlers"
	"event-handlers-api/pkg/lambda"
	"event-handlers-api/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var manager = lambda.NewConnectionManager(server.NewContainer)

func main() {
	awslambda.Start(server.NewLambdaHandler(handlers.FunctionHealthCheck, manager))
}
