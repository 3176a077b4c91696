package lambda

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Public error messages shared by every router
const (
	MsgResourceNotFound = "Resource not found"
	MsgUnknownEventType = "Unknown event type"
	MsgInternalError    = "Internal server error"
)

// DefaultHeaders returns the headers present on every response
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// NewJSONResponse builds a response with payload serialized as JSON. Extra
// headers are merged over the defaults.
func NewJSONResponse(statusCode int, payload interface{}, headers map[string]string) *Response {
	body, err := json.Marshal(payload)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"` + MsgInternalError + `"}`)
	}

	h := DefaultHeaders()
	for k, v := range headers {
		h[k] = v
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    h,
		Body:       body,
	}
}

// ErrorResponse builds a {"error": message} response
func ErrorResponse(statusCode int, message string) *Response {
	return NewJSONResponse(statusCode, map[string]string{"error": message}, nil)
}

// ToProxyResponse converts r into an API Gateway proxy response
func (r *Response) ToProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// NewRequestFromProxy converts an API Gateway proxy request into a Request.
// Resource falls back to the raw path when the event carries none.
func NewRequestFromProxy(event events.APIGatewayProxyRequest) *Request {
	resource := event.Resource
	if resource == "" {
		resource = event.Path
	}
	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Resource:    resource,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}
}
