package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"event-handlers-api/internal/observability/metrics"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

// Event kinds reported by Classify
const (
	EventKindBatch   = "batch"
	EventKindAPI     = "api"
	EventKindUnknown = "unknown"
)

// BatchHandler processes a payload carrying a non-empty Records list
type BatchHandler func(ctx context.Context, payload json.RawMessage) (*Response, error)

type routeKey struct {
	method   string
	resource string
}

// Router classifies invocation payloads and dispatches them to exactly one
// handler: the batch handler, a route from the route table, or neither.
type Router struct {
	name    string
	routes  map[routeKey]HandlerFunc
	batch   BatchHandler
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// NewRouter creates an empty router for the named function
func NewRouter(name string, logger *logrus.Logger, m *metrics.Metrics) *Router {
	if logger == nil {
		logger = logrus.New()
	}
	return &Router{
		name:    name,
		routes:  make(map[routeKey]HandlerFunc),
		logger:  logger,
		metrics: m,
	}
}

// Name returns the function name the router was created for
func (r *Router) Name() string {
	return r.name
}

// Handle registers h for the (method, resource) pair
func (r *Router) Handle(method, resource string, h HandlerFunc) {
	r.routes[routeKey{method: method, resource: resource}] = h
}

// HandleBatch registers the handler for Records payloads
func (r *Router) HandleBatch(h BatchHandler) {
	r.batch = h
}

// Routes lists the registered routes as "METHOD resource"
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for k := range r.routes {
		out = append(out, k.method+" "+k.resource)
	}
	return out
}

// Classify reports which path a payload takes. It returns an error only when
// the payload is not valid JSON.
func Classify(payload json.RawMessage) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		var probe interface{}
		if jsonErr := json.Unmarshal(payload, &probe); jsonErr != nil {
			return EventKindUnknown, fmt.Errorf("invalid event payload: %w", jsonErr)
		}
		return EventKindUnknown, nil
	}

	if raw, ok := envelope["Records"]; ok {
		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err == nil && len(records) > 0 {
			return EventKindBatch, nil
		}
	}
	if _, ok := envelope["httpMethod"]; ok {
		return EventKindAPI, nil
	}
	return EventKindUnknown, nil
}

// Invoke is the Lambda entry point. It never returns an error: every failure
// is converted into a response envelope.
func (r *Router) Invoke(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return r.Dispatch(ctx, payload).ToProxyResponse(), nil
}

// Dispatch classifies payload and runs the matching handler
func (r *Router) Dispatch(ctx context.Context, payload json.RawMessage) (resp *Response) {
	logger := r.entryLogger(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.WithFields(logrus.Fields{
				"panic": rec,
				"stack": string(debug.Stack()),
			}).Error("Handler panicked")
			resp = ErrorResponse(http.StatusInternalServerError, MsgInternalError)
		}
	}()

	kind, err := Classify(payload)
	if err != nil {
		logger.WithError(err).Error("Failed to classify event")
		return ErrorResponse(http.StatusInternalServerError, MsgInternalError)
	}

	logger.WithField("event_kind", kind).Info("Received event")
	r.metrics.RecordInvocation(r.name, kind)

	switch {
	case kind == EventKindBatch && r.batch != nil:
		resp, err = r.batch(ctx, payload)
		if err != nil {
			logger.WithError(err).Error("Batch handler failed")
			return ErrorResponse(http.StatusInternalServerError, MsgInternalError)
		}
		return resp
	case kind == EventKindAPI:
		return r.dispatchAPI(ctx, logger, payload)
	default:
		return ErrorResponse(http.StatusBadRequest, MsgUnknownEventType)
	}
}

func (r *Router) dispatchAPI(ctx context.Context, logger *logrus.Entry, payload json.RawMessage) *Response {
	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.WithError(err).Error("Failed to decode API event")
		return ErrorResponse(http.StatusInternalServerError, MsgInternalError)
	}

	req := NewRequestFromProxy(event)
	route := req.Method + " " + req.Resource

	h, ok := r.routes[routeKey{method: req.Method, resource: req.Resource}]
	if !ok {
		r.metrics.RecordAPIResponse(route, http.StatusNotFound)
		return ErrorResponse(http.StatusNotFound, MsgResourceNotFound)
	}

	resp, err := h(ctx, req)
	if err != nil || resp == nil {
		logger.WithError(err).WithField("route", route).Error("Route handler failed")
		resp = ErrorResponse(http.StatusInternalServerError, MsgInternalError)
	}
	r.metrics.RecordAPIResponse(route, resp.StatusCode)
	return resp
}

func (r *Router) entryLogger(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{"function": r.name}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["request_id"] = lc.AwsRequestID
	}
	return r.logger.WithFields(fields)
}
