package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"event-handlers-api/internal/observability/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*Router, *int) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	batchCalls := 0
	r := NewRouter("test-function", logger, metrics.NewMetrics("test"))
	r.Handle(http.MethodPost, "/process", func(ctx context.Context, req *Request) (*Response, error) {
		return NewJSONResponse(http.StatusOK, map[string]string{"body": string(req.Body)}, nil), nil
	})
	r.Handle(http.MethodGet, "/fail", func(ctx context.Context, req *Request) (*Response, error) {
		return nil, errors.New("database exploded")
	})
	r.Handle(http.MethodGet, "/panic", func(ctx context.Context, req *Request) (*Response, error) {
		panic("unexpected")
	})
	r.HandleBatch(func(ctx context.Context, payload json.RawMessage) (*Response, error) {
		batchCalls++
		return NewJSONResponse(http.StatusOK, map[string]int{"processed_records": 1}, nil), nil
	})
	return r, &batchCalls
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "s3 records", payload: `{"Records":[{"s3":{"bucket":{"name":"b"},"object":{"key":"k"}}}]}`, want: EventKindBatch},
		{name: "sns records", payload: `{"Records":[{"Sns":{"Message":"hi"}}]}`, want: EventKindBatch},
		{name: "records win over httpMethod", payload: `{"Records":[{}],"httpMethod":"GET"}`, want: EventKindBatch},
		{name: "empty records with method", payload: `{"Records":[],"httpMethod":"POST"}`, want: EventKindAPI},
		{name: "api", payload: `{"httpMethod":"POST","resource":"/process"}`, want: EventKindAPI},
		{name: "null method still api", payload: `{"httpMethod":null}`, want: EventKindAPI},
		{name: "empty records only", payload: `{"Records":[]}`, want: EventKindUnknown},
		{name: "empty object", payload: `{}`, want: EventKindUnknown},
		{name: "array payload", payload: `[1,2]`, want: EventKindUnknown},
		{name: "invalid json", payload: `{"Records":`, want: EventKindUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(json.RawMessage(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantError  string
	}{
		{name: "matched route", payload: `{"httpMethod":"POST","resource":"/process","body":"{}"}`, wantStatus: 200},
		{name: "unmatched method", payload: `{"httpMethod":"DELETE","resource":"/process"}`, wantStatus: 404, wantError: "Resource not found"},
		{name: "unmatched resource", payload: `{"httpMethod":"GET","resource":"/nope"}`, wantStatus: 404, wantError: "Resource not found"},
		{name: "unknown event", payload: `{"source":"aws.events"}`, wantStatus: 400, wantError: "Unknown event type"},
		{name: "handler error", payload: `{"httpMethod":"GET","resource":"/fail"}`, wantStatus: 500, wantError: "Internal server error"},
		{name: "handler panic", payload: `{"httpMethod":"GET","resource":"/panic"}`, wantStatus: 500, wantError: "Internal server error"},
		{name: "malformed payload", payload: `not json`, wantStatus: 500, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter()
			resp, err := r.Invoke(context.Background(), json.RawMessage(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, resp.Body)
			}
		})
	}
}

func TestRouter_BatchRouting(t *testing.T) {
	r, calls := newTestRouter()
	payload := json.RawMessage(`{"Records":[{"eventName":"ObjectCreated:Put"}]}`)

	for i := 0; i < 3; i++ {
		resp := r.Dispatch(context.Background(), payload)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 3, *calls)
}

func TestRouter_NoBatchHandler(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := NewRouter("health-check", logger, nil)

	resp := r.Dispatch(context.Background(), json.RawMessage(`{"Records":[{"Sns":{}}]}`))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unknown event type"}`, string(resp.Body))
}
