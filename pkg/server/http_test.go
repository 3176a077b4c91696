package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-handlers-api/internal/adapters/messaging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHTTP(t *testing.T) (*Container, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	container, err := NewContainer(context.Background(), testConfig("memory"))
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	return container, NewHTTPServer(container)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return w
}

func TestHTTPServer_Process(t *testing.T) {
	_, r := setupHTTP(t)

	w := do(r, http.MethodPost, "/process", `{"data":"hello world","type":"text"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message       string `json:"message"`
		ProcessedData struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Size   int    `json:"size"`
		} `json:"processed_data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Data processed successfully", body.Message)
	assert.Equal(t, "processed", body.ProcessedData.Status)
	assert.Equal(t, 11, body.ProcessedData.Size)
	assert.NotEmpty(t, body.ProcessedData.ID)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPServer_NotifySentAndFailed(t *testing.T) {
	container, r := setupHTTP(t)
	payload := `{"recipient":"test@example.com","message":"hi","type":"email","subject":"Test"}`

	w := do(r, http.MethodPost, "/notify", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"sent"`)

	publisher, ok := container.Publisher.(*messaging.MemoryPublisher)
	require.True(t, ok)
	require.Len(t, publisher.Messages(), 1)
	assert.Equal(t, "Test", publisher.Messages()[0].Subject)

	publisher.Fail(errors.New("sns unavailable"))
	w = do(r, http.MethodPost, "/notify", payload)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"failed"`)
}

func TestHTTPServer_Users(t *testing.T) {
	_, r := setupHTTP(t)

	w := do(r, http.MethodGet, "/users/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/users", `{"name":"Grace","email":"grace@example.com","phone":"+1 234-567-890"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodGet, "/users?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"phone":"+1234567890"`)
}

func TestHTTPServer_UnmatchedRoute(t *testing.T) {
	_, r := setupHTTP(t)

	w := do(r, http.MethodDelete, "/process", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Resource not found"}`, w.Body.String())
}

func TestHTTPServer_InvokeBatch(t *testing.T) {
	_, r := setupHTTP(t)

	w := do(r, http.MethodPost, "/invoke/notification",
		`{"Records":[{"Sns":{"Message":"{\"recipient\":\"a@b.co\",\"type\":\"email\"}","TopicArn":"arn","MessageId":"m-1"}},{"Sns":{"Message":"plain text","TopicArn":"arn","MessageId":"m-2"}}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"SNS event processed successfully","processed_records":2}`, w.Body.String())

	w = do(r, http.MethodPost, "/invoke/unknown-function", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/invoke/health-check", `{"detail-type":"Scheduled Event"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unknown event type"}`, w.Body.String())
}

func TestHTTPServer_HealthAndMetrics(t *testing.T) {
	_, r := setupHTTP(t)

	w := do(r, http.MethodGet, "/health?details=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Body.String(), `"details"`)

	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event_handlers_api_responses_total")
}
