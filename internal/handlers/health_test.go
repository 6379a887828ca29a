package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) HealthCheck(ctx context.Context) error {
	return f.err
}

func decodeHealthResponse(t *testing.T, body string) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	handler := NewHealthHandler(&fakePinger{}, "1.2.3", "dev")

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeHealthResponse(t, resp.Body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "connected", body.Database)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Equal(t, "connectly-app", body.Service)
	assert.Equal(t, "dev", body.Stage)
	assert.NotEmpty(t, body.Timestamp)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	handler := NewHealthHandler(&fakePinger{err: errors.New("connection refused")}, "1.2.3", "dev")

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body := decodeHealthResponse(t, resp.Body)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "disconnected", body.Database)
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	handler := NewHealthHandler(nil, "1.2.3", "dev")

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeHealthResponse(t, resp.Body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "not configured", body.Database)
}
