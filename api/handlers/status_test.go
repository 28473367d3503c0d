package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHandler_Info(t *testing.T) {
	_, api := humatest.New(t)
	NewStatusHandler(&mockClients{count: 3}, "1.0.0").RegisterRoutes(api)

	resp := api.Get("/")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "AI News App Backend", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, float64(3), body["clients"])
}

func TestStatusHandler_Health(t *testing.T) {
	_, api := humatest.New(t)
	h := NewStatusHandler(&mockClients{}, "1.0.0")
	h.started = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return h.started.Add(90 * time.Second) }
	h.RegisterRoutes(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Uptime    float64   `json:"uptime"`
		Clients   int       `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, 90.0, body.Uptime)
	assert.True(t, body.Timestamp.Equal(h.started.Add(90*time.Second)))
	assert.Equal(t, 0, body.Clients)
}
