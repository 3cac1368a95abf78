package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/api"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/config"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/store"
)

func TestHealthHandler_MemoryBackend(t *testing.T) {
	os.Clearenv()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	lg := logger.New("ERROR", io.Discard)
	svc := service.New(store.NewMemoryTaskStore(), "memory", lg)
	handler := api.NewHealthHandler(cfg, svc, lg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "memory", resp.StoreBackend)
	assert.Equal(t, false, resp.StoreConfigured)
	assert.Equal(t, true, resp.StoreHealthy)
	assert.Assert(t, resp.Timestamp != "")
	assert.Assert(t, resp.Uptime != "")
}

func TestHealthHandler_UnreachableMongoStaysUp(t *testing.T) {
	os.Clearenv()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	lg := logger.New("ERROR", io.Discard)
	svc := service.New(store.NewMongoTaskStore("mongodb://127.0.0.1:1", "app"), "mongo", lg)
	handler := api.NewHealthHandler(cfg, svc, lg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// The endpoint never fails on a store outage; it reports it instead.
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "mongo", resp.StoreBackend)
	assert.Equal(t, false, resp.StoreHealthy)
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	os.Clearenv()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	lg := logger.New("ERROR", io.Discard)
	svc := service.New(store.NewMemoryTaskStore(), "memory", lg)
	handler := api.NewHealthHandler(cfg, svc, lg)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
