package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/httpapi"
)

func TestDefaultServerConfigHasSensibleDefaults(t *testing.T) {
	cfg := httpapi.DefaultServerConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.NotEmpty(t, cfg.Host)
	assert.NotZero(t, cfg.ReadTimeout)
	assert.NotZero(t, cfg.ShutdownTimeout)
}

func TestNewServerRegistersImportRoutes(t *testing.T) {
	cfg := httpapi.DefaultServerConfig()
	server := httpapi.NewServer(cfg, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/v1/formats", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShutdownWithoutStartIsNoOp(t *testing.T) {
	cfg := httpapi.DefaultServerConfig()
	server := httpapi.NewServer(cfg, nil, "test")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))
}
