package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doJSON(srv, http.MethodGet, "/health/live", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), "uptime")
}

func TestReadiness(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doJSON(srv, http.MethodGet, "/health/ready", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestReadinessDatabaseDown(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})
	srv.db = &stubHealthChecker{err: errors.New("connection refused")}

	rec := doJSON(srv, http.MethodGet, "/health/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"postgres"`)
}

func TestRootProbe(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doJSON(srv, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API is running", rec.Body.String())
}
