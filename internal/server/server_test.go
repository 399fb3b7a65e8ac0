package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsbrief/internal/brief"
	"github.com/jonesrussell/newsbrief/internal/config"
	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
	"github.com/jonesrussell/newsbrief/internal/metrics"
	"github.com/jonesrussell/newsbrief/internal/server"
)

func newTestServer(t *testing.T) (*server.Server, *brief.Store) {
	t.Helper()

	briefs := brief.NewStore(t.TempDir(), logger.NewNoOp())
	srv := server.New(config.ServerConfig{Address: ":0"}, briefs, metrics.New(), logger.NewNoOp(), false)
	return srv, briefs
}

func doRequest(t *testing.T, srv *server.Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestGetBrief_Found(t *testing.T) {
	srv, briefs := newTestServer(t)

	content := "# Brief\n\n双语内容\n"
	_, err := briefs.Write(datekey.Key("20250314"), content)
	require.NoError(t, err)

	rec := doRequest(t, srv, "/briefs/20250314")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
}

func TestGetBrief_Missing(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/briefs/20250314")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBrief_BadDateKey(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/briefs/2025-03-14", "/briefs/notadate", "/briefs/20241301"} {
		rec := doRequest(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "newsbrief_briefs_generated_total")
}
