package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	loggerpkg "team-management.backend/pkg/logger"
	"team-management.backend/pkg/metrics"
)

func TestResponseWriter_Write(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w := responseWriter{
		ResponseWriter: c.Writer,
		body:           &bytes.Buffer{},
	}

	n, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "ok", w.body.String())
	require.Equal(t, "ok", rec.Body.String())
}

func TestRequestIDMiddleware_GeneratesAndUsesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates request id when header missing", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/x", func(c *gin.Context) {
			id, ok := c.Get(RequestIDKey)
			require.True(t, ok)
			require.NotEmpty(t, id.(string))
			require.Equal(t, id, c.Request.Context().Value(loggerpkg.RequestIDKey))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	})

	t.Run("uses provided request id header", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/x", func(c *gin.Context) {
			id, _ := c.Get(RequestIDKey)
			require.Equal(t, "req-123", id.(string))
			require.Equal(t, "req-123", c.Request.Context().Value(loggerpkg.RequestIDKey))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestLoggerMiddleware_Executes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loggerpkg.Init("test")
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})

	req := httptest.NewRequest(http.MethodGet, "/x?foo=bar", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "created", rec.Body.String())
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/api/teammembers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/teammembers/a", "/api/teammembers/b", "/nowhere"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	// one series for the templated route, one for unmatched
	count, err := testutil.GatherAndCount(m.Registry(), "team_management_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestMetricsMiddleware_TrailingSlashSharesSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(MetricsMiddleware(m))
	r.GET("/api/teammembers", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/teammembers/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/teammembers", "/api/teammembers/"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(m.Registry(), "team_management_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	start := time.Now()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Less(t, time.Since(start), time.Second)
}
