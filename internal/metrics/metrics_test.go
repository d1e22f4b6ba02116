package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/v1/posts/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/posts/1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	m.Write("post", "create")
	m.Write("post", "create")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.writes.WithLabelValues("post", "create")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/v1/posts/:id"`)
	assert.Contains(t, w.Body.String(), "resource_writes_total")
}

func TestNilMetricsWriteIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Write("post", "create") })
}
