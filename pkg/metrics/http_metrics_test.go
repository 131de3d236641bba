package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", StatusCategory(http.StatusOK))
	assert.Equal(t, "4xx", StatusCategory(http.StatusNotFound))
	assert.Equal(t, "5xx", StatusCategory(http.StatusInternalServerError))
	assert.Equal(t, "", StatusCategory(http.StatusMovedPermanently))
}

func TestMiddlewareCountsRequests(t *testing.T) {
	m := NewHTTPMetrics("test-svc")
	// registering twice must not panic
	NewHTTPMetrics("test-svc")

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("test-svc", http.MethodGet, "/ping", "204"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("test-svc", http.MethodGet, "/ping", "204"))
	assert.Equal(t, before+1, after)
}
