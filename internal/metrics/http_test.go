package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/smallbiznis/papermill/internal/config"
)

func testHTTPMetrics(t *testing.T) *HTTPMetrics {
	t.Helper()
	m, err := NewHTTPMetrics(config.Config{}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewHTTPMetrics: %v", err)
	}
	return m
}

func TestGinMiddlewarePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(GinMiddleware(testHTTPMetrics(t)))
	e.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "pong" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestGinMiddlewareNilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(GinMiddleware(nil))
	e.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/api/documents/render", "/api/documents/render"},
		{"  ", "unknown"},
		{"", "unknown"},
	}
	for _, c := range cases {
		if got := normalizeEndpoint(c.in); got != c.want {
			t.Fatalf("normalizeEndpoint(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
