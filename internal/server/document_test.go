package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/assets"
	"github.com/smallbiznis/papermill/internal/config"
	docservice "github.com/smallbiznis/papermill/internal/document/service"
	"github.com/smallbiznis/papermill/internal/metrics"
	"github.com/smallbiznis/papermill/internal/render"
)

func testStack(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	if cfg.HTTP.RenderRateLimit == 0 {
		cfg.HTTP.RenderRateLimit = 100
	}
	if cfg.HTTP.RenderRateWindow == 0 {
		cfg.HTTP.RenderRateWindow = time.Minute
	}
	if cfg.Assets.HTTPTimeout == 0 {
		cfg.Assets.HTTPTimeout = time.Second
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	svc := docservice.NewService(docservice.ServiceParam{
		Log:    log,
		Assets: assets.NewResolver(assets.ResolverParam{Log: log, Config: cfg}),
		Engine: render.NewEngine(render.EngineParam{Log: log, Config: render.DefaultConfig()}),
		Node:   node,
	})
	m, err := metrics.NewHTTPMetrics(cfg, noop.NewMeterProvider())
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(ServerParam{Log: log, Config: cfg, Docs: svc, Metrics: m})
	return NewEngine(cfg, srv)
}

func renderPayload() map[string]any {
	return map[string]any{
		"kind":       "invoice",
		"number":     "INV-2026-0001",
		"issue_date": "2026-02-01",
		"issuer":     map[string]any{"name": "ร้านสองพี่น้อง"},
		"customer":   map[string]any{"name": "คุณสมชาย"},
		"items": []map[string]any{
			{"description": "สินค้า", "quantity": 1, "unit_price": 100, "amount": 100},
		},
		"totals": map[string]any{"subtotal": 100, "grand_total": 100},
	}
}

func postRender(t *testing.T, e *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/documents/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRenderEndpointReturnsPDF(t *testing.T) {
	e := testStack(t, config.Config{})
	w := postRender(t, e, renderPayload())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "INV-2026-0001.pdf") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if w.Header().Get("X-Content-Overflow") != "false" {
		t.Fatal("overflow header missing")
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
}

func TestRenderEndpointRejectsUnknownKind(t *testing.T) {
	e := testStack(t, config.Config{})
	payload := renderPayload()
	payload["kind"] = "postcard"
	w := postRender(t, e, payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_kind") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRenderEndpointRejectsMissingNumber(t *testing.T) {
	e := testStack(t, config.Config{})
	payload := renderPayload()
	payload["number"] = ""
	w := postRender(t, e, payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing_number") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRenderEndpointRejectsBadDate(t *testing.T) {
	e := testStack(t, config.Config{})
	payload := renderPayload()
	payload["issue_date"] = "01/02/2026"
	w := postRender(t, e, payload)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_date") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRenderEndpointRejectsBadJSON(t *testing.T) {
	e := testStack(t, config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/documents/render", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRenderEndpointRateLimits(t *testing.T) {
	e := testStack(t, config.Config{
		HTTP: config.HTTPConfig{RenderRateLimit: 1, RenderRateWindow: time.Minute},
	})

	if w := postRender(t, e, renderPayload()); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	w := postRender(t, e, renderPayload())
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rate_limited") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	e := testStack(t, config.Config{Service: config.ServiceConfig{Name: "papermill", Version: "test"}})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "papermill") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestCreditNoteEndpointMapsDetails(t *testing.T) {
	e := testStack(t, config.Config{})
	payload := renderPayload()
	payload["kind"] = "credit_note"
	payload["number"] = "CN-2026-0001"
	payload["credit_note"] = map[string]any{
		"reason_code":   "defective_product",
		"refund_method": "transfer",
		"refund_date":   "2026-02-10",
		"refund_amount": 100,
	}
	w := postRender(t, e, payload)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "CN-2026-0001.pdf") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
}
