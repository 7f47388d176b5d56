package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/rolecolor-agent/internal/server/ratelimit"
)

// newTestServer creates a server without a database for handler tests
func newTestServer() *Server {
	return &Server{
		apiKey:      "",
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp["status"])
	}
}

// TestScoreEndpoint tests /score with a Builder-leaning text
func TestScoreEndpoint(t *testing.T) {
	s := newTestServer()

	body := `{"text": "Architected a scalable platform and drove innovation with a long-term vision."}`
	req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ScoreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Score == nil {
		t.Fatal("expected score in response")
	}
	if resp.Score.DominantRole != "Builder" {
		t.Errorf("expected dominant role Builder, got %s", resp.Score.DominantRole)
	}
	if len(resp.TopKeywords) == 0 {
		t.Error("expected top keywords in response")
	}
}

// TestScoreEndpoint_MissingText tests /score with missing required field
func TestScoreEndpoint_MissingText(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestScoreEndpoint_InvalidJSON tests /score with a malformed body
func TestScoreEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString(`{not json`))
	w := httptest.NewRecorder()

	s.handleScore(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestRenderEndpoint tests /render with valid fields
func TestRenderEndpoint(t *testing.T) {
	s := newTestServer()

	body := `{
		"role": "Thriver",
		"fields": {
			"name": "Grace Hopper",
			"contact": "grace@example.com",
			"summary": "Delivers under pressure.",
			"experience": "Led compiler development.",
			"skills": "COBOL, leadership",
			"education": "PhD Mathematics, Yale"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RenderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if !strings.Contains(resp.LaTeX, "Grace Hopper") {
		t.Error("expected rendered document to contain the candidate name")
	}
	if !strings.Contains(resp.LaTeX, `\documentclass`) {
		t.Error("expected rendered document to contain a preamble")
	}
	if resp.Report == nil || !resp.Report.Valid {
		t.Error("expected rendered document to pass structural validation")
	}
	if resp.Template != "full" {
		t.Errorf("expected default template 'full', got %q", resp.Template)
	}
}

// TestRenderEndpoint_InvalidRole tests /render with an unknown role
func TestRenderEndpoint_InvalidRole(t *testing.T) {
	s := newTestServer()

	body := `{"role": "Wizard", "fields": {"name": "X"}}`
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleRender(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestRenderEndpoint_UnknownTemplate tests /render with a bad template ID
func TestRenderEndpoint_UnknownTemplate(t *testing.T) {
	s := newTestServer()

	body := `{"role": "Builder", "template": "nope", "fields": {"name": "X"}}`
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleRender(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
}

// TestValidateEndpoint tests /validate with an unbalanced document
func TestValidateEndpoint(t *testing.T) {
	s := newTestServer()

	payload := map[string]string{
		"document": `\documentclass{article}\begin{document}{unbalanced\end{document}`,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	s.handleValidate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Valid {
		t.Error("expected document with unbalanced braces to be invalid")
	}
	if len(resp.Errors) == 0 {
		t.Error("expected validation errors")
	}
}

// TestExtractEndpoint tests /extract with section-headered text
func TestExtractEndpoint(t *testing.T) {
	s := newTestServer()

	payload := map[string]string{
		"text": "NAME: Ada Lovelace\nCONTACT: ada@example.com\nSKILLS: Analysis, Programming",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	s.handleExtract(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["name"] != "Ada Lovelace" {
		t.Errorf("expected name 'Ada Lovelace', got %q", resp["name"])
	}
}

// TestExtractEndpoint_NoSections tests /extract with unstructured text
func TestExtractEndpoint_NoSections(t *testing.T) {
	s := newTestServer()

	body := `{"text": "just some plain prose without any headers"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleExtract(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
}

// TestListTemplatesEndpoint tests /templates
func TestListTemplatesEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()

	s.handleListTemplates(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	found := false
	for _, id := range resp["templates"] {
		if id == "full" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'full' template in list")
	}
}

// TestRunEndpoint_MissingResume tests /run with no resume source
func TestRunEndpoint_MissingResume(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	s.handleRun(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestRunEndpoint_BothSources tests /run with resume and resume_url together
func TestRunEndpoint_BothSources(t *testing.T) {
	s := newTestServer()

	body := `{"resume": "resume.txt", "resume_url": "https://example.com/resume"}`
	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	s.handleRun(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestRunsEndpoints_NoDatabase tests that history endpoints return 503 without a DB
func TestRunsEndpoints_NoDatabase(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()

	s.handleListRuns(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

// TestGetRun_InvalidID tests GET /runs/{id} with a malformed UUID
func TestGetRun_InvalidID(t *testing.T) {
	s := newTestServer()
	s.db = nil

	req := httptest.NewRequest(http.MethodGet, "/runs/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetRun(w, req)

	// Database guard fires before ID parsing
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

// TestCORSMiddleware tests the OPTIONS preflight handling
func TestCORSMiddleware(t *testing.T) {
	s := newTestServer()

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/score", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected preflight status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS origin header")
	}

	// Non-OPTIONS requests pass through
	req = httptest.NewRequest(http.MethodGet, "/score", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected pass-through status 418, got %d", w.Code)
	}
}

// TestRateLimitMiddleware tests that exhausted buckets return 429
func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer()
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: 3600e9, // one hour
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
	})
	defer s.rateLimiter.Stop()

	handler := s.withRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/score", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on second request, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on limited response")
	}
}
