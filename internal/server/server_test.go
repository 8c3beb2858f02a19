package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/types"
)

const testResume = "Jane Doe\njane@example.com\n\nSkills\nGo, Python, Docker\n\n" +
	"Experience\nBackend Engineer | Jan 2022 - Present\nGlobex\n" +
	"• Built 12 Go services handling 2M requests per day"

const testJD = "Backend Engineer\n\nRequirements\n• Go, Python\n\nNice to have\n• Kubernetes"

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Hygiene = 50

	s, err := New(cfg, nil, nil)
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestConfigEndpoint(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := do(t, s, http.MethodGet, "/config", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("exposes scoring settings", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) { c.Server.ExposeConfig = true })
		w := do(t, s, http.MethodGet, "/config", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		weights, ok := resp["weights"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 40, weights["core"])
		assert.EqualValues(t, 25000, resp["max_resume_length"])
		assert.NotContains(t, resp, "object_store")
		assert.NotContains(t, resp, "worker")
	})
}

func TestParseEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]string{"kind": "resume", "content": testResume})
	w := do(t, s, http.MethodPost, "/parse", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Kind   string              `json:"kind"`
		Parsed types.ResumeProfile `json:"parsed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "resume", resp.Kind)
	assert.Equal(t, "jane@example.com", resp.Parsed.Contact.Email)
	assert.Contains(t, []string(resp.Parsed.Skills), "Go")
	require.Len(t, resp.Parsed.Experience, 1)
}

func TestParseEndpoint_TypeAlias(t *testing.T) {
	s := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]string{"type": "JD", "content": testJD})
	w := do(t, s, http.MethodPost, "/parse", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Kind   string               `json:"kind"`
		Parsed types.JobDescription `json:"parsed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jd", resp.Kind)
	assert.Contains(t, []string(resp.Parsed.Required), "Go")
}

func TestParseEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "unknown kind", body: `{"kind": "cover_letter", "content": "x"}`, field: "kind"},
		{name: "missing kind", body: `{"content": "x"}`, field: "kind"},
		{name: "missing content", body: `{"kind": "resume"}`, field: "content"},
		{name: "content wrong type", body: `{"kind": "resume", "content": 42}`, field: "content"},
		{name: "malformed JSON", body: `{"kind": `, field: "body"},
		{name: "not an object", body: `["resume"]`, field: "body"},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/parse", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			resp := decodeError(t, w)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestAnalyzeEndpoint_Text(t *testing.T) {
	s := newTestServer(t, nil)

	body, _ := json.Marshal(map[string]string{"resume_text": testResume, "jd_text": testJD})
	w := do(t, s, http.MethodPost, "/analyze", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.AnalysisID)
	assert.Equal(t, []string{"Go", "Python"}, result.Matched)
	assert.Equal(t, []string{"Kubernetes"}, result.Missing)
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 100)
}

func TestAnalyzeEndpoint_Structured(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{
		"resume": {"skills": ["Go", "Python"], "experience": [{"company": "Globex", "role": "Engineer", "start": "2022", "end": "Present", "bullets": ["Built Go services"]}]},
		"jd": {"title": "Backend Engineer", "required": ["Go", "Kubernetes"]}
	}`
	w := do(t, s, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, result.Matched, "Go")
	assert.Contains(t, result.Missing, "Kubernetes")
}

func TestAnalyzeEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing resume", body: `{"jd_text": "Requirements\n• Go"}`, field: "resume"},
		{name: "missing jd", body: `{"resume_text": "Skills\nGo"}`, field: "jd"},
		{name: "both resume forms", body: `{"resume": {}, "resume_text": "Go", "jd_text": "Go"}`, field: "resume"},
		{name: "skills wrong type", body: `{"resume": {"skills": 42}, "jd_text": "Go"}`, field: "resume.skills"},
		{name: "jd required wrong type", body: `{"resume_text": "Go", "jd": {"required": {"a": 1}}}`, field: "jd.required"},
		{name: "resume not an object", body: `{"resume": 5, "jd_text": "Go"}`, field: "resume"},
		{name: "resume_text wrong type", body: `{"resume_text": 5, "jd_text": "Go"}`, field: "resume_text"},
	}

	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.field, decodeError(t, w).Field)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.MaxBodyBytes = 64 })

	body, _ := json.Marshal(map[string]string{"kind": "resume", "content": strings.Repeat("Go ", 100)})
	w := do(t, s, http.MethodPost, "/parse", string(body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Chunked bodies have no Content-Length and are cut off while decoding.
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(string(body)))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimitEnabled = true
		c.Server.RateLimitPerMinute = 60
		c.Server.RateLimitBurst = 2
		c.Server.ExposeConfig = true
	})

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodGet, "/config", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodGet, "/config", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// Health checks are never limited.
	w = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("allow list", func(t *testing.T) {
		s := newTestServer(t, func(c *config.Config) {
			c.Server.AllowedOrigins = []string{"https://app.example.com"}
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestStart_GracefulShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Server.ShutdownSeconds = 1
	s, err := New(cfg, nil, nil)
	require.NoError(t, err)
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
