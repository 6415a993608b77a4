package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atscore/internal/config"
	atscoreErrors "atscore/internal/errors"
	"atscore/internal/observability"
	"atscore/internal/types"
)

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := atscoreErrors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	cfg := &config.Config{
		Analysis: config.AnalysisConfig{MaxTextSize: 100_000},
	}

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}

	s := &Server{
		Host:      "localhost",
		Port:      "8080",
		Version:   "test",
		AppConfig: cfg,
		Logger:    logger,
	}

	return s, om
}

func scoreRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestScoreHandlerValidResume(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	resume := strings.Join([]string{
		"John Smith",
		"john.smith@example.com | 555-123-4567 | linkedin.com/in/johnsmith",
		"",
		"Summary",
		"Backend engineer with five years of experience.",
		"",
		"Experience",
		"Software Engineer, Acme Corp (Jan 2020 - Present)",
		"- Developed a payment service handling 2M requests per day",
		"- Improved API latency by 40% through caching",
		"",
		"Education",
		"BS Computer Science, State University, 2019",
		"",
		"Skills",
		"Go, Python, SQL, Docker, Kubernetes, AWS",
	}, "\n")

	body, _ := json.Marshal(ScoreRequest{Text: resume})
	w := httptest.NewRecorder()
	handler(w, scoreRequest(string(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Score out of range: %d", result.Score)
	}
	if result.ComponentScores == nil {
		t.Error("Expected component scores in response")
	}
	if result.CapApplied == "" {
		t.Error("Expected cap_applied to be set")
	}
	if len(result.DetectedSections) == 0 {
		t.Error("Expected detected sections in response")
	}
}

func TestScoreHandlerMultipartUpload(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	resume := strings.Join([]string{
		"Jane Doe",
		"jane.doe@example.com | 555-987-6543 | linkedin.com/in/janedoe",
		"",
		"Experience",
		"Data Engineer, Widgets Inc (Mar 2021 - Present)",
		"- Built ETL pipelines processing 500GB daily",
		"",
		"Education",
		"MS Data Science, Tech University, 2020",
		"",
		"Skills",
		"Python, SQL, Spark, Airflow",
	}, "\n")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("resume", "resume.txt")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(resume)); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Score out of range: %d", result.Score)
	}
}

func TestScoreHandlerMultipartMissingField(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("other", "value"); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/score", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestScoreHandlerMissingText(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	w := httptest.NewRecorder()
	handler(w, scoreRequest(`{"text": "   "}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "Missing resume text" {
		t.Errorf("Unexpected error: %q", errResp.Error)
	}
}

func TestScoreHandlerInvalidJSON(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	w := httptest.NewRecorder()
	handler(w, scoreRequest(`{not json`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestScoreHandlerWrongContentType(t *testing.T) {
	s, om := newTestServer(t)
	handler := s.createScoreHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/score", bytes.NewBufferString(`{"text": "text"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestScoreHandlerTextTooLarge(t *testing.T) {
	s, om := newTestServer(t)
	s.AppConfig.Analysis.MaxTextSize = 100
	handler := s.createScoreHandler(om)

	body, _ := json.Marshal(ScoreRequest{Text: strings.Repeat("a", 200)})
	w := httptest.NewRecorder()
	handler(w, scoreRequest(string(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "Resume text too large" {
		t.Errorf("Unexpected error: %q", errResp.Error)
	}
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	s, _ := newTestServer(t)

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/score", nil))

	if !called {
		t.Error("Handler should be called when no API keys are configured")
	}
}

func TestAuthMiddlewareRejectsMissingKey(t *testing.T) {
	s, _ := newTestServer(t)
	s.APIKeys = map[string]bool{"secret-key": true}

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called without an API key")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/score", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareAcceptsValidKey(t *testing.T) {
	s, _ := newTestServer(t)
	s.APIKeys = map[string]bool{"secret-key": true}

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("XAPIKeyHeader", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "secret-key")
		w := httptest.NewRecorder()
		handler(w, req)
		if !called {
			t.Error("Handler should be called with a valid X-API-Key")
		}
	})

	t.Run("BearerToken", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("Authorization", "Bearer secret-key")
		w := httptest.NewRecorder()
		handler(w, req)
		if !called {
			t.Error("Handler should be called with a valid Bearer token")
		}
	})

	t.Run("InvalidKey", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		w := httptest.NewRecorder()
		handler(w, req)
		if called {
			t.Error("Handler should not be called with an invalid key")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"LongKey", "abcdefghijklmnop", "abcdefgh****"},
		{"ExactlyEight", "abcdefgh", "****"},
		{"ShortKey", "abc", "****"},
		{"EmptyKey", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.key); got != tt.expected {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}
