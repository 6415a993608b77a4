package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"atscore/internal/ats"
	"atscore/internal/observability"
	"atscore/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createScoreHandler wraps the score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atscore.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		// Parse request (JSON body or multipart file upload)
		resumeText, err := s.extractResumeText(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(resumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "text field or resume file is required", http.StatusBadRequest)
			return
		}

		// Size validation
		maxTextSize := s.AppConfig.Analysis.MaxTextSize
		if maxTextSize > 0 && int64(len(resumeText)) > maxTextSize {
			err := fmt.Errorf("resume text too large: %d chars", len(resumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("text exceeds size limit of %d bytes", maxTextSize), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.String("operation", "score"),
		)

		// Track scoring operation with observability
		metrics := om.GetMetrics()
		var result *types.EvaluationResult
		err = metrics.TrackScoreOperation(ctx, "score", func(ctx context.Context) *observability.ScoreOperationResult {
			result = ats.Analyze(resumeText)
			return &observability.ScoreOperationResult{
				Score:        result.Score,
				CapApplied:   result.CapApplied,
				ContentBytes: len(resumeText),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "scoring"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to score resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		s.Stats.Scored.Add(1)
		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("score.final", result.Score),
			attribute.Int("score.raw", result.RawScore))
		if result.CapApplied != types.CapNone {
			metrics.RecordBusinessMetric(ctx, "score_cap_applied", true, om,
				attribute.String("cap.reason", result.CapApplied))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.score", result.Score),
			attribute.Int("response.raw_score", result.RawScore),
			attribute.String("response.cap", result.CapApplied),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// extractResumeText pulls the resume text out of a JSON body or a
// multipart upload with a plain-text "resume" file field.
func (s *Server) extractResumeText(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			return "", fmt.Errorf("failed to parse multipart form: %w", err)
		}
		file, _, err := r.FormFile("resume")
		if err != nil {
			return "", fmt.Errorf("multipart form is missing the 'resume' file field: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded resume: %w", err)
		}
		return string(data), nil
	}

	var req ScoreRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return "", err
	}
	return req.Text, nil
}

// multipartMemoryLimit bounds in-memory buffering of uploads; larger parts
// spill to temp files and the body is already capped by MaxBytesReader.
const multipartMemoryLimit = 1 << 20

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
