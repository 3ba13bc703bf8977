package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"codeberg.org/snonux/rapwiz/internal/lyrics"
	"codeberg.org/snonux/rapwiz/internal/phonetic"
)

const maxBodyBytes = 1 << 20

const (
	msgMissingLyrics = "Missing 'lyrics' field in request body"
	msgEmptyLyrics   = "Lyrics cannot be empty"
	msgInternal      = "Internal server error occurred while analyzing lyrics"
)

// analyzer is the part of *lyrics.Analyzer the handlers need.
type analyzer interface {
	Analyze(ctx context.Context, text string) (*lyrics.Result, error)
}

// Handler serves the API routes.
type Handler struct {
	analyzer    analyzer
	transcriber phonetic.Transcriber
	version     string
	logger      *slog.Logger
}

// NewHandler creates the route handlers.
func NewHandler(a analyzer, transcriber phonetic.Transcriber, version string, logger *slog.Logger) *Handler {
	return &Handler{
		analyzer:    a,
		transcriber: transcriber,
		version:     version,
		logger:      logger,
	}
}

// HomeResponse is the JSON response for GET /.
type HomeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Lyrics *string `json:"lyrics"`
}

// AnalyzeResponse wraps either a result or an error message.
type AnalyzeResponse struct {
	Success bool           `json:"success"`
	Data    *lyrics.Result `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Home is the service banner.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HomeResponse{
		Status:  "healthy",
		Message: "RapWizIL Hebrew Rap Visualization API",
		Version: h.version,
	})
}

// Analyze runs the analyzer on the posted lyrics.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lyrics == nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, msgMissingLyrics)
		return
	}

	text := strings.TrimSpace(*req.Lyrics)
	if text == "" {
		writeError(w, http.StatusBadRequest, msgEmptyLyrics)
		return
	}

	h.logger.InfoContext(r.Context(), "processing lyrics",
		slog.Int("characters", len([]rune(text))),
		slog.String("request_id", RequestIDFromContext(r.Context())))

	result, err := h.analyzer.Analyze(r.Context(), text)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: result})
	case errors.Is(err, lyrics.ErrNoHebrewText):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, lyrics.ErrAnalysisFailed):
		h.logger.ErrorContext(r.Context(), "analysis failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "analysis failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// Health runs the transcriber self-test.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	status, code, processor := "healthy", http.StatusOK, "ready"
	if !phonetic.SelfTest(ctx, h.transcriber) {
		status, code, processor = "unhealthy", http.StatusServiceUnavailable, "error"
	}

	components := map[string]string{
		"nlp_processor": processor,
		"transcriber":   h.transcriber.Name(),
	}
	// An open breaker degrades to the built-in table, so it is reported
	// without failing the check.
	if state, ok := phonetic.BreakerState(h.transcriber); ok {
		components["g2p_breaker"] = state.String()
	}

	writeJSON(w, code, HealthResponse{
		Status:     status,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, AnalyzeResponse{Success: false, Error: msg})
}
