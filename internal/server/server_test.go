package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/rapwiz/internal/lyrics"
	"codeberg.org/snonux/rapwiz/internal/phonetic"
	"codeberg.org/snonux/rapwiz/internal/testutil"
)

type analyzerFunc func(ctx context.Context, text string) (*lyrics.Result, error)

func (f analyzerFunc) Analyze(ctx context.Context, text string) (*lyrics.Result, error) {
	return f(ctx, text)
}

type emptyTranscriber struct{}

func (emptyTranscriber) Transcribe(context.Context, string) string { return "" }
func (emptyTranscriber) Name() string                              { return "broken" }
func (emptyTranscriber) Available() bool                           { return false }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, a analyzer, config Config) http.Handler {
	t.Helper()

	if a == nil {
		a = lyrics.NewAnalyzer(nil, lyrics.WithLogger(discardLogger()))
	}
	s := New(config, a, phonetic.NewFallback(), "1.0.0", discardLogger())
	t.Cleanup(s.Close)
	return s.Handler()
}

func postAnalyze(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAnalyze(t *testing.T, rec *httptest.ResponseRecorder) AnalyzeResponse {
	t.Helper()

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHome(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, DefaultConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HomeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, HomeResponse{
		Status:  "healthy",
		Message: "RapWizIL Hebrew Rap Visualization API",
		Version: "1.0.0",
	}, resp)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	lyricsJSON, err := json.Marshal(map[string]string{"lyrics": testutil.CoupletLyrics})
	require.NoError(t, err)

	h := newTestServer(t, nil, DefaultConfig())
	rec := postAnalyze(t, h, string(lyricsJSON))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	resp := decodeAnalyze(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "AABB", resp.Data.RhymeScheme)
	assert.Equal(t, 4, resp.Data.Statistics.TotalLines)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "invalid json", body: "{", wantStatus: http.StatusBadRequest, wantError: "Missing 'lyrics' field in request body"},
		{name: "missing field", body: `{"text":"שלום"}`, wantStatus: http.StatusBadRequest, wantError: "Missing 'lyrics' field in request body"},
		{name: "wrong type", body: `{"lyrics":42}`, wantStatus: http.StatusBadRequest, wantError: "Missing 'lyrics' field in request body"},
		{name: "empty", body: `{"lyrics":""}`, wantStatus: http.StatusBadRequest, wantError: "Lyrics cannot be empty"},
		{name: "blank", body: `{"lyrics":"  \n\t "}`, wantStatus: http.StatusBadRequest, wantError: "Lyrics cannot be empty"},
		{name: "no hebrew", body: `{"lyrics":"hello world"}`, wantStatus: http.StatusUnprocessableEntity, wantError: "No valid Hebrew text found in lyrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestServer(t, nil, DefaultConfig())
			rec := postAnalyze(t, h, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeAnalyze(t, rec)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, DefaultConfig())
	body := `{"lyrics":"` + strings.Repeat("ש", maxBodyBytes) + `"}`
	rec := postAnalyze(t, h, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyzeFailure(t *testing.T) {
	t.Parallel()

	failing := analyzerFunc(func(context.Context, string) (*lyrics.Result, error) {
		return nil, &lyrics.AnalysisError{Reason: "unexpected internal error"}
	})
	h := newTestServer(t, failing, DefaultConfig())
	rec := postAnalyze(t, h, `{"lyrics":"שלום"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Analysis failed: unexpected internal error", decodeAnalyze(t, rec).Error)
}

func TestAnalyzePanicRecovered(t *testing.T) {
	t.Parallel()

	panicking := analyzerFunc(func(context.Context, string) (*lyrics.Result, error) {
		panic("boom")
	})
	h := newTestServer(t, panicking, DefaultConfig())
	rec := postAnalyze(t, h, `{"lyrics":"שלום"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeAnalyze(t, rec).Error)
}

func TestAnalyzeRateLimited(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.RateLimit = 2
	h := newTestServer(t, nil, config)

	for i := 0; i < 2; i++ {
		rec := postAnalyze(t, h, `{"lyrics":"שלום"}`)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := postAnalyze(t, h, `{"lyrics":"שלום"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Other routes are not limited.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	healthRec := httptest.NewRecorder()
	h.ServeHTTP(healthRec, req)
	assert.Equal(t, http.StatusOK, healthRec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, DefaultConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ready", resp.Components["nlp_processor"])
	assert.Equal(t, "builtin", resp.Components["transcriber"])
}

func TestHealthSelfTestFails(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig(), lyrics.NewAnalyzer(nil), emptyTranscriber{}, "1.0.0", discardLogger())
	t.Cleanup(s.Close)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "error", resp.Components["nlp_processor"])
}

func TestHealthReportsBreakerState(t *testing.T) {
	t.Parallel()

	model := &testutil.MockG2P{DefaultError: errors.New("quota exceeded")}
	transcriber := phonetic.NewExternal(phonetic.NewBreakerModel(model, 1, time.Minute, nil), discardLogger())
	s := New(DefaultConfig(), lyrics.NewAnalyzer(transcriber), transcriber, "1.0.0", discardLogger())
	t.Cleanup(s.Close)

	health := func() HealthResponse {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}

	// The first self-test fails at the model and opens the breaker; the
	// fallback key keeps the service healthy.
	first := health()
	assert.Equal(t, "healthy", first.Status)
	assert.Equal(t, "open", first.Components["g2p_breaker"])
	assert.Equal(t, "open", health().Components["g2p_breaker"])
	assert.Equal(t, 1, model.CallCount("שלום"))
}

func TestHealthWithoutBreaker(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, DefaultConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotContains(t, resp.Components, "g2p_breaker")
}

func TestCloseStopsSweeper(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig(), lyrics.NewAnalyzer(nil), phonetic.NewFallback(), "1.0.0", discardLogger())
	s.Close()
	s.Close()

	select {
	case <-s.limiter.stop:
	default:
		t.Fatal("expected the sweeper to be stopped")
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil, DefaultConfig())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRunShutsDown(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Host = "127.0.0.1"
	config.Port = 0
	s := New(config, lyrics.NewAnalyzer(nil), phonetic.NewFallback(), "1.0.0", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}

func TestRequestLogIncludesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	s := New(DefaultConfig(), lyrics.NewAnalyzer(nil), phonetic.NewFallback(), "1.0.0", logger)
	t.Cleanup(s.Close)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"msg":"http.request"`)
}
