package observability

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveBusiness(false, 12, 20*time.Millisecond)
	m.ObserveBusiness(true, 0, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `aspectsum_businesses_total{status="ok"} 1`)
	assert.Contains(t, out, `aspectsum_businesses_total{status="failed"} 1`)
	assert.Contains(t, out, "aspectsum_sentences_total 12")
	assert.Contains(t, out, "aspectsum_summary_duration_seconds_count 2")
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "production", "warn")
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewLoggerBadLevelDefaultsToInfo(t *testing.T) {
	l := newLogger(io.Discard, "dev", "loud")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
