package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDestroy(t *testing.T) {
	m := New()
	m.RecordDestroy("letter", true)
	m.RecordDestroy("letter", false)
	m.RecordDestroy("ship", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Destroys.WithLabelValues("letter", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Destroys.WithLabelValues("letter", "ignored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BurstsTriggered.WithLabelValues("ship")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDestroy("letter", true)
		m.RecordRespawn("ship")
		m.RecordScore(1, 2)
		m.RecordFrame(time.Millisecond, 3)
		m.RecordTrackChange()
	})
}

func TestRouter(t *testing.T) {
	m := New()
	m.RecordScore(110, 340)
	ts := httptest.NewServer(m.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "gallery_score 110")
	assert.Contains(t, string(body), "gallery_high_score 340")
}

func TestServeAndShutdown(t *testing.T) {
	m := New()
	s, err := m.Serve("127.0.0.1:0", zerolog.Nop())
	require.NoError(t, err)

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}
