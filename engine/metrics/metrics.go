// Package metrics exposes gallery counters on a private Prometheus registry.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics with bounded cardinality: labels are actor classes and results only
type Metrics struct {
	reg *prometheus.Registry

	BurstsTriggered *prometheus.CounterVec
	Destroys        *prometheus.CounterVec
	Respawns        *prometheus.CounterVec
	Score           prometheus.Gauge
	HighScore       prometheus.Gauge
	Drawables       prometheus.Gauge
	TickDuration    prometheus.Histogram
	TrackChanges    prometheus.Counter
}

// New registers every collector on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		BurstsTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_bursts_triggered_total",
			Help: "Bursts started, by actor class",
		}, []string{"class"}),
		Destroys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_destroys_total",
			Help: "Destroy requests, by actor class and result",
		}, []string{"class", "result"}), // result: accepted | ignored
		Respawns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_respawns_total",
			Help: "Actors back alive after a burst, by actor class",
		}, []string{"class"}),
		Score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gallery_score",
			Help: "Current session score",
		}),
		HighScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gallery_high_score",
			Help: "Best score",
		}),
		Drawables: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gallery_drawables",
			Help: "Drawables in the drawn set",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gallery_tick_duration_seconds",
			Help:    "Time spent in one simulation frame",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033},
		}),
		TrackChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_track_changes_total",
			Help: "Jukebox track changes",
		}),
	}
	reg.MustRegister(
		m.BurstsTriggered, m.Destroys, m.Respawns,
		m.Score, m.HighScore, m.Drawables, m.TickDuration, m.TrackChanges,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry is the private registry behind the handler
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// RecordDestroy counts one destroy request
func (m *Metrics) RecordDestroy(class string, accepted bool) {
	if m == nil {
		return
	}
	result := "ignored"
	if accepted {
		result = "accepted"
		m.BurstsTriggered.WithLabelValues(class).Inc()
	}
	m.Destroys.WithLabelValues(class, result).Inc()
}

// RecordRespawn counts an actor coming back
func (m *Metrics) RecordRespawn(class string) {
	if m == nil {
		return
	}
	m.Respawns.WithLabelValues(class).Inc()
}

// RecordScore updates the score gauges
func (m *Metrics) RecordScore(score, high int) {
	if m == nil {
		return
	}
	m.Score.Set(float64(score))
	m.HighScore.Set(float64(high))
}

// RecordFrame records one frame's simulation cost and drawn-set size
func (m *Metrics) RecordFrame(d time.Duration, drawables int) {
	if m == nil {
		return
	}
	m.TickDuration.Observe(d.Seconds())
	m.Drawables.Set(float64(drawables))
}

// RecordTrackChange counts a jukebox track change
func (m *Metrics) RecordTrackChange() {
	if m == nil {
		return
	}
	m.TrackChanges.Inc()
}

// Router serves /metrics and /healthz
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

// Server is the running metrics endpoint
type Server struct {
	srv  *http.Server
	ln   net.Listener
	done chan error
	log  zerolog.Logger
}

// Serve starts listening on addr in the background
func (m *Metrics) Serve(addr string, log zerolog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{
			Handler:           m.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:   ln,
		done: make(chan error, 1),
		log:  log.With().Str("component", "metrics").Logger(),
	}
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("metrics server listening")
	return s, nil
}

// Addr is the bound address
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Shutdown stops the server, waiting at most until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	err := <-s.done
	if err != nil {
		s.log.Warn().Err(err).Msg("metrics server stopped with error")
	}
	return err
}
