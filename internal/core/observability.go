package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan finishes a single traced operation.
type TraceSpan interface {
	End(err error)
}

// OperationStats aggregates the outcomes of one service operation (save, load,
// prune_media).
type OperationStats struct {
	Calls    int64   `json:"calls"`
	Failures int64   `json:"failures"`
	TotalMS  float64 `json:"total_ms"`
}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes per-operation call counts, failure counts,
// and cumulative durations via expvar, for deployments that want
// process-local metrics without a scrape target.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]OperationStats
}

// NewExpvarMetricsRecorder constructs a recorder and publishes it under the
// supplied expvar name. An empty name gets a unique generated one, since
// expvar panics on duplicate registration.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("instructcore_ops_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	rec := &ExpvarMetricsRecorder{
		name: name,
		ops:  make(map[string]OperationStats),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string {
	return r.name
}

// Snapshot returns a copy of the per-operation aggregates.
func (r *ExpvarMetricsRecorder) Snapshot() map[string]OperationStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]OperationStats, len(r.ops))
	for op, stats := range r.ops {
		out[op] = stats
	}
	return out
}

// Observe records a service operation outcome.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	stats := r.ops[operation]
	stats.Calls++
	if !success {
		stats.Failures++
	}
	stats.TotalMS += float64(duration) / float64(time.Millisecond)
	r.ops[operation] = stats
	r.mu.Unlock()
}

// PrometheusMetricsRecorder exports operation timings and outcomes through a
// Prometheus registry.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder constructs a recorder and registers its
// collectors. A nil registerer leaves the collectors unregistered, which is
// useful in tests.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer, namespace string) (*PrometheusMetricsRecorder, error) {
	if namespace == "" {
		namespace = "instructcore"
	}
	rec := &PrometheusMetricsRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of instruction service operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_results_total",
			Help:      "Outcome counts of instruction service operations.",
		}, []string{"operation", "status"}),
	}
	if reg != nil {
		if err := reg.Register(rec.durations); err != nil {
			return nil, err
		}
		if err := reg.Register(rec.results); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Observe records a service operation outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
	r.results.WithLabelValues(operation, status).Inc()
}

// TraceEvent is one completed service operation span.
type TraceEvent struct {
	Op        string    `json:"op"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
	ElapsedMS float64   `json:"elapsed_ms"`
}

// TraceLog records operation spans and optionally streams each one as a JSON
// line to a writer. Completed events stay available through Events.
type TraceLog struct {
	mu     sync.Mutex
	out    *json.Encoder
	events []TraceEvent
}

// NewTraceLog constructs a trace log. A nil writer records events without
// streaming them.
func NewTraceLog(w io.Writer) *TraceLog {
	log := &TraceLog{}
	if w != nil {
		log.out = json.NewEncoder(w)
	}
	return log
}

// Events returns a copy of all completed spans.
func (t *TraceLog) Events() []TraceEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Start implements Tracer.
func (t *TraceLog) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &traceLogSpan{log: t, op: operation, started: time.Now().UTC()}
}

type traceLogSpan struct {
	log     *TraceLog
	op      string
	started time.Time
}

func (s *traceLogSpan) End(err error) {
	event := TraceEvent{
		Op:        s.op,
		OK:        err == nil,
		StartedAt: s.started,
		ElapsedMS: float64(time.Since(s.started)) / float64(time.Millisecond),
	}
	if err != nil {
		event.Error = err.Error()
	}
	s.log.mu.Lock()
	s.log.events = append(s.log.events, event)
	if s.log.out != nil {
		_ = s.log.out.Encode(event)
	}
	s.log.mu.Unlock()
}
