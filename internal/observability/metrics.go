package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/envutil"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	llmRequests  *CounterVec
	llmLatency   *HistogramVec
	planAttempts *CounterVec
	planRuns     *CounterVec
	planDuration *HistogramVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

// Current returns the process metrics, or nil when metrics are disabled.
// Every method is nil-safe.
func Current() *Metrics {
	return instance
}

func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("cc_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"cc_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		),
		apiInflight: NewGauge("cc_api_inflight_requests", "In-flight API requests."),
		llmRequests: NewCounterVec("cc_llm_requests_total", "LLM calls by operation/status.", []string{"operation", "status"}),
		llmLatency: NewHistogramVec(
			"cc_llm_request_duration_seconds",
			"LLM call latency in seconds by operation.",
			[]string{"operation"},
			[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		),
		planAttempts: NewCounterVec("cc_plan_month_attempts_total", "Month plan attempts by outcome.", []string{"outcome"}),
		planRuns:     NewCounterVec("cc_plan_runs_total", "Plan runs by terminal status.", []string{"status"}),
		planDuration: NewHistogramVec(
			"cc_plan_run_duration_seconds",
			"Plan run duration in seconds by terminal status.",
			[]string{"status"},
			[]float64{10, 30, 60, 120, 240, 480, 900},
		),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency,
		m.planAttempts, m.planRuns, m.planDuration,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLM(operation string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.llmRequests.Inc(operation, status)
	m.llmLatency.Observe(dur.Seconds(), operation)
}

// IncPlanAttempt records a month attempt outcome: accepted, rejected or precheck_rejected.
func (m *Metrics) IncPlanAttempt(outcome string) {
	if m == nil {
		return
	}
	m.planAttempts.Inc(outcome)
}

func (m *Metrics) ObservePlanRun(status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.planRuns.Inc(status)
	m.planDuration.Observe(dur.Seconds(), status)
}
