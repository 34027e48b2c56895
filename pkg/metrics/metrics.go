// Package metrics exposes console metrics for prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scorch_console"

type Metrics struct {
	registry *prometheus.Registry

	// requests counts page requests.
	// Labels: route, method, code
	requests *prometheus.CounterVec

	// latency measures page responses in seconds.
	// Labels: route, method
	latency *prometheus.HistogramVec

	// upstreamLatency measures requests to Scorch in seconds.
	// Labels: operation, code ("0" for no response)
	upstreamLatency *prometheus.HistogramVec

	// upstreamFailures counts failed requests to Scorch.
	// Labels: operation
	upstreamFailures *prometheus.CounterVec
}

// New creates metrics registered in a new registry, with process and go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total page requests",
		}, []string{"route", "method", "code"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "latency_seconds",
			Help:      "Page response latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scorch",
			Name:      "latency_seconds",
			Help:      "Scorch API latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "code"}),
		upstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scorch",
			Name:      "failures_total",
			Help:      "Total failed requests to Scorch, including rejections by the circuit breaker",
		}, []string{"operation"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves metrics in the prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records each request by its route pattern, not its raw path.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		begin := time.Now()
		err := next(c)

		code := c.Response().Status
		if err != nil {
			code = http.StatusInternalServerError
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
		}
		route := c.Path()
		method := c.Request().Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
		m.latency.WithLabelValues(route, method).Observe(time.Since(begin).Seconds())
		return err
	}
}

// ObserveUpstream records a request to Scorch.
//
// Its signature matches rest.Observer.
func (m *Metrics) ObserveUpstream(op string, status int, err error, elapsed time.Duration) {
	m.upstreamLatency.WithLabelValues(op, strconv.Itoa(status)).Observe(elapsed.Seconds())
	if err != nil {
		m.upstreamFailures.WithLabelValues(op).Inc()
	}
}
