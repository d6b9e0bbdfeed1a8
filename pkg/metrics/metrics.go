package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/valpere/nalsi/pkg/weather"
)

type Metrics struct {
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
	gatherer   prometheus.Gatherer
}

// New registers the collectors with the default Prometheus registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers the collectors with reg and serves them from gatherer
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		gatherer:   gatherer,
	}

	m.counters["bot_updates_total"] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates processed",
		},
		[]string{"type"},
	)

	m.counters["bot_errors_total"] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of bot errors",
		},
		[]string{"type"},
	)

	m.counters["weather_requests_total"] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_requests_total",
			Help: "Total number of weather API requests",
		},
		[]string{"kind", "status"},
	)

	m.counters["rate_limited_total"] = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"surface"},
	)

	m.histograms["bot_handler_duration_seconds"] = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_handler_duration_seconds",
			Help:    "Duration of bot handler execution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	m.histograms["weather_api_duration_seconds"] = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_api_duration_seconds",
			Help:    "Duration of weather API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	m.gauges["registered_users"] = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registered_users",
			Help: "Number of users with stored preferences",
		},
		[]string{},
	)

	// Reuse collectors that are already registered, e.g. when tests build several instances
	for name, counter := range m.counters {
		m.counters[name] = register(reg, counter)
	}
	for name, histogram := range m.histograms {
		m.histograms[name] = register(reg, histogram)
	}
	for name, gauge := range m.gauges {
		m.gauges[name] = register(reg, gauge)
	}

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	// Only panic for non-duplicate registration errors
	panic(err)
}

func (m *Metrics) IncrementCounter(name string, labelValues ...string) {
	if counter, exists := m.counters[name]; exists {
		counter.WithLabelValues(labelValues...).Inc()
	}
}

func (m *Metrics) ObserveHistogram(name string, value float64, labelValues ...string) {
	if histogram, exists := m.histograms[name]; exists {
		histogram.WithLabelValues(labelValues...).Observe(value)
	}
}

func (m *Metrics) SetGauge(name string, value float64, labelValues ...string) {
	if gauge, exists := m.gauges[name]; exists {
		gauge.WithLabelValues(labelValues...).Set(value)
	}
}

// ObserveFetch implements weather.Observer
func (m *Metrics) ObserveFetch(endpoint weather.Endpoint, status string, duration time.Duration) {
	m.IncrementCounter("weather_requests_total", string(endpoint), status)
	m.ObserveHistogram("weather_api_duration_seconds", duration.Seconds(), string(endpoint))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// CounterValue reads the current value of a counter series, 0 if it was never incremented
func (m *Metrics) CounterValue(name string, labelValues ...string) float64 {
	counter, exists := m.counters[name]
	if !exists {
		return 0
	}

	c, err := counter.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return 0
	}

	dtoMetric := &dto.Metric{}
	if err := c.Write(dtoMetric); err != nil {
		return 0
	}
	return dtoMetric.GetCounter().GetValue()
}

// GetAverageResponseTime calculates average response time from handler duration histogram
// Returns the average in milliseconds, 0 when nothing was observed yet
func (m *Metrics) GetAverageResponseTime() float64 {
	histogram, exists := m.histograms["bot_handler_duration_seconds"]
	if !exists {
		return 0
	}

	metricChan := make(chan prometheus.Metric, 10)

	go func() {
		histogram.Collect(metricChan)
		close(metricChan)
	}()

	var totalSum float64
	var totalCount uint64

	for metric := range metricChan {
		dtoMetric := &dto.Metric{}
		if err := metric.Write(dtoMetric); err != nil {
			continue
		}

		if dtoMetric.Histogram != nil {
			totalSum += dtoMetric.Histogram.GetSampleSum()
			totalCount += dtoMetric.Histogram.GetSampleCount()
		}
	}

	if totalCount > 0 {
		// Convert from seconds to milliseconds
		avgSeconds := totalSum / float64(totalCount)
		return avgSeconds * 1000.0
	}

	return 0
}
