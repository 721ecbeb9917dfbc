package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"pdftools/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the gateway's metric vectors. Every vector has the tool
// label curried in, so callers never supply it and a series can never be
// recorded under a different tool.
//
// All recording methods are safe for concurrent use. The vectors are
// synchronized internally by the Prometheus client; the Collector itself is
// immutable after construction.
type Collector struct {
	enabled  bool
	tool     string
	registry *prometheus.Registry

	defs       map[string]Definition
	counters   map[string]*prometheus.CounterVec
	histograms map[string]prometheus.ObserverVec

	// endpoints bounds the number of distinct endpoint label values.
	endpoints *CardinalityLimiter
}

// NewCollector registers the metric table in registry and returns a Collector
// that labels every series with tool. If registry is nil a fresh registry is
// created. A nil cfg means metrics are enabled with default limits.
//
// Any error here is a configuration error and should stop startup.
//
// Example:
//
//	collector, err := metrics.NewCollector("pdf-tools", &cfg.Telemetry.Metrics, nil)
//	if err != nil {
//		return err
//	}
//	http.Handle("/metrics", collector.Handler())
func NewCollector(tool string, cfg *config.MetricsConfig, registry *prometheus.Registry) (*Collector, error) {
	return newCollector(tool, cfg, registry, Definitions)
}

func newCollector(tool string, cfg *config.MetricsConfig, registry *prometheus.Registry, defs []Definition) (*Collector, error) {
	if tool == "" {
		return nil, errors.New("tool label value is required")
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{
			Enabled:      true,
			MaxEndpoints: config.DefaultMetricsMaxEndpoints,
		}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		enabled:    cfg.Enabled,
		tool:       tool,
		registry:   registry,
		defs:       make(map[string]Definition, len(defs)),
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]prometheus.ObserverVec),
		endpoints:  NewCardinalityLimiter(cfg.MaxEndpoints),
	}

	curry := prometheus.Labels{ToolLabel: tool}

	for _, def := range defs {
		if err := def.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.defs[def.Name]; dup {
			return nil, fmt.Errorf("metric %q defined twice", def.Name)
		}

		switch def.Kind {
		case KindCounter:
			vec := prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: def.Name,
				Help: def.Help,
			}, def.Labels)
			if err := registry.Register(vec); err != nil {
				return nil, fmt.Errorf("failed to register %q: %w", def.Name, err)
			}
			curried, err := vec.CurryWith(curry)
			if err != nil {
				return nil, fmt.Errorf("failed to curry %q: %w", def.Name, err)
			}
			c.counters[def.Name] = curried

		case KindHistogram:
			vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    def.Name,
				Help:    def.Help,
				Buckets: def.Buckets,
			}, def.Labels)
			if err := registry.Register(vec); err != nil {
				return nil, fmt.Errorf("failed to register %q: %w", def.Name, err)
			}
			curried, err := vec.CurryWith(curry)
			if err != nil {
				return nil, fmt.Errorf("failed to curry %q: %w", def.Name, err)
			}
			c.histograms[def.Name] = curried
		}

		c.defs[def.Name] = def
	}

	return c, nil
}

// IncCounter increments the named counter by one. labels must contain exactly
// the metric's label names other than "tool". Label values never seen before
// create a new series.
//
// It returns ErrUnknownMetric for an undefined name, ErrKindMismatch if the
// metric is not a counter, and ErrLabelMismatch if the label names differ from
// the schema. It never panics.
func (c *Collector) IncCounter(name string, labels map[string]string) error {
	def, err := c.lookup(name, KindCounter)
	if err != nil {
		return err
	}
	lbls, err := c.labelsFor(def, labels)
	if err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}

	counter, err := c.counters[name].GetMetricWith(lbls)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLabelMismatch, name, err)
	}
	counter.Inc()
	return nil
}

// ObserveHistogram records value into the named histogram's pre-declared
// buckets. Label and error semantics match IncCounter.
func (c *Collector) ObserveHistogram(name string, labels map[string]string, value float64) error {
	def, err := c.lookup(name, KindHistogram)
	if err != nil {
		return err
	}
	lbls, err := c.labelsFor(def, labels)
	if err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}

	observer, err := c.histograms[name].GetMetricWith(lbls)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLabelMismatch, name, err)
	}
	observer.Observe(value)
	return nil
}

// RecordHTTPRequest records one completed request: http_requests_total is
// incremented and the elapsed time observed into
// http_request_duration_seconds. Both series are resolved before either is
// touched, so a failure records nothing.
func (c *Collector) RecordHTTPRequest(endpoint, method string, status int, elapsed time.Duration) error {
	if !c.enabled {
		return nil
	}

	endpoint = c.limitEndpoint(endpoint)
	method = NormalizeMethod(method)

	counter, err := c.counters[HTTPRequestsTotal].GetMetricWithLabelValues(endpoint, method, strconv.Itoa(status))
	if err != nil {
		return fmt.Errorf("%s: %w", HTTPRequestsTotal, err)
	}
	duration, err := c.histograms[HTTPRequestDurationSeconds].GetMetricWithLabelValues(endpoint, method)
	if err != nil {
		return fmt.Errorf("%s: %w", HTTPRequestDurationSeconds, err)
	}

	counter.Inc()
	duration.Observe(elapsed.Seconds())
	return nil
}

// RecordCrawlerVisit increments crawler_visits_total for bot.
func (c *Collector) RecordCrawlerVisit(bot string) error {
	if !c.enabled {
		return nil
	}

	counter, err := c.counters[CrawlerVisitsTotal].GetMetricWithLabelValues(bot)
	if err != nil {
		return fmt.Errorf("%s: %w", CrawlerVisitsTotal, err)
	}
	counter.Inc()
	return nil
}

// RecordConversion increments conversion_total. status is "success" or "error".
func (c *Collector) RecordConversion(conversionType, status string) error {
	if !c.enabled {
		return nil
	}

	counter, err := c.counters[ConversionTotal].GetMetricWithLabelValues(conversionType, status)
	if err != nil {
		return fmt.Errorf("%s: %w", ConversionTotal, err)
	}
	counter.Inc()
	return nil
}

// ObserveFileSize records size bytes under operation (e.g. "compress_input").
func (c *Collector) ObserveFileSize(operation string, size int64) error {
	if !c.enabled {
		return nil
	}

	observer, err := c.histograms[FileSizeBytes].GetMetricWithLabelValues(operation)
	if err != nil {
		return fmt.Errorf("%s: %w", FileSizeBytes, err)
	}
	observer.Observe(float64(size))
	return nil
}

// Tool returns the curried tool label value.
func (c *Collector) Tool() string {
	return c.tool
}

// Enabled reports whether recording is active.
func (c *Collector) Enabled() bool {
	return c.enabled
}

// Registry returns the Prometheus registry the collector's vectors live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) lookup(name string, kind Kind) (Definition, error) {
	def, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	if def.Kind != kind {
		return Definition{}, fmt.Errorf("%w: %q is a %s", ErrKindMismatch, name, def.Kind)
	}
	return def, nil
}

// labelsFor checks labels against the schema and returns a copy with the
// endpoint and method values bounded.
func (c *Collector) labelsFor(def Definition, labels map[string]string) (prometheus.Labels, error) {
	want := def.callerLabels()
	if len(labels) != len(want) {
		return nil, fmt.Errorf("%w: %s wants %v", ErrLabelMismatch, def.Name, want)
	}

	out := make(prometheus.Labels, len(want))
	for _, name := range want {
		v, ok := labels[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s wants %v", ErrLabelMismatch, def.Name, want)
		}
		switch name {
		case "endpoint":
			v = c.limitEndpoint(v)
		case "method":
			v = NormalizeMethod(v)
		}
		out[name] = v
	}
	return out, nil
}

func (c *Collector) limitEndpoint(endpoint string) string {
	if endpoint == EndpointUnmatched || endpoint == EndpointOther {
		return endpoint
	}
	if !c.endpoints.Allow(endpoint) {
		return EndpointOther
	}
	return endpoint
}
