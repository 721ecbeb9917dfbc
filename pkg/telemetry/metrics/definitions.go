package metrics

import (
	"errors"
	"fmt"
)

// Metric names. They carry no namespace so the exposition contains the
// literal names dashboards query for.
const (
	HTTPRequestsTotal          = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ConversionTotal            = "conversion_total"
	FileSizeBytes              = "file_size_bytes"
	CrawlerVisitsTotal         = "crawler_visits_total"
)

// Reserved endpoint label values.
const (
	// EndpointUnmatched labels requests that matched no route.
	EndpointUnmatched = "unmatched"

	// EndpointOther absorbs endpoint values beyond the cardinality limit.
	EndpointOther = "other"
)

// MethodOther labels requests whose method is not a standard HTTP method.
const MethodOther = "OTHER"

// ToolLabel is the label curried into every series at construction.
const ToolLabel = "tool"

var (
	// ErrUnknownMetric is returned when a metric name has no definition.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrLabelMismatch is returned when supplied label names differ from the
	// metric's schema.
	ErrLabelMismatch = errors.New("label set does not match metric schema")

	// ErrKindMismatch is returned when a counter is observed or a histogram
	// incremented.
	ErrKindMismatch = errors.New("metric kind mismatch")
)

// Kind distinguishes counters from histograms.
type Kind int

const (
	KindCounter Kind = iota
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindHistogram:
		return "histogram"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Definition describes one metric: its name, kind, ordered label names and,
// for histograms, its bucket upper bounds. Labels always start with "tool".
type Definition struct {
	Name    string
	Help    string
	Kind    Kind
	Labels  []string
	Buckets []float64
}

// DurationBuckets are the upper bounds, in seconds, of the request duration histogram.
var DurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

// SizeBuckets are the upper bounds, in bytes, of the file size histogram.
var SizeBuckets = []float64{1024, 10240, 102400, 1048576, 10485760, 104857600}

// Definitions is the fixed metric table registered by every Collector.
var Definitions = []Definition{
	{
		Name:   HTTPRequestsTotal,
		Help:   "Total HTTP requests",
		Kind:   KindCounter,
		Labels: []string{ToolLabel, "endpoint", "method", "status"},
	},
	{
		Name:    HTTPRequestDurationSeconds,
		Help:    "HTTP request duration in seconds",
		Kind:    KindHistogram,
		Labels:  []string{ToolLabel, "endpoint", "method"},
		Buckets: DurationBuckets,
	},
	{
		Name:   ConversionTotal,
		Help:   "Total conversions",
		Kind:   KindCounter,
		Labels: []string{ToolLabel, "conversion_type", "status"},
	},
	{
		Name:    FileSizeBytes,
		Help:    "File size in bytes",
		Kind:    KindHistogram,
		Labels:  []string{ToolLabel, "operation"},
		Buckets: SizeBuckets,
	},
	{
		Name:   CrawlerVisitsTotal,
		Help:   "Total crawler visits",
		Kind:   KindCounter,
		Labels: []string{ToolLabel, "bot"},
	},
}

// validate reports configuration errors in a definition. These are startup
// errors; a Collector is never built from an invalid table.
func (d Definition) validate() error {
	if d.Name == "" {
		return errors.New("metric name is required")
	}
	if len(d.Labels) == 0 || d.Labels[0] != ToolLabel {
		return fmt.Errorf("metric %q: first label must be %q", d.Name, ToolLabel)
	}

	seen := make(map[string]bool, len(d.Labels))
	for _, l := range d.Labels {
		if l == "" {
			return fmt.Errorf("metric %q: empty label name", d.Name)
		}
		if seen[l] {
			return fmt.Errorf("metric %q: duplicate label %q", d.Name, l)
		}
		seen[l] = true
	}

	switch d.Kind {
	case KindCounter:
		if len(d.Buckets) != 0 {
			return fmt.Errorf("metric %q: counters take no buckets", d.Name)
		}
	case KindHistogram:
		if len(d.Buckets) == 0 {
			return fmt.Errorf("metric %q: histogram requires buckets", d.Name)
		}
		for i := 1; i < len(d.Buckets); i++ {
			if d.Buckets[i] <= d.Buckets[i-1] {
				return fmt.Errorf("metric %q: buckets must be strictly increasing", d.Name)
			}
		}
	default:
		return fmt.Errorf("metric %q: unsupported kind %s", d.Name, d.Kind)
	}

	return nil
}

// callerLabels returns the labels a caller supplies, i.e. all but "tool".
func (d Definition) callerLabels() []string {
	return d.Labels[1:]
}
