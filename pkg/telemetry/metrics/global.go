package metrics

import (
	"sync"

	"pdftools/gateway/pkg/config"
)

var (
	defaultCollector *Collector
	defaultErr       error
	initOnce         sync.Once
)

// Init creates the process-wide collector once. Later calls return the
// collector (or error) from the first call regardless of their arguments.
func Init(tool string, cfg *config.MetricsConfig) (*Collector, error) {
	initOnce.Do(func() {
		defaultCollector, defaultErr = NewCollector(tool, cfg, nil)
	})
	return defaultCollector, defaultErr
}

// Default returns the process-wide collector, or nil before a successful Init.
func Default() *Collector {
	return defaultCollector
}
