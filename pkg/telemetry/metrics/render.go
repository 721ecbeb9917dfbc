package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/common/expfmt"
)

// Render returns a snapshot of every registered series in the Prometheus text
// exposition format. Families are ordered by name and series by label values,
// so two renders of an unchanged registry are byte-identical.
//
// Gather copies the current values out of the vectors; recording is not
// blocked while the text is written.
func (c *Collector) Render() ([]byte, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}
