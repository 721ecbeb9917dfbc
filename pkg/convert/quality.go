package convert

import (
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Quality selects how aggressively Compress rewrites a document.
type Quality string

const (
	// QualityLow rewrites the document with duplicate resources removed but
	// keeps classic cross-reference tables.
	QualityLow Quality = "low"

	// QualityMedium additionally packs objects into object streams.
	QualityMedium Quality = "medium"

	// QualityHigh additionally merges identical content streams.
	QualityHigh Quality = "high"
)

// DefaultQuality is used when a request does not name one.
const DefaultQuality = QualityMedium

// ParseQuality parses a quality name. The empty string selects DefaultQuality.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case "":
		return DefaultQuality, nil
	case QualityLow, QualityMedium, QualityHigh:
		return q, nil
	default:
		return "", fmt.Errorf("%w: %q (want low, medium or high)", ErrInvalidQuality, s)
	}
}

// apply sets the pdfcpu write options for q.
func (q Quality) apply(conf *model.Configuration) {
	conf.OptimizeResourceDicts = true

	switch q {
	case QualityLow:
		conf.WriteObjectStream = false
		conf.WriteXRefStream = false
	case QualityHigh:
		conf.WriteObjectStream = true
		conf.WriteXRefStream = true
		conf.OptimizeDuplicateContentStreams = true
	default:
		conf.WriteObjectStream = true
		conf.WriteXRefStream = true
	}
}
