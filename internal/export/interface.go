package export

import (
	"fmt"
	"io"

	"github.com/iksnae/support-analytics/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(d *internal.Dashboard, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names
var Formats = []string{"json", "jsonl", "yaml", "md"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
