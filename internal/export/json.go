package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/support-analytics/internal"
)

// JSONExporter exports the whole dashboard as pretty-printed JSON
type JSONExporter struct{}

// Export writes d as JSON
func (e *JSONExporter) Export(d *internal.Dashboard, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
