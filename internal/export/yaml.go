package export

import (
	"io"

	"github.com/iksnae/support-analytics/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the whole dashboard as YAML
type YAMLExporter struct{}

// Export writes d as YAML
func (e *YAMLExporter) Export(d *internal.Dashboard, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(d)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
