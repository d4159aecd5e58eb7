package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/support-analytics/internal"
)

// JSONLExporter exports the issue list, one issue per line
type JSONLExporter struct{}

// Export writes every listed issue of d as a single JSON line
func (e *JSONLExporter) Export(d *internal.Dashboard, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, issue := range d.Issues {
		obj := map[string]interface{}{
			"id":              issue.ID,
			"conversation_id": issue.ConversationID,
			"category":        issue.Category,
			"description":     issue.Description,
			"severity":        issue.Severity,
			"status":          issue.Status,
			"created_at":      issue.CreatedAt,
		}
		if issue.MessageID != "" {
			obj["message_id"] = issue.MessageID
		}
		if issue.ResolvedAt != nil {
			obj["resolved_at"] = issue.ResolvedAt
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode issue %s: %w", issue.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
