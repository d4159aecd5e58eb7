package internal

import (
	"encoding/json"
	"testing"
)

func TestRowID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    RowID
		wantErr bool
	}{
		{`"3f1c-uuid"`, "3f1c-uuid", false},
		{`42`, "42", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"id":1}`, "", true},
	}

	for _, tt := range tests {
		var id RowID
		err := json.Unmarshal([]byte(tt.in), &id)
		if (err != nil) != tt.wantErr {
			t.Errorf("RowID.UnmarshalJSON(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if id != tt.want {
			t.Errorf("RowID.UnmarshalJSON(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}
}

func TestRawIssue_DecodePostgRESTRow(t *testing.T) {
	row := `{"id": 7, "conversation_id": 3, "message_id": null, "category": "refund_requests",
		"description": "quero cancelar", "severity": "high", "status": "open",
		"created_at": "2025-08-04T09:00:00.123+00:00", "resolved_at": null}`

	var raw RawIssue
	if err := json.Unmarshal([]byte(row), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw.ID != "7" || raw.ConversationID != "3" || raw.MessageID != "" {
		t.Errorf("ids = %q/%q/%q, want 7/3/empty", raw.ID, raw.ConversationID, raw.MessageID)
	}

	issue, err := ValidateIssue(raw)
	if err != nil {
		t.Fatalf("ValidateIssue() error = %v", err)
	}
	if issue.IsResolved() {
		t.Error("open issue reported as resolved")
	}
}
