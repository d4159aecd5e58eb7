package internal

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2025-08-01T10:00:00Z", false},
		{"2025-08-01T10:00:00+00:00", false},
		{"2025-08-01T10:00:00", false},
		{"2025-08-01 10:00:00", false},
		{"2025-08-01 10:00:00+00", false},
		{"yesterday", true},
		{"", true},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, want)
		}
	}

	if _, err := ParseTimestamp("2025-08-01T10:00:00.123456+00:00"); err != nil {
		t.Errorf("ParseTimestamp() with microseconds error = %v", err)
	}
}

func TestValidateConversation(t *testing.T) {
	valid := RawConversation{ID: "1", PhoneNumber: "+55", CreatedAt: "2025-08-01T10:00:00Z", MessageCount: 3}

	conv, err := ValidateConversation(valid)
	if err != nil {
		t.Fatalf("ValidateConversation() error = %v", err)
	}
	if !conv.UpdatedAt.Equal(conv.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want CreatedAt when missing", conv.UpdatedAt)
	}

	tests := []struct {
		name  string
		mod   func(r *RawConversation)
		field string
	}{
		{"missing id", func(r *RawConversation) { r.ID = "" }, "id"},
		{"missing created_at", func(r *RawConversation) { r.CreatedAt = "" }, "created_at"},
		{"bad updated_at", func(r *RawConversation) { r.UpdatedAt = "soon" }, "updated_at"},
		{"negative count", func(r *RawConversation) { r.MessageCount = -1 }, "message_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mod(&raw)
			_, err := ValidateConversation(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateConversation() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	valid := RawMessage{ID: "1", ConversationID: "9", Timestamp: "2025-08-01T10:00:00Z", SenderType: "user", Sentiment: "neutral"}

	msg, err := ValidateMessage(valid)
	if err != nil {
		t.Fatalf("ValidateMessage() error = %v", err)
	}
	if msg.Sentiment != SentimentNeutral || msg.SenderType != SenderUser {
		t.Errorf("ValidateMessage() = %+v", msg)
	}

	unattributed := valid
	unattributed.SenderType = ""
	if msg, err := ValidateMessage(unattributed); err != nil || msg.SenderType != SenderUser {
		t.Errorf("ValidateMessage() without sender = %+v, %v; want user sender, nil", msg, err)
	}

	unclassified := valid
	unclassified.Sentiment = ""
	if msg, err := ValidateMessage(unclassified); err != nil || msg.Sentiment != "" {
		t.Errorf("ValidateMessage() unclassified = %+v, %v; want empty sentiment, nil", msg, err)
	}

	tests := []struct {
		name    string
		mod     func(r *RawMessage)
		field   string
		wantErr error
	}{
		{"missing id", func(r *RawMessage) { r.ID = "" }, "id", ErrMissingField},
		{"missing conversation", func(r *RawMessage) { r.ConversationID = "" }, "conversation_id", ErrMissingField},
		{"unknown sender", func(r *RawMessage) { r.SenderType = "bot" }, "sender_type", ErrInvalidValue},
		{"unknown sentiment", func(r *RawMessage) { r.Sentiment = "angry" }, "sentiment", ErrInvalidValue},
		{"missing timestamp", func(r *RawMessage) { r.Timestamp = "" }, "timestamp", ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mod(&raw)
			_, err := ValidateMessage(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateMessage() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMessage() error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIssue(t *testing.T) {
	valid := RawIssue{
		ID:             "1",
		ConversationID: "9",
		Category:       "access_issues",
		Severity:       "high",
		Status:         "resolved",
		CreatedAt:      "2025-08-01T10:00:00Z",
		ResolvedAt:     "2025-08-01T12:00:00Z",
	}

	issue, err := ValidateIssue(valid)
	if err != nil {
		t.Fatalf("ValidateIssue() error = %v", err)
	}
	if issue.ResolvedAt == nil || issue.ResolvedAt.Hour() != 12 {
		t.Errorf("ResolvedAt = %v, want 12:00", issue.ResolvedAt)
	}

	t.Run("defaults", func(t *testing.T) {
		raw := valid
		raw.Severity, raw.Status, raw.Category, raw.ResolvedAt = "", "", "  ", ""
		issue, err := ValidateIssue(raw)
		if err != nil {
			t.Fatalf("ValidateIssue() error = %v", err)
		}
		if issue.Severity != SeverityMedium {
			t.Errorf("Severity = %q, want medium", issue.Severity)
		}
		if issue.Status != StatusOpen {
			t.Errorf("Status = %q, want open", issue.Status)
		}
		if issue.Category != UncategorizedIssue {
			t.Errorf("Category = %q, want %q", issue.Category, UncategorizedIssue)
		}
		if issue.ResolvedAt != nil {
			t.Errorf("ResolvedAt = %v, want nil", issue.ResolvedAt)
		}
	})

	tests := []struct {
		name  string
		mod   func(r *RawIssue)
		field string
	}{
		{"missing id", func(r *RawIssue) { r.ID = "" }, "id"},
		{"unknown severity", func(r *RawIssue) { r.Severity = "critical" }, "severity"},
		{"unknown status", func(r *RawIssue) { r.Status = "closed" }, "status"},
		{"bad created_at", func(r *RawIssue) { r.CreatedAt = "01/08/2025" }, "created_at"},
		{"bad resolved_at", func(r *RawIssue) { r.ResolvedAt = "later" }, "resolved_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mod(&raw)
			_, err := ValidateIssue(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateIssue() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field || verr.Collection != "issues" {
				t.Errorf("ValidationError = %+v, want field %q in issues", verr, tt.field)
			}
		})
	}
}
