package internal

import (
	"fmt"
	"strings"
	"time"
)

// UncategorizedIssue is the category assigned to issues stored without one
const UncategorizedIssue = "uncategorized"

// timestampLayouts covers RFC 3339 from PostgREST and the space separated
// forms SQLite and Postgres "timestamp without time zone" columns produce.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a stored timestamp in any of the supported layouts
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// ValidateConversation converts a raw conversation row into a Conversation
func ValidateConversation(raw RawConversation) (Conversation, error) {
	id := string(raw.ID)
	fail := func(field string, err error) (Conversation, error) {
		return Conversation{}, &ValidationError{Collection: "conversations", ID: id, Field: field, Err: err}
	}

	if id == "" {
		return fail("id", ErrMissingField)
	}
	if raw.CreatedAt == "" {
		return fail("created_at", ErrMissingField)
	}
	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return fail("created_at", err)
	}
	updatedAt := createdAt
	if raw.UpdatedAt != "" {
		if updatedAt, err = ParseTimestamp(raw.UpdatedAt); err != nil {
			return fail("updated_at", err)
		}
	}
	if raw.MessageCount < 0 {
		return fail("message_count", fmt.Errorf("%w: %d", ErrInvalidValue, raw.MessageCount))
	}

	return Conversation{
		ID:           id,
		PhoneNumber:  raw.PhoneNumber,
		ContactName:  raw.ContactName,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		MessageCount: raw.MessageCount,
		HasIssues:    raw.HasIssues,
	}, nil
}

// ValidateMessage converts a raw message row into a Message
func ValidateMessage(raw RawMessage) (Message, error) {
	id := string(raw.ID)
	fail := func(field string, err error) (Message, error) {
		return Message{}, &ValidationError{Collection: "messages", ID: id, Field: field, Err: err}
	}

	if id == "" {
		return fail("id", ErrMissingField)
	}
	if raw.ConversationID == "" {
		return fail("conversation_id", ErrMissingField)
	}
	if raw.Timestamp == "" {
		return fail("timestamp", ErrMissingField)
	}
	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return fail("timestamp", err)
	}

	sender := SenderType(raw.SenderType)
	switch sender {
	case "":
		sender = SenderUser
	case SenderUser, SenderSupport:
	default:
		return fail("sender_type", fmt.Errorf("%w: %q", ErrInvalidValue, raw.SenderType))
	}

	sentiment := Sentiment(raw.Sentiment)
	switch sentiment {
	case "", SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return fail("sentiment", fmt.Errorf("%w: %q", ErrInvalidValue, raw.Sentiment))
	}

	return Message{
		ID:             id,
		ConversationID: string(raw.ConversationID),
		Content:        raw.Content,
		Timestamp:      ts,
		SenderType:     sender,
		Category:       raw.Category,
		Sentiment:      sentiment,
	}, nil
}

// ValidateIssue converts a raw issue row into an Issue. Empty severity and
// status take the column defaults (medium, open).
func ValidateIssue(raw RawIssue) (Issue, error) {
	id := string(raw.ID)
	fail := func(field string, err error) (Issue, error) {
		return Issue{}, &ValidationError{Collection: "issues", ID: id, Field: field, Err: err}
	}

	if id == "" {
		return fail("id", ErrMissingField)
	}
	if raw.ConversationID == "" {
		return fail("conversation_id", ErrMissingField)
	}

	severity := Severity(raw.Severity)
	switch severity {
	case "":
		severity = SeverityMedium
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return fail("severity", fmt.Errorf("%w: %q", ErrInvalidValue, raw.Severity))
	}

	status := IssueStatus(raw.Status)
	switch status {
	case "":
		status = StatusOpen
	case StatusOpen, StatusResolved, StatusPending:
	default:
		return fail("status", fmt.Errorf("%w: %q", ErrInvalidValue, raw.Status))
	}

	if raw.CreatedAt == "" {
		return fail("created_at", ErrMissingField)
	}
	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return fail("created_at", err)
	}

	var resolvedAt *time.Time
	if raw.ResolvedAt != "" {
		t, err := ParseTimestamp(raw.ResolvedAt)
		if err != nil {
			return fail("resolved_at", err)
		}
		resolvedAt = &t
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = UncategorizedIssue
	}

	return Issue{
		ID:             id,
		ConversationID: string(raw.ConversationID),
		MessageID:      string(raw.MessageID),
		Category:       category,
		Description:    raw.Description,
		Severity:       severity,
		Status:         status,
		CreatedAt:      createdAt,
		ResolvedAt:     resolvedAt,
	}, nil
}
