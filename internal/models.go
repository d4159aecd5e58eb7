package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SenderType identifies who wrote a message
type SenderType string

const (
	SenderUser    SenderType = "user"
	SenderSupport SenderType = "support"
)

// Sentiment is the classified tone of a message
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Severity is the impact level of an issue
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IssueStatus is the resolution state of an issue
type IssueStatus string

const (
	StatusOpen     IssueStatus = "open"
	StatusResolved IssueStatus = "resolved"
	StatusPending  IssueStatus = "pending"
)

// Severities lists the known severities in display order
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Conversation is a messaging thread with one contact
type Conversation struct {
	ID           string    `json:"id" yaml:"id"`
	PhoneNumber  string    `json:"phone_number" yaml:"phone_number"`
	ContactName  string    `json:"contact_name,omitempty" yaml:"contact_name,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
	MessageCount int       `json:"message_count" yaml:"message_count"`
	HasIssues    bool      `json:"has_issues" yaml:"has_issues"`
}

// Message is a single inbound or outbound text within a conversation.
// Category and Sentiment are empty when the message was never classified.
type Message struct {
	ID             string     `json:"id" yaml:"id"`
	ConversationID string     `json:"conversation_id" yaml:"conversation_id"`
	Content        string     `json:"content" yaml:"content"`
	Timestamp      time.Time  `json:"timestamp" yaml:"timestamp"`
	SenderType     SenderType `json:"sender_type" yaml:"sender_type"`
	Category       string     `json:"category,omitempty" yaml:"category,omitempty"`
	Sentiment      Sentiment  `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// Issue is a tracked problem raised in a conversation
type Issue struct {
	ID             string      `json:"id" yaml:"id"`
	ConversationID string      `json:"conversation_id" yaml:"conversation_id"`
	MessageID      string      `json:"message_id,omitempty" yaml:"message_id,omitempty"`
	Category       string      `json:"category" yaml:"category"`
	Description    string      `json:"description" yaml:"description"`
	Severity       Severity    `json:"severity" yaml:"severity"`
	Status         IssueStatus `json:"status" yaml:"status"`
	CreatedAt      time.Time   `json:"created_at" yaml:"created_at"`
	ResolvedAt     *time.Time  `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
}

// IsResolved reports whether the issue has been resolved
func (i Issue) IsResolved() bool {
	return i.Status == StatusResolved
}

// RowID is a record identifier as delivered by a store. Stores differ on
// whether ids are serial integers or uuid strings, so both decode into the
// same string form.
type RowID string

// UnmarshalJSON accepts a JSON string, number or null
func (id *RowID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RowID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("invalid row id %s", data)
	}
	*id = RowID(data)
	return nil
}

// RawConversation is a conversation row before validation
type RawConversation struct {
	ID           RowID  `json:"id"`
	PhoneNumber  string `json:"phone_number"`
	ContactName  string `json:"contact_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
	HasIssues    bool   `json:"has_issues"`
}

// RawMessage is a message row before validation
type RawMessage struct {
	ID             RowID  `json:"id"`
	ConversationID RowID  `json:"conversation_id"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
	SenderType     string `json:"sender_type"`
	Category       string `json:"category"`
	Sentiment      string `json:"sentiment"`
}

// RawIssue is an issue row before validation
type RawIssue struct {
	ID             RowID  `json:"id"`
	ConversationID RowID  `json:"conversation_id"`
	MessageID      RowID  `json:"message_id"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	ResolvedAt     string `json:"resolved_at"`
}
