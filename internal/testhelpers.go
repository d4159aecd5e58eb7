package internal

import (
	"context"
	"time"
)

// testEpoch anchors generated timestamps so tests are deterministic
var testEpoch = time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC)

// CreateTestIssue creates an issue with the given category and status
func CreateTestIssue(id, category string, status IssueStatus) Issue {
	return Issue{
		ID:             id,
		ConversationID: "conv-" + id,
		MessageID:      "msg-" + id,
		Category:       category,
		Description:    "Issue " + id,
		Severity:       SeverityMedium,
		Status:         status,
		CreatedAt:      testEpoch,
	}
}

// CreateTestMessage creates a user message with the given sentiment
func CreateTestMessage(id string, sentiment Sentiment) Message {
	return Message{
		ID:             id,
		ConversationID: "conv-1",
		Content:        "Message " + id,
		Timestamp:      testEpoch,
		SenderType:     SenderUser,
		Sentiment:      sentiment,
	}
}

// CreateTestConversation creates a conversation with one message
func CreateTestConversation(id string) Conversation {
	return Conversation{
		ID:           id,
		PhoneNumber:  "+5511999990000",
		ContactName:  "Contact " + id,
		CreatedAt:    testEpoch,
		UpdatedAt:    testEpoch,
		MessageCount: 1,
	}
}

// CreateTestSnapshot creates a small snapshot: two conversations, four
// messages (one unclassified) and four issues (two resolved)
func CreateTestSnapshot() *Snapshot {
	return &Snapshot{
		ID:       "snapshot-test",
		Source:   "test",
		LoadedAt: testEpoch,
		Conversations: []Conversation{
			CreateTestConversation("c1"),
			CreateTestConversation("c2"),
		},
		Messages: []Message{
			CreateTestMessage("m1", SentimentPositive),
			CreateTestMessage("m2", SentimentNegative),
			CreateTestMessage("m3", SentimentPositive),
			CreateTestMessage("m4", ""),
		},
		Issues: []Issue{
			CreateTestIssue("i1", "access_issues", StatusResolved),
			CreateTestIssue("i2", "refund_requests", StatusOpen),
			CreateTestIssue("i3", "access_issues", StatusPending),
			CreateTestIssue("i4", "access_issues", StatusResolved),
		},
	}
}

// StubSource is an in-memory Source for tests
type StubSource struct {
	Conversations []RawConversation
	Messages      []RawMessage
	Issues        []RawIssue

	ConversationsErr error
	MessagesErr      error
	IssuesErr        error

	Closed bool
}

// Name returns "stub"
func (s *StubSource) Name() string {
	return "stub"
}

// FetchConversations returns the configured conversations or error
func (s *StubSource) FetchConversations(ctx context.Context) ([]RawConversation, error) {
	return s.Conversations, s.ConversationsErr
}

// FetchMessages returns the configured messages or error
func (s *StubSource) FetchMessages(ctx context.Context) ([]RawMessage, error) {
	return s.Messages, s.MessagesErr
}

// FetchIssues returns the configured issues or error
func (s *StubSource) FetchIssues(ctx context.Context) ([]RawIssue, error) {
	return s.Issues, s.IssuesErr
}

// Close marks the stub closed
func (s *StubSource) Close() error {
	s.Closed = true
	return nil
}

// NewTestStubSource returns a stub with two conversations, three messages and
// three issues, all valid
func NewTestStubSource() *StubSource {
	return &StubSource{
		Conversations: []RawConversation{
			{ID: "1", PhoneNumber: "+5511911110000", CreatedAt: "2025-08-01T10:00:00Z", UpdatedAt: "2025-08-01T11:00:00Z", MessageCount: 2, HasIssues: true},
			{ID: "2", PhoneNumber: "+5511922220000", ContactName: "Ana", CreatedAt: "2025-08-02T10:00:00Z", MessageCount: 1},
		},
		Messages: []RawMessage{
			{ID: "10", ConversationID: "1", Content: "não consigo acessar", Timestamp: "2025-08-01T10:00:00Z", SenderType: "user", Category: "access_issues", Sentiment: "negative"},
			{ID: "11", ConversationID: "1", Content: "obrigado!", Timestamp: "2025-08-01T10:05:00Z", SenderType: "user", Category: "general_support", Sentiment: "positive"},
			{ID: "12", ConversationID: "2", Content: "Olá", Timestamp: "2025-08-02T10:00:00Z", SenderType: "support"},
		},
		Issues: []RawIssue{
			{ID: "100", ConversationID: "1", MessageID: "10", Category: "access_issues", Description: "Cannot log in", Severity: "high", Status: "resolved", CreatedAt: "2025-08-01T10:00:00Z", ResolvedAt: "2025-08-01T11:00:00Z"},
			{ID: "101", ConversationID: "2", Category: "refund_requests", Description: "Wants a refund", Severity: "medium", Status: "open", CreatedAt: "2025-08-03T10:00:00Z"},
			{ID: "102", ConversationID: "1", Category: "access_issues", Description: "Password reset", Severity: "low", Status: "pending", CreatedAt: "2025-08-02T10:00:00Z"},
		},
	}
}
