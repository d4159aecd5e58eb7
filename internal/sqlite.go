package internal

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// SQLiteSource reads the collections from a local SQLite export with
// conversations, messages and issues tables
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the database at path read-only
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &FetchError{Source: SourceSQLite, Collection: "database", Err: err}
	}
	return &SQLiteSource{db: db}, nil
}

// NewSQLiteSourceFromDB wraps an already open database
func NewSQLiteSourceFromDB(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Name returns the source name
func (s *SQLiteSource) Name() string {
	return SourceSQLite
}

// Close closes the underlying database
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *SQLiteSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FetchConversations reads every conversation row
func (s *SQLiteSource) FetchConversations(ctx context.Context) ([]RawConversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phone_number, contact_name, created_at, updated_at, message_count, has_issues
		FROM conversations`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := make([]RawConversation, 0)
	for rows.Next() {
		var (
			id, phone, name, created, updated sql.NullString
			count                             sql.NullInt64
			hasIssues                         sql.NullBool
		)
		if err := rows.Scan(&id, &phone, &name, &created, &updated, &count, &hasIssues); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, RawConversation{
			ID:           RowID(id.String),
			PhoneNumber:  phone.String,
			ContactName:  name.String,
			CreatedAt:    created.String,
			UpdatedAt:    updated.String,
			MessageCount: int(count.Int64),
			HasIssues:    hasIssues.Bool,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

// FetchMessages reads every message row
func (s *SQLiteSource) FetchMessages(ctx context.Context) ([]RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, content, timestamp, sender_type, category, sentiment
		FROM messages`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := make([]RawMessage, 0)
	for rows.Next() {
		var id, convID, content, ts, sender, category, sentiment sql.NullString
		if err := rows.Scan(&id, &convID, &content, &ts, &sender, &category, &sentiment); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, RawMessage{
			ID:             RowID(id.String),
			ConversationID: RowID(convID.String),
			Content:        content.String,
			Timestamp:      ts.String,
			SenderType:     sender.String,
			Category:       category.String,
			Sentiment:      sentiment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

// FetchIssues reads every issue row, newest first
func (s *SQLiteSource) FetchIssues(ctx context.Context) ([]RawIssue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, message_id, category, description, severity, status, created_at, resolved_at
		FROM issues
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := make([]RawIssue, 0)
	for rows.Next() {
		var id, convID, msgID, category, description, severity, status, created, resolved sql.NullString
		if err := rows.Scan(&id, &convID, &msgID, &category, &description, &severity, &status, &created, &resolved); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, RawIssue{
			ID:             RowID(id.String),
			ConversationID: RowID(convID.String),
			MessageID:      RowID(msgID.String),
			Category:       category.String,
			Description:    description.String,
			Severity:       severity.String,
			Status:         status.String,
			CreatedAt:      created.String,
			ResolvedAt:     resolved.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}
