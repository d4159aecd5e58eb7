package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// Schema mirrors the hosted conversations, messages and issues tables
const Schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id TEXT PRIMARY KEY,
	phone_number TEXT,
	contact_name TEXT,
	created_at TEXT,
	updated_at TEXT,
	message_count INTEGER DEFAULT 0,
	has_issues INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	conversation_id TEXT REFERENCES conversations(id),
	content TEXT,
	timestamp TEXT,
	sender_type TEXT,
	category TEXT,
	sentiment TEXT
);
CREATE TABLE IF NOT EXISTS issues (
	id TEXT PRIMARY KEY,
	conversation_id TEXT REFERENCES conversations(id),
	message_id TEXT,
	category TEXT,
	description TEXT,
	severity TEXT DEFAULT 'medium',
	status TEXT DEFAULT 'open',
	created_at TEXT,
	resolved_at TEXT
);`

// CreateInMemoryDB creates an in-memory SQLite database with the analytics schema
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDB creates an in-memory database with sample data
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	SeedSampleData(t, db)
	return db
}

// SeedSampleData inserts two conversations, four messages (one without
// sentiment) and three issues (one resolved, one open, one pending)
func SeedSampleData(t *testing.T, db *sql.DB) {
	t.Helper()

	InsertConversation(t, db, "1", "+5511911110000", "Carlos", "2025-08-01 10:00:00", 2, true)
	InsertConversation(t, db, "2", "+5511922220000", "", "2025-08-02 10:00:00", 2, false)

	InsertMessage(t, db, "10", "1", "não consigo acessar a plataforma", "2025-08-01 10:00:00", "user", "access_issues", "negative")
	InsertMessage(t, db, "11", "1", "consegui, obrigado!", "2025-08-01 10:30:00", "user", "general_support", "positive")
	InsertMessage(t, db, "12", "2", "Olá, posso ajudar?", "2025-08-02 10:00:00", "support", "", "")
	InsertMessage(t, db, "13", "2", "quero cancelar", "2025-08-02 10:01:00", "user", "refund_requests", "negative")

	InsertIssue(t, db, "100", "1", "10", "access_issues", "Cannot log in", "high", "resolved", "2025-08-01 10:00:00", "2025-08-01 10:30:00")
	InsertIssue(t, db, "101", "2", "13", "refund_requests", "Refund request", "medium", "open", "2025-08-02 10:01:00", "")
	InsertIssue(t, db, "102", "1", "", "access_issues", "Password reset loop", "low", "pending", "2025-08-01 12:00:00", "")
}

// InsertConversation inserts a conversation row
func InsertConversation(t *testing.T, db *sql.DB, id, phone, name, createdAt string, messageCount int, hasIssues bool) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO conversations (id, phone_number, contact_name, created_at, updated_at, message_count, has_issues)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?)`, id, phone, name, createdAt, createdAt, messageCount, hasIssues)
	if err != nil {
		t.Fatalf("Failed to insert conversation: %v", err)
	}
}

// InsertMessage inserts a message row; empty category or sentiment is stored as NULL
func InsertMessage(t *testing.T, db *sql.DB, id, conversationID, content, timestamp, sender, category, sentiment string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO messages (id, conversation_id, content, timestamp, sender_type, category, sentiment)
		VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))`, id, conversationID, content, timestamp, sender, category, sentiment)
	if err != nil {
		t.Fatalf("Failed to insert message: %v", err)
	}
}

// InsertIssue inserts an issue row; empty message id or resolved_at is stored as NULL
func InsertIssue(t *testing.T, db *sql.DB, id, conversationID, messageID, category, description, severity, status, createdAt, resolvedAt string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO issues (id, conversation_id, message_id, category, description, severity, status, created_at, resolved_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, NULLIF(?, ''))`,
		id, conversationID, messageID, category, description, severity, status, createdAt, resolvedAt)
	if err != nil {
		t.Fatalf("Failed to insert issue: %v", err)
	}
}

// CreateSQLiteFixture writes a database file with the schema and sample data
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	SeedSampleData(t, db)
}
