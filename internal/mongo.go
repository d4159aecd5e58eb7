package internal

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads the collections from a MongoDB database
type MongoSource struct {
	client   *mongo.Client
	database *mongo.Database
}

type mongoConversation struct {
	ID           string    `bson:"id"`
	PhoneNumber  string    `bson:"phone_number"`
	ContactName  string    `bson:"contact_name"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
	MessageCount int       `bson:"message_count"`
	HasIssues    bool      `bson:"has_issues"`
}

type mongoMessage struct {
	ID             string    `bson:"id"`
	ConversationID string    `bson:"conversation_id"`
	Content        string    `bson:"content"`
	Timestamp      time.Time `bson:"timestamp"`
	SenderType     string    `bson:"sender_type"`
	Category       string    `bson:"category"`
	Sentiment      string    `bson:"sentiment"`
}

type mongoIssue struct {
	ID             string     `bson:"id"`
	ConversationID string     `bson:"conversation_id"`
	MessageID      string     `bson:"message_id"`
	Category       string     `bson:"category"`
	Description    string     `bson:"description"`
	Severity       string     `bson:"severity"`
	Status         string     `bson:"status"`
	CreatedAt      time.Time  `bson:"created_at"`
	ResolvedAt     *time.Time `bson:"resolved_at"`
}

// NewMongoSource connects to uri and verifies the connection
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &FetchError{Source: SourceMongo, Collection: "database", Err: fmt.Errorf("failed to connect: %w", err)}
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &FetchError{Source: SourceMongo, Collection: "database", Err: fmt.Errorf("failed to ping: %w", err)}
	}

	LogDebug("MongoDB connected, database %s", database)
	return &MongoSource{client: client, database: client.Database(database)}, nil
}

// Name returns the source name
func (s *MongoSource) Name() string {
	return SourceMongo
}

// Close disconnects the client
func (s *MongoSource) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks the server connection
func (s *MongoSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// FetchConversations reads every conversation document
func (s *MongoSource) FetchConversations(ctx context.Context) ([]RawConversation, error) {
	var docs []mongoConversation
	if err := s.findAll(ctx, CollectionConversations, nil, &docs); err != nil {
		return nil, err
	}

	out := make([]RawConversation, 0, len(docs))
	for _, d := range docs {
		out = append(out, RawConversation{
			ID:           RowID(d.ID),
			PhoneNumber:  d.PhoneNumber,
			ContactName:  d.ContactName,
			CreatedAt:    formatMongoTime(d.CreatedAt),
			UpdatedAt:    formatMongoTime(d.UpdatedAt),
			MessageCount: d.MessageCount,
			HasIssues:    d.HasIssues,
		})
	}
	return out, nil
}

// FetchMessages reads every message document
func (s *MongoSource) FetchMessages(ctx context.Context) ([]RawMessage, error) {
	var docs []mongoMessage
	if err := s.findAll(ctx, CollectionMessages, nil, &docs); err != nil {
		return nil, err
	}

	out := make([]RawMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, RawMessage{
			ID:             RowID(d.ID),
			ConversationID: RowID(d.ConversationID),
			Content:        d.Content,
			Timestamp:      formatMongoTime(d.Timestamp),
			SenderType:     d.SenderType,
			Category:       d.Category,
			Sentiment:      d.Sentiment,
		})
	}
	return out, nil
}

// FetchIssues reads every issue document, newest first
func (s *MongoSource) FetchIssues(ctx context.Context) ([]RawIssue, error) {
	var docs []mongoIssue
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if err := s.findAll(ctx, CollectionIssues, opts, &docs); err != nil {
		return nil, err
	}

	out := make([]RawIssue, 0, len(docs))
	for _, d := range docs {
		raw := RawIssue{
			ID:             RowID(d.ID),
			ConversationID: RowID(d.ConversationID),
			MessageID:      RowID(d.MessageID),
			Category:       d.Category,
			Description:    d.Description,
			Severity:       d.Severity,
			Status:         d.Status,
			CreatedAt:      formatMongoTime(d.CreatedAt),
		}
		if d.ResolvedAt != nil {
			raw.ResolvedAt = formatMongoTime(*d.ResolvedAt)
		}
		out = append(out, raw)
	}
	return out, nil
}

func (s *MongoSource) findAll(ctx context.Context, collection string, opts *options.FindOptions, out any) error {
	findOpts := []*options.FindOptions{}
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := s.database.Collection(collection).Find(ctx, bson.D{}, findOpts...)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return nil
}

// formatMongoTime renders a stored date for validation; zero stays empty so
// a missing field is reported as missing.
func formatMongoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
