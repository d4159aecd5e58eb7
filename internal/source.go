package internal

import (
	"context"
	"fmt"
	"net/http"
)

// Collection names shared by every store
const (
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
	CollectionIssues        = "issues"
)

// Source reads the three record collections from a store. A fetch that
// succeeds with no rows returns an empty, non-nil slice.
type Source interface {
	Name() string
	FetchConversations(ctx context.Context) ([]RawConversation, error)
	FetchMessages(ctx context.Context) ([]RawMessage, error)
	// FetchIssues returns issues newest first when the store can order them
	FetchIssues(ctx context.Context) ([]RawIssue, error)
	Close() error
}

// Pinger is implemented by sources that can check reachability without
// reading whole collections
type Pinger interface {
	Ping(ctx context.Context) error
}

// unreachableSource stands in for a store that could not be opened. Every
// fetch fails with the open error, so loads take the normal failure path.
type unreachableSource struct {
	name string
	err  error
}

// NewUnreachableSource returns a Source named name whose fetches all fail with err
func NewUnreachableSource(name string, err error) Source {
	return &unreachableSource{name: name, err: err}
}

func (s *unreachableSource) Name() string { return s.name }

func (s *unreachableSource) FetchConversations(ctx context.Context) ([]RawConversation, error) {
	return nil, s.err
}

func (s *unreachableSource) FetchMessages(ctx context.Context) ([]RawMessage, error) {
	return nil, s.err
}

func (s *unreachableSource) FetchIssues(ctx context.Context) ([]RawIssue, error) {
	return nil, s.err
}

func (s *unreachableSource) Close() error { return nil }

// NewSource creates the source selected by cfg.Source
func NewSource(ctx context.Context, cfg *Config) (Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Source {
	case SourceSupabase:
		return NewSupabaseSource(cfg.Supabase.URL, cfg.Supabase.AnonKey, &http.Client{Timeout: cfg.FetchTimeout}), nil
	case SourceSQLite:
		src, err := NewSQLiteSource(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceMongo:
		src, err := NewMongoSource(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
