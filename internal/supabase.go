package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody bounds how much of a failed response body ends up in errors
const maxErrorBody = 512

// SupabaseSource reads the collections through Supabase's PostgREST API
type SupabaseSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabaseSource creates a source for the project at baseURL. A nil
// client falls back to http.DefaultClient.
func NewSupabaseSource(baseURL, apiKey string, client *http.Client) *SupabaseSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// Name returns the source name
func (s *SupabaseSource) Name() string {
	return SourceSupabase
}

// FetchConversations reads every conversation row
func (s *SupabaseSource) FetchConversations(ctx context.Context) ([]RawConversation, error) {
	rows := make([]RawConversation, 0)
	if err := s.selectAll(ctx, CollectionConversations, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchMessages reads every message row
func (s *SupabaseSource) FetchMessages(ctx context.Context) ([]RawMessage, error) {
	rows := make([]RawMessage, 0)
	if err := s.selectAll(ctx, CollectionMessages, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchIssues reads every issue row, newest first
func (s *SupabaseSource) FetchIssues(ctx context.Context) ([]RawIssue, error) {
	rows := make([]RawIssue, 0)
	query := url.Values{"order": []string{"created_at.desc"}}
	if err := s.selectAll(ctx, CollectionIssues, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Close is a no-op; the HTTP client owns no per-source resources
func (s *SupabaseSource) Close() error {
	return nil
}

// Ping checks that the REST endpoint answers for the issues table
func (s *SupabaseSource) Ping(ctx context.Context) error {
	var rows []json.RawMessage
	query := url.Values{"limit": []string{"1"}}
	return s.selectAll(ctx, CollectionIssues, query, &rows)
}

func (s *SupabaseSource) selectAll(ctx context.Context, table string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("select") == "" {
		query.Set("select", "*")
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	LogDebug("GET %s", endpoint)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s rows: %w", table, err)
	}
	return nil
}
