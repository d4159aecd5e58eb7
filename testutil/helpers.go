package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"
)

// LoadFixture loads a test fixture file
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", path))
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", path, err)
	}
	return data
}

// CreateTempDir creates a temporary directory removed when the test ends
func CreateTempDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// JSONUnmarshal unmarshals JSON for testing
func JSONUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
}

// PostgRESTTables maps table names to the JSON body served for them
type PostgRESTTables map[string]string

// RequestLog records requests received by a test server
type RequestLog struct {
	mu       sync.Mutex
	requests []*http.Request
}

// Requests returns the recorded requests
func (l *RequestLog) Requests() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.requests...)
}

// ForTable returns the first recorded request for a table
func (l *RequestLog) ForTable(table string) *http.Request {
	for _, r := range l.Requests() {
		if path.Base(r.URL.Path) == table {
			return r
		}
	}
	return nil
}

// NewPostgRESTServer serves /rest/v1/{table} from tables. Unknown tables
// answer 404 like PostgREST does.
func NewPostgRESTServer(t *testing.T, tables PostgRESTTables) (*httptest.Server, *RequestLog) {
	t.Helper()
	log := &RequestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.mu.Lock()
		log.requests = append(log.requests, r.Clone(r.Context()))
		log.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		body, ok := tables[path.Base(r.URL.Path)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"42P01","message":"relation does not exist"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, log
}
