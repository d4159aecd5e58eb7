package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrAbsentCollection is returned when a source yields no collection at all
	ErrAbsentCollection = errors.New("collection absent")
	// ErrUnknownSource is returned for an unsupported source name
	ErrUnknownSource = errors.New("unknown source")
	// ErrInvalidFilter is returned for an unsupported issue status filter
	ErrInvalidFilter = errors.New("invalid status filter")
	// ErrMissingField marks a required field that is empty
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue marks a field whose value is outside its allowed set
	ErrInvalidValue = errors.New("invalid value")
)

// FetchError represents a failed read of one collection from a source
type FetchError struct {
	Source     string // "supabase", "sqlite", "mongo"
	Collection string // "conversations", "messages", "issues"
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error [%s] %s: %v", e.Source, e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError represents a fetched row that does not match the record schema
type ValidationError struct {
	Collection string
	ID         string
	Field      string
	Err        error
}

func (e *ValidationError) Error() string {
	id := e.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("validation error [%s] %s.%s: %v", e.Collection, id, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid or incomplete configuration value
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
