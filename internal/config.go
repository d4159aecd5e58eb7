package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Source names accepted by --source and the config file
const (
	SourceSupabase = "supabase"
	SourceSQLite   = "sqlite"
	SourceMongo    = "mongo"
)

// DefaultConfigFile is looked up in the home directory when --config is not given
const DefaultConfigFile = ".support-analytics.yaml"

// Config holds everything the CLI needs to reach a record store and publish results
type Config struct {
	Source       string         `yaml:"source"`
	Strict       bool           `yaml:"strict"`
	FetchTimeout time.Duration  `yaml:"fetch_timeout"`
	CacheDir     string         `yaml:"cache_dir"`
	Supabase     SupabaseConfig `yaml:"supabase"`
	SQLite       SQLiteConfig   `yaml:"sqlite"`
	Mongo        MongoConfig    `yaml:"mongo"`
	NATS         NATSConfig     `yaml:"nats"`
	Server       ServerConfig   `yaml:"server"`
}

// SupabaseConfig points at a PostgREST endpoint
type SupabaseConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
}

// SQLiteConfig points at a local export of the three tables
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MongoConfig points at a database holding the three collections
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// NATSConfig enables publishing dashboards. Publishing is off when URL is empty.
type NATSConfig struct {
	URL           string `yaml:"url"`
	Stream        string `yaml:"stream"`
	SubjectPrefix string `yaml:"subject_prefix"`
	Storage       string `yaml:"storage"` // "file" or "memory"
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		Source:       SourceSupabase,
		FetchTimeout: 15 * time.Second,
		Mongo: MongoConfig{
			Database: "support_analytics",
		},
		NATS: NATSConfig{
			Stream:        "ANALYTICS",
			SubjectPrefix: "analytics",
			Storage:       "file",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the YAML file at path (or the default file in the home
// directory when path is empty and the file exists) and applies environment
// overrides on top.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, DefaultConfigFile)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, &ConfigError{Key: path, Err: fmt.Errorf("failed to parse config: %w", err)}
			}
			LogDebug("Loaded config from %s", path)
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// no default file, defaults and environment only
		default:
			return nil, &ConfigError{Key: path, Err: err}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"SUPABASE_URL", &c.Supabase.URL},
		{"SUPABASE_ANON_KEY", &c.Supabase.AnonKey},
		{"SQLITE_PATH", &c.SQLite.Path},
		{"MONGODB_URI", &c.Mongo.URI},
		{"MONGODB_DATABASE", &c.Mongo.Database},
		{"NATS_URL", &c.NATS.URL},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}
}

// Validate checks that the selected source has what it needs to connect
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return &ConfigError{Key: "fetch_timeout", Err: fmt.Errorf("must be positive, got %s", c.FetchTimeout)}
	}

	switch c.Source {
	case SourceSupabase:
		if c.Supabase.URL == "" {
			return &ConfigError{Key: "supabase.url", Err: ErrMissingField}
		}
		if c.Supabase.AnonKey == "" {
			return &ConfigError{Key: "supabase.anon_key", Err: ErrMissingField}
		}
	case SourceSQLite:
		if c.SQLite.Path == "" {
			return &ConfigError{Key: "sqlite.path", Err: ErrMissingField}
		}
	case SourceMongo:
		if c.Mongo.URI == "" {
			return &ConfigError{Key: "mongo.uri", Err: ErrMissingField}
		}
		if c.Mongo.Database == "" {
			return &ConfigError{Key: "mongo.database", Err: ErrMissingField}
		}
	default:
		return &ConfigError{Key: "source", Err: fmt.Errorf("%w: %q", ErrUnknownSource, c.Source)}
	}

	if c.NATS.URL != "" && c.NATS.Storage != "file" && c.NATS.Storage != "memory" {
		return &ConfigError{Key: "nats.storage", Err: fmt.Errorf("%w: %q", ErrInvalidValue, c.NATS.Storage)}
	}
	return nil
}

// ResolveCacheDir returns the configured cache directory or the default one
// in the user's home directory.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".support-analytics-cache"), nil
}

// SourceKey identifies the configured store for cache lookups
func (c *Config) SourceKey() string {
	switch c.Source {
	case SourceSupabase:
		return c.Source + ":" + c.Supabase.URL
	case SourceSQLite:
		return c.Source + ":" + c.SQLite.Path
	case SourceMongo:
		return c.Source + ":" + c.Mongo.URI + "/" + c.Mongo.Database
	default:
		return c.Source
	}
}
