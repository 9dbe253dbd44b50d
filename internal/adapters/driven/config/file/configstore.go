package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvAPIKey overrides the configured API key when set.
const EnvAPIKey = "SHELF_API_KEY"

// Config holds everything the CLI needs to reach the provider and tune
// the orchestrator. Zero values mean "use the built-in default".
type Config struct {
	// APIKey authenticates against the generative-language API.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// DataDir holds the local cache database.
	DataDir string `toml:"data_dir,omitempty"`

	// Model is the primary model for grounded queries.
	Model string `toml:"model,omitempty"`

	// FallbackModel is used on query retries.
	FallbackModel string `toml:"fallback_model,omitempty"`

	// MaxAttempts bounds retries of provider calls.
	MaxAttempts uint `toml:"max_attempts,omitempty"`

	// BaseDelaySeconds is the first retry backoff.
	BaseDelaySeconds int `toml:"base_delay_seconds,omitempty"`

	// PollIntervalSeconds is the pause between indexing status checks.
	PollIntervalSeconds int `toml:"poll_interval_seconds,omitempty"`

	// MaxPolls is the indexing status check ceiling per file.
	MaxPolls int `toml:"max_polls,omitempty"`
}

// Store reads and writes the config file.
type Store struct {
	path string
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.shelf.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".shelf")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &Store{path: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing file yields a zero Config.
// SHELF_API_KEY, when set, overrides the stored key.
func (s *Store) Load() (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run - all defaults.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.path, err)
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	return &cfg, nil
}

// Save writes the config file with owner-only permissions; it holds the
// API key.
func (s *Store) Save(cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
