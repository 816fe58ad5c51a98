package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"google.golang.org/genai"
	"gopkg.in/yaml.v3"

	"didyouknow/internal/facts"
	"didyouknow/internal/models"
)

// Fact source names accepted in FACT_SOURCE and the config file.
const (
	SourceHTTP   = "http"
	SourceGemini = "gemini"
)

// Config holds the application configuration
type Config struct {
	Endpoint         string
	Language         string
	Source           string
	PrefetchInterval time.Duration
	StatusTTL        time.Duration
	Timeout          time.Duration
	ShareCommand     string

	APIKey string
	Model  string

	LogLevel string
	LogFile  string
}

// fileConfig is the on-disk YAML shape. Every field is optional.
type fileConfig struct {
	Endpoint         string   `yaml:"endpoint"`
	Language         string   `yaml:"language"`
	Source           string   `yaml:"source"`
	PrefetchInterval Duration `yaml:"prefetch_interval"`
	StatusTTL        Duration `yaml:"status_ttl"`
	Timeout          Duration `yaml:"timeout"`
	ShareCommand     string   `yaml:"share_command"`
	Model            string   `yaml:"model"`
	Log              struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Endpoint:         facts.DefaultEndpoint,
		Language:         facts.DefaultLanguage,
		Source:           SourceHTTP,
		PrefetchInterval: facts.DefaultPrefetchInterval,
		StatusTTL:        facts.DefaultStatusTTL,
		Timeout:          15 * time.Second,
		Model:            models.GetDefaultModel().ID,
		LogLevel:         "info",
	}
}

// DefaultPath returns ~/.config/didyouknow/config.yaml
func DefaultPath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in increasing order of precedence. An empty path means
// DefaultPath, which may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	// Try to load .env, but don't fail if it's missing
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.Endpoint, fc.Endpoint)
	setString(&c.Language, fc.Language)
	setString(&c.Source, fc.Source)
	setString(&c.ShareCommand, fc.ShareCommand)
	setString(&c.Model, fc.Model)
	setString(&c.LogLevel, fc.Log.Level)
	setString(&c.LogFile, fc.Log.File)
	setDuration(&c.PrefetchInterval, fc.PrefetchInterval.Duration)
	setDuration(&c.StatusTTL, fc.StatusTTL.Duration)
	if fc.Timeout.Duration > 0 {
		c.Timeout = fc.Timeout.Duration
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.Endpoint, os.Getenv("FACT_ENDPOINT"))
	setString(&c.Language, os.Getenv("FACT_LANGUAGE"))
	setString(&c.Source, strings.ToLower(os.Getenv("FACT_SOURCE")))
	setString(&c.ShareCommand, os.Getenv("FACT_SHARE_COMMAND"))
	setString(&c.APIKey, os.Getenv("GOOGLE_API_KEY"))
	setString(&c.Model, os.Getenv("GOOGLE_MODEL"))
	setString(&c.LogLevel, os.Getenv("LOG_LEVEL"))
	setString(&c.LogFile, os.Getenv("LOG_FILE"))

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"FACT_PREFETCH_INTERVAL", &c.PrefetchInterval},
		{"FACT_STATUS_TTL", &c.StatusTTL},
	}
	for _, d := range durations {
		v, err := parseDuration(os.Getenv(d.env))
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		setDuration(d.dst, v)
	}

	// FACT_TIMEOUT=0 disables the client timeout, so presence matters.
	if raw, ok := os.LookupEnv("FACT_TIMEOUT"); ok {
		v, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("FACT_TIMEOUT: %w", err)
		}
		c.Timeout = v
	}
	return nil
}

// Validate checks the merged configuration and normalizes the language to
// its base subtag.
func (c *Config) Validate() error {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	base, _ := tag.Base()
	c.Language = base.String()

	switch c.Source {
	case SourceHTTP:
		if c.Endpoint == "" {
			return errors.New("fact endpoint must not be empty")
		}
	case SourceGemini:
		// Required: API Key
		if c.APIKey == "" {
			return errors.New("GOOGLE_API_KEY environment variable is required for the gemini source")
		}
		if _, err := models.GetModelByID(c.Model); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(models.GetModelIDs(), ", "))
		}
	default:
		return fmt.Errorf("unknown fact source %q (supported: %s, %s)", c.Source, SourceHTTP, SourceGemini)
	}

	if c.PrefetchInterval <= 0 {
		return errors.New("prefetch interval must be positive")
	}
	if c.StatusTTL <= 0 {
		return errors.New("status TTL must be positive")
	}
	return nil
}

// CreateClient creates a new Gemini client using the configuration
func (c *Config) CreateClient(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return client, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
