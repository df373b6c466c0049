package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// SchemaVariant selects which wire schema the analysis endpoint returns.
// The two variants are alternate product iterations of the same pipeline;
// a deployment picks one, the pipeline itself is shared.
type SchemaVariant string

const (
	// SchemaColor returns ticker + tri-color + summary ("color" variant)
	SchemaColor SchemaVariant = "color"
	// SchemaLabel returns score + sentiment label + factor lists ("label" variant)
	SchemaLabel SchemaVariant = "label"
)

// PrimaryProvider selects the structured-generation backend used when the
// primary path is taken.
type PrimaryProvider string

const (
	// PrimaryClaude uses Anthropic Claude via the official SDK
	PrimaryClaude PrimaryProvider = "claude"
	// PrimaryGemini uses Google Gemini with a response schema constraint
	PrimaryGemini PrimaryProvider = "gemini"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Pipeline    PipelineConfig `toml:"pipeline"`
	Tavily      TavilyConfig   `toml:"tavily"`
	LLM         LLMConfig      `toml:"llm"`
	Claude      ClaudeConfig   `toml:"claude"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Zhipu       ZhipuConfig    `toml:"zhipu"`
	Supabase    SupabaseConfig `toml:"supabase"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// PipelineConfig controls the analysis pipeline behavior
type PipelineConfig struct {
	ResponseSchema   SchemaVariant `toml:"response_schema"`   // "color" or "label"
	ExposeProvenance bool          `toml:"expose_provenance"` // include live/mock provenance on the wire
	RequestTimeout   string        `toml:"request_timeout"`   // per upstream call, duration string
}

// TavilyConfig contains Tavily search API configuration
type TavilyConfig struct {
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	MaxResults int    `toml:"max_results"`
	Timeout    string `toml:"timeout"`
	RateLimit  int    `toml:"rate_limit"` // requests per second
}

// LLMConfig selects the primary structured-generation provider
type LLMConfig struct {
	Primary PrimaryProvider `toml:"primary"` // "claude" (default) or "gemini"
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

// ZhipuConfig contains the chat-completion fallback provider configuration
type ZhipuConfig struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// SupabaseConfig contains the managed-database configuration for the watchlist
type SupabaseConfig struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
	Table   string `toml:"table"`
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here; only user-facing settings
// belong in marketmood.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Pipeline: PipelineConfig{
			ResponseSchema:   SchemaColor,
			ExposeProvenance: false,
			RequestTimeout:   "60s",
		},
		Tavily: TavilyConfig{
			APIKey:     "", // No key: news fetcher degrades to mock data
			BaseURL:    "https://api.tavily.com",
			MaxResults: 10,
			Timeout:    "30s",
			RateLimit:  5,
		},
		LLM: LLMConfig{
			Primary: PrimaryClaude,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-3-5-sonnet-20241022",
			MaxTokens:   2000,
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-3-flash-preview",
			Temperature: 0.7,
		},
		Zhipu: ZhipuConfig{
			APIKey:      "",
			BaseURL:     "https://open.bigmodel.cn/api/paas/v4",
			Model:       "glm-4-flash",
			Temperature: 0.7,
			MaxTokens:   2000,
		},
		Supabase: SupabaseConfig{
			URL:     "",
			AnonKey: "",
			Table:   "watchlist",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Provider credentials accept both the vendor-standard variable names and
// MARKETMOOD_-prefixed ones (prefixed names take priority).
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MARKETMOOD_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("MARKETMOOD_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MARKETMOOD_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("MARKETMOOD_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("MARKETMOOD_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Pipeline configuration
	if schema := os.Getenv("MARKETMOOD_RESPONSE_SCHEMA"); schema != "" {
		config.Pipeline.ResponseSchema = SchemaVariant(schema)
	}
	if expose := os.Getenv("MARKETMOOD_EXPOSE_PROVENANCE"); expose != "" {
		if e, err := strconv.ParseBool(expose); err == nil {
			config.Pipeline.ExposeProvenance = e
		}
	}
	if timeout := os.Getenv("MARKETMOOD_REQUEST_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err == nil {
			config.Pipeline.RequestTimeout = timeout
		}
	}

	// Tavily configuration
	if apiKey := os.Getenv("TAVILY_API_KEY"); apiKey != "" {
		config.Tavily.APIKey = apiKey
	}
	if apiKey := os.Getenv("MARKETMOOD_TAVILY_API_KEY"); apiKey != "" {
		config.Tavily.APIKey = apiKey
	}
	if maxResults := os.Getenv("MARKETMOOD_TAVILY_MAX_RESULTS"); maxResults != "" {
		if mr, err := strconv.Atoi(maxResults); err == nil {
			config.Tavily.MaxResults = mr
		}
	}

	// LLM provider selection
	if primary := os.Getenv("MARKETMOOD_LLM_PRIMARY"); primary != "" {
		config.LLM.Primary = PrimaryProvider(primary)
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("MARKETMOOD_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if model := os.Getenv("MARKETMOOD_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}

	// Gemini configuration
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("MARKETMOOD_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("MARKETMOOD_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}

	// Zhipu configuration
	if apiKey := os.Getenv("ZHIPU_API_KEY"); apiKey != "" {
		config.Zhipu.APIKey = apiKey
	}
	if apiKey := os.Getenv("MARKETMOOD_ZHIPU_API_KEY"); apiKey != "" {
		config.Zhipu.APIKey = apiKey
	}
	if model := os.Getenv("MARKETMOOD_ZHIPU_MODEL"); model != "" {
		config.Zhipu.Model = model
	}

	// Supabase configuration
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		config.Supabase.URL = url
	}
	if key := os.Getenv("SUPABASE_ANON_KEY"); key != "" {
		config.Supabase.AnonKey = key
	}
	if url := os.Getenv("MARKETMOOD_SUPABASE_URL"); url != "" {
		config.Supabase.URL = url
	}
	if key := os.Getenv("MARKETMOOD_SUPABASE_ANON_KEY"); key != "" {
		config.Supabase.AnonKey = key
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// RequestTimeout parses the configured pipeline timeout, falling back to 60s.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Pipeline.RequestTimeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
