package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Collections CollectionConfig `toml:"collections"`
	LLM         LLMConfig        `toml:"llm"`
	Workers     WorkersConfig    `toml:"workers"`
	Reconcile   ReconcileConfig  `toml:"reconcile"`
	Classifier  ClassifierConfig `toml:"classifier"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// CollectionConfig names the document-store collections. The articles
// collection is the source of truth; summaries and tips are derived from it.
type CollectionConfig struct {
	Articles       string `toml:"articles"`
	Summaries      string `toml:"summaries"`
	Tips           string `toml:"tips"`
	DatePartitions bool   `toml:"date_partitions"` // Also bucket tips into tips_YYYY_MM_DD partitions
}

// LLMConfig selects and configures the generation collaborator
type LLMConfig struct {
	Mode     string       `toml:"mode"`     // "cloud" or "offline"
	Provider string       `toml:"provider"` // Cloud provider: "claude" or "gemini"
	Claude   ClaudeConfig `toml:"claude"`
	Gemini   GeminiConfig `toml:"gemini"`
	Ollama   OllamaConfig `toml:"ollama"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"` // e.g. "60s"
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
}

// OllamaConfig configures the local Ollama HTTP endpoint
type OllamaConfig struct {
	URL         string  `toml:"url"`   // e.g. "http://localhost:11434"
	Model       string  `toml:"model"` // e.g. "llama3.2:1b"
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// WorkersConfig bounds concurrent generation calls during batch runs
type WorkersConfig struct {
	Concurrency int     `toml:"concurrency"` // Number of concurrent generation workers
	RateLimit   float64 `toml:"rate_limit"`  // Generation calls per second (0 = unlimited)
	RateBurst   int     `toml:"rate_burst"`
}

type ReconcileConfig struct {
	Schedule         string `toml:"schedule"`          // Cron schedule for watch mode, e.g. "@every 1h"
	LiveRegeneration bool   `toml:"live_regeneration"` // Regenerate via LLM during reconciliation passes
}

type ClassifierConfig struct {
	TemplatesFile string `toml:"templates_file"` // Optional YAML override for category templates
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/secbrief",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Collections: CollectionConfig{
			Articles:       "articles",
			Summaries:      "summaries",
			Tips:           "tips",
			DatePartitions: true,
		},
		LLM: LLMConfig{
			Mode:     "offline",
			Provider: "claude",
			Claude: ClaudeConfig{
				Model:       "claude-sonnet-4-20250514",
				Timeout:     "60s",
				Temperature: 0.1,
				MaxTokens:   1024,
			},
			Gemini: GeminiConfig{
				Model:       "gemini-2.0-flash",
				Timeout:     "60s",
				Temperature: 0.1,
			},
			Ollama: OllamaConfig{
				URL:         "http://localhost:11434",
				Model:       "llama3.2:1b",
				Timeout:     "60s",
				Temperature: 0.1,
				MaxTokens:   1024,
			},
		},
		Workers: WorkersConfig{
			Concurrency: 2,
			RateLimit:   1,
			RateBurst:   2,
		},
		Reconcile: ReconcileConfig{
			Schedule:         "@every 1h",
			LiveRegeneration: true,
		},
	}
}

// LoadFromFiles loads configuration with layered precedence:
// defaults -> config files (later overrides earlier) -> environment variables.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies SECBRIEF_* environment variables over file values
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SECBRIEF_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SECBRIEF_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("SECBRIEF_LLM_MODE"); v != "" {
		config.LLM.Mode = v
	}
	if v := os.Getenv("SECBRIEF_CLAUDE_API_KEY"); v != "" {
		config.LLM.Claude.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && config.LLM.Claude.APIKey == "" {
		config.LLM.Claude.APIKey = v
	}
	if v := os.Getenv("SECBRIEF_GEMINI_API_KEY"); v != "" {
		config.LLM.Gemini.APIKey = v
	}
	if v := os.Getenv("SECBRIEF_OLLAMA_URL"); v != "" {
		config.LLM.Ollama.URL = v
	}
}

func validateConfig(config *Config) error {
	if config.Storage.Badger.Path == "" {
		return fmt.Errorf("storage.badger.path is required")
	}
	if config.LLM.Mode != "cloud" && config.LLM.Mode != "offline" {
		return fmt.Errorf("invalid llm mode '%s': must be 'cloud' or 'offline'", config.LLM.Mode)
	}
	if config.LLM.Mode == "cloud" {
		switch strings.ToLower(config.LLM.Provider) {
		case "claude", "gemini":
		default:
			return fmt.Errorf("invalid llm provider '%s': must be 'claude' or 'gemini'", config.LLM.Provider)
		}
	}
	if config.Workers.Concurrency <= 0 {
		config.Workers.Concurrency = 1
	}
	if config.Collections.Articles == "" || config.Collections.Summaries == "" || config.Collections.Tips == "" {
		return fmt.Errorf("collection names must not be empty")
	}
	return nil
}
