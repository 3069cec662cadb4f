package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/companion-labs/companion-go/pkg/persona"
)

// Config contains the complete configuration for a Companion client.
//
// Example:
//
//	config := &core.Config{
//	    LLM: core.LLMConfig{
//	        Provider: "openai",
//	        APIKey:   "sk-...",
//	        Model:    "gpt-4o-mini",
//	    },
//	    DefaultPersona: persona.KeyCalmMentor,
//	}
type Config struct {
	// LLM contains completion-service provider configuration.
	LLM LLMConfig `json:"llm"`

	// ProfileStore contains profile persistence configuration (optional).
	// Nil disables persistence; the profile then lives only in memory.
	ProfileStore *ProfileStoreConfig `json:"profile_store,omitempty"`

	// DefaultPersona is the persona key selected at construction.
	// Defaults to "calm_mentor".
	DefaultPersona string `json:"default_persona"`
}

// LLMConfig contains configuration for the completion-service provider.
//
// Supported providers: openai, anthropic
type LLMConfig struct {
	// Provider is the provider name ("openai" or "anthropic").
	Provider string `json:"provider"`

	// APIKey is the provider API key.
	APIKey string `json:"api_key"`

	// Model is the model name (provider default when empty).
	Model string `json:"model"`

	// BaseURL overrides the provider API endpoint (optional).
	BaseURL string `json:"base_url"`
}

// ProfileStoreConfig contains configuration for profile persistence.
//
// Supported providers: sqlite, postgres, mysql
type ProfileStoreConfig struct {
	// Provider is the backend name ("sqlite", "postgres", or "mysql").
	Provider string `json:"provider"`

	// DBPath is the database file path (sqlite only).
	DBPath string `json:"db_path,omitempty"`

	// Connection parameters (postgres and mysql).
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	DBName   string `json:"db_name,omitempty"`

	// SSLMode is the libpq sslmode (postgres only).
	SSLMode string `json:"ssl_mode,omitempty"`
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "anthropic":
	case "":
		return fmt.Errorf("%w: llm provider is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: unsupported llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: llm api key is required", ErrInvalidConfig)
	}

	if c.ProfileStore != nil {
		switch c.ProfileStore.Provider {
		case "sqlite":
			if c.ProfileStore.DBPath == "" {
				return fmt.Errorf("%w: sqlite db path is required", ErrInvalidConfig)
			}
		case "postgres", "mysql":
			if c.ProfileStore.Host == "" || c.ProfileStore.DBName == "" {
				return fmt.Errorf("%w: %s host and db name are required",
					ErrInvalidConfig, c.ProfileStore.Provider)
			}
		default:
			return fmt.Errorf("%w: unsupported profile store provider %q",
				ErrInvalidConfig, c.ProfileStore.Provider)
		}
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
//
// A .env file in the current directory is loaded first if present
// (existing environment variables take precedence).
//
// Recognized variables:
//   - LLM_PROVIDER: "openai" (default) or "anthropic"
//   - LLM_API_KEY: provider API key (falls back to OPENAI_API_KEY or
//     ANTHROPIC_API_KEY depending on the provider)
//   - LLM_MODEL, LLM_BASE_URL: optional model/endpoint overrides
//   - DEFAULT_PERSONA: persona key, defaults to "calm_mentor"
//   - PROFILE_STORE_PROVIDER: "sqlite", "postgres", or "mysql"; unset
//     disables persistence
//   - SQLITE_DB_PATH: sqlite database file, defaults to "./companion.db"
//   - PROFILE_DB_HOST, PROFILE_DB_PORT, PROFILE_DB_USER,
//     PROFILE_DB_PASSWORD, PROFILE_DB_NAME, PROFILE_DB_SSLMODE:
//     postgres/mysql connection parameters
func LoadConfigFromEnv() (*Config, error) {
	_ = godotenv.Load()

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		switch provider {
		case "openai":
			apiKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	cfg := &Config{
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   apiKey,
			Model:    os.Getenv("LLM_MODEL"),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
		},
		DefaultPersona: os.Getenv("DEFAULT_PERSONA"),
	}
	if cfg.DefaultPersona == "" {
		cfg.DefaultPersona = persona.KeyCalmMentor
	}

	if storeProvider := os.Getenv("PROFILE_STORE_PROVIDER"); storeProvider != "" {
		store := &ProfileStoreConfig{Provider: storeProvider}

		switch storeProvider {
		case "sqlite":
			store.DBPath = os.Getenv("SQLITE_DB_PATH")
			if store.DBPath == "" {
				store.DBPath = "./companion.db"
			}
		case "postgres", "mysql":
			store.Host = os.Getenv("PROFILE_DB_HOST")
			store.User = os.Getenv("PROFILE_DB_USER")
			store.Password = os.Getenv("PROFILE_DB_PASSWORD")
			store.DBName = os.Getenv("PROFILE_DB_NAME")
			store.SSLMode = os.Getenv("PROFILE_DB_SSLMODE")
			if portStr := os.Getenv("PROFILE_DB_PORT"); portStr != "" {
				port, err := strconv.Atoi(portStr)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid PROFILE_DB_PORT %q", ErrInvalidConfig, portStr)
				}
				store.Port = port
			} else if storeProvider == "postgres" {
				store.Port = 5432
			} else {
				store.Port = 3306
			}
		}

		cfg.ProfileStore = store
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
