package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/companion-labs/companion-go/pkg/persona"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid openai",
			config: Config{
				LLM: LLMConfig{Provider: "openai", APIKey: "sk-test"},
			},
		},
		{
			name: "valid anthropic with sqlite store",
			config: Config{
				LLM:          LLMConfig{Provider: "anthropic", APIKey: "sk-ant-test"},
				ProfileStore: &ProfileStoreConfig{Provider: "sqlite", DBPath: "/tmp/test.db"},
			},
		},
		{
			name:    "missing provider",
			config:  Config{LLM: LLMConfig{APIKey: "sk-test"}},
			wantErr: "llm provider is required",
		},
		{
			name:    "unsupported provider",
			config:  Config{LLM: LLMConfig{Provider: "cohere", APIKey: "sk-test"}},
			wantErr: `unsupported llm provider "cohere"`,
		},
		{
			name:    "missing api key",
			config:  Config{LLM: LLMConfig{Provider: "openai"}},
			wantErr: "llm api key is required",
		},
		{
			name: "sqlite without path",
			config: Config{
				LLM:          LLMConfig{Provider: "openai", APIKey: "sk-test"},
				ProfileStore: &ProfileStoreConfig{Provider: "sqlite"},
			},
			wantErr: "sqlite db path is required",
		},
		{
			name: "postgres without host",
			config: Config{
				LLM:          LLMConfig{Provider: "openai", APIKey: "sk-test"},
				ProfileStore: &ProfileStoreConfig{Provider: "postgres", DBName: "companion"},
			},
			wantErr: "postgres host and db name are required",
		},
		{
			name: "unsupported store provider",
			config: Config{
				LLM:          LLMConfig{Provider: "openai", APIKey: "sk-test"},
				ProfileStore: &ProfileStoreConfig{Provider: "redis"},
			},
			wantErr: `unsupported profile store provider "redis"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_API_KEY", "LLM_MODEL", "LLM_BASE_URL",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DEFAULT_PERSONA",
		"PROFILE_STORE_PROVIDER", "SQLITE_DB_PATH",
		"PROFILE_DB_HOST", "PROFILE_DB_PORT", "PROFILE_DB_USER",
		"PROFILE_DB_PASSWORD", "PROFILE_DB_NAME", "PROFILE_DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, persona.KeyCalmMentor, cfg.DefaultPersona)
	assert.Nil(t, cfg.ProfileStore)
}

func TestLoadConfigFromEnvProviderKeyFallback(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-wrong")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.APIKey)
}

func TestLoadConfigFromEnvMissingKey(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfigFromEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigFromEnvSQLiteStore(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("PROFILE_STORE_PROVIDER", "sqlite")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg.ProfileStore)
	assert.Equal(t, "sqlite", cfg.ProfileStore.Provider)
	assert.Equal(t, "./companion.db", cfg.ProfileStore.DBPath)
}

func TestLoadConfigFromEnvPostgresStore(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("PROFILE_STORE_PROVIDER", "postgres")
	t.Setenv("PROFILE_DB_HOST", "localhost")
	t.Setenv("PROFILE_DB_NAME", "companion")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg.ProfileStore)
	assert.Equal(t, 5432, cfg.ProfileStore.Port)
	assert.Equal(t, "localhost", cfg.ProfileStore.Host)
}

func TestLoadConfigFromEnvInvalidPort(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("PROFILE_STORE_PROVIDER", "mysql")
	t.Setenv("PROFILE_DB_HOST", "localhost")
	t.Setenv("PROFILE_DB_NAME", "companion")
	t.Setenv("PROFILE_DB_PORT", "not-a-port")

	_, err := LoadConfigFromEnv()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("DEFAULT_PERSONA", persona.KeyWittyFriend)

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.BaseURL)
	assert.Equal(t, persona.KeyWittyFriend, cfg.DefaultPersona)
}
