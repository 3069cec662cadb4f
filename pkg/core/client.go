package core

import (
	"context"
	"fmt"

	"github.com/companion-labs/companion-go/pkg/engine"
	"github.com/companion-labs/companion-go/pkg/llm"
	anthropicLLM "github.com/companion-labs/companion-go/pkg/llm/anthropic"
	openaiLLM "github.com/companion-labs/companion-go/pkg/llm/openai"
	"github.com/companion-labs/companion-go/pkg/memory"
	"github.com/companion-labs/companion-go/pkg/persona"
	"github.com/companion-labs/companion-go/pkg/storage"
	mysqlStore "github.com/companion-labs/companion-go/pkg/storage/mysql"
	postgresStore "github.com/companion-labs/companion-go/pkg/storage/postgres"
	sqliteStore "github.com/companion-labs/companion-go/pkg/storage/sqlite"
)

// Client is the main Companion client.
//
// It wires the memory extractor, the memory store, the persona registry,
// and the personality engine behind a single facade, with optional profile
// persistence.
//
// Example usage:
//
//	config, _ := core.LoadConfigFromEnv()
//	client, _ := core.NewClient(config)
//	defer client.Close()
//
//	batch, _ := client.ExtractMemories(ctx, transcript)
//	resp, _ := client.Chat(ctx, "I had a rough day", "")
type Client struct {
	config   *Config
	llm      llm.Provider
	store    *memory.Store
	registry *persona.Registry

	extractor *memory.Extractor
	engine    *engine.Engine

	// profiles is the persistence backend (nil when disabled).
	profiles storage.ProfileStore
}

// NewClient creates a new Companion client with the built-in persona
// registry.
func NewClient(cfg *Config) (*Client, error) {
	return NewClientWithRegistry(cfg, persona.DefaultRegistry())
}

// NewClientWithRegistry creates a new Companion client with a custom
// persona registry.
func NewClientWithRegistry(cfg *Config, registry *persona.Registry) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := initLLM(cfg.LLM)
	if err != nil {
		return nil, NewCompanionError("NewClient", err)
	}

	store, err := memory.NewStore()
	if err != nil {
		return nil, NewCompanionError("NewClient", err)
	}

	eng, err := engine.New(provider, registry, store, cfg.DefaultPersona)
	if err != nil {
		return nil, NewCompanionError("NewClient", err)
	}

	client := &Client{
		config:    cfg,
		llm:       provider,
		store:     store,
		registry:  registry,
		extractor: memory.NewExtractor(provider, store),
		engine:    eng,
	}

	if cfg.ProfileStore != nil {
		profiles, err := initProfileStore(cfg.ProfileStore)
		if err != nil {
			return nil, NewCompanionError("NewClient", err)
		}
		client.profiles = profiles
	}

	return client, nil
}

func initLLM(cfg LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "openai":
		return openaiLLM.NewClient(&openaiLLM.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case "anthropic":
		return anthropicLLM.NewClient(&anthropicLLM.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	default:
		return nil, fmt.Errorf("%w: unsupported llm provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

func initProfileStore(cfg *ProfileStoreConfig) (storage.ProfileStore, error) {
	switch cfg.Provider {
	case "sqlite":
		return sqliteStore.NewStore(&sqliteStore.Config{DBPath: cfg.DBPath})
	case "postgres":
		return postgresStore.NewStore(&postgresStore.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
			SSLMode:  cfg.SSLMode,
		})
	case "mysql":
		return mysqlStore.NewStore(&mysqlStore.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
		})
	default:
		return nil, fmt.Errorf("%w: unsupported profile store provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

// ExtractMemories analyzes a chat transcript and merges the extracted
// memories into the profile. The merge is atomic: a failed extraction
// leaves the profile unchanged.
func (c *Client) ExtractMemories(ctx context.Context, transcript []memory.ChatMessage) (*memory.Batch, error) {
	batch, err := c.extractor.Extract(ctx, transcript)
	if err != nil {
		return nil, NewCompanionError("ExtractMemories", err)
	}
	return batch, nil
}

// Snapshot returns a read-only copy of the current memory profile.
func (c *Client) Snapshot() memory.Profile {
	return c.store.Snapshot()
}

// MemoryContext returns the bounded profile rendering used for prompt
// injection.
func (c *Client) MemoryContext() string {
	return memory.RenderContext(c.store.Snapshot())
}

// FullMemoryContext returns the complete, untruncated profile rendering for
// display and debugging.
func (c *Client) FullMemoryContext() string {
	return memory.RenderFull(c.store.Snapshot())
}

// SetPersona sets the current persona.
// Fails with persona.ErrUnknownPersona for an unregistered key.
func (c *Client) SetPersona(key string) error {
	if err := c.engine.SelectPersona(key); err != nil {
		return NewCompanionError("SetPersona", err)
	}
	return nil
}

// CurrentPersona returns the current persona key.
func (c *Client) CurrentPersona() string {
	return c.engine.CurrentPersona()
}

// Personas returns all registered personas in registry order.
func (c *Client) Personas() []persona.Persona {
	return c.registry.List()
}

// Chat generates a persona-styled response to the user message. An explicit
// personaKey takes precedence over the current persona; pass the empty
// string to use the current one.
func (c *Client) Chat(ctx context.Context, message, personaKey string) (*engine.Response, error) {
	resp, err := c.engine.Respond(ctx, message, personaKey)
	if err != nil {
		return nil, NewCompanionError("Chat", err)
	}
	return resp, nil
}

// Baseline generates a zero-personality control response.
func (c *Client) Baseline(ctx context.Context, message string) (*engine.Response, error) {
	resp, err := c.engine.Baseline(ctx, message)
	if err != nil {
		return nil, NewCompanionError("Baseline", err)
	}
	return resp, nil
}

// CompareAll generates one response per registered persona, in registry
// order. A failing persona call aborts the whole comparison.
func (c *Client) CompareAll(ctx context.Context, message string) ([]engine.Response, error) {
	responses, err := c.engine.CompareAll(ctx, message)
	if err != nil {
		return nil, NewCompanionError("CompareAll", err)
	}
	return responses, nil
}

// SaveProfile persists the current profile snapshot for userID.
// Fails with ErrPersistenceDisabled when no profile store is configured.
func (c *Client) SaveProfile(ctx context.Context, userID string) error {
	if c.profiles == nil {
		return NewCompanionError("SaveProfile", ErrPersistenceDisabled)
	}
	if err := c.profiles.Save(ctx, userID, c.store.Snapshot()); err != nil {
		return NewCompanionError("SaveProfile", err)
	}
	return nil
}

// LoadProfile restores a previously persisted profile for userID, replacing
// the in-memory profile. Returns false when no snapshot exists.
func (c *Client) LoadProfile(ctx context.Context, userID string) (bool, error) {
	if c.profiles == nil {
		return false, NewCompanionError("LoadProfile", ErrPersistenceDisabled)
	}
	profile, found, err := c.profiles.Load(ctx, userID)
	if err != nil {
		return false, NewCompanionError("LoadProfile", err)
	}
	if !found {
		return false, nil
	}
	c.store.Restore(profile)
	return true, nil
}

// DeleteProfile removes the persisted snapshot for userID. The in-memory
// profile is left untouched.
func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	if c.profiles == nil {
		return NewCompanionError("DeleteProfile", ErrPersistenceDisabled)
	}
	if err := c.profiles.Delete(ctx, userID); err != nil {
		return NewCompanionError("DeleteProfile", err)
	}
	return nil
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	if c.profiles != nil {
		if err := c.profiles.Close(); err != nil {
			return NewCompanionError("Close", err)
		}
	}
	return c.llm.Close()
}
