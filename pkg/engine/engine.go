// Package engine orchestrates persona selection, prompt composition, and
// completion-service invocation.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/companion-labs/companion-go/pkg/llm"
	"github.com/companion-labs/companion-go/pkg/memory"
	"github.com/companion-labs/companion-go/pkg/persona"
)

// Sampling parameters for persona responses.
const (
	// ResponseTemperature is the fixed sampling temperature for persona and
	// baseline responses.
	ResponseTemperature = 0.7

	// ResponseMaxTokens is the fixed output-length ceiling for persona and
	// baseline responses.
	ResponseMaxTokens = 500
)

// BaselinePersonaName is the display name used for baseline responses.
const BaselinePersonaName = "Baseline"

// baselinePrompt is the neutral system instruction used as the
// zero-personality control.
const baselinePrompt = "You are a helpful assistant. Respond to the user message helpfully and concisely."

// memoryGuard is appended whenever memory context is injected, so the
// persona never references the stored profile overtly.
const memoryGuard = `Use this context naturally - don't explicitly reference "your profile" or make it obvious you have stored information. Just be naturally attuned to who they are.`

// Response is a single persona-styled completion result.
type Response struct {
	// PersonaKey is the registry key of the persona that produced the text.
	// Empty for baseline responses.
	PersonaKey string `json:"personaKey,omitempty"`

	// PersonaName is the persona's display name.
	PersonaName string `json:"personaName"`

	// Text is the provider's response, verbatim.
	Text string `json:"text"`
}

// Engine biases completion-service responses toward a registered persona,
// optionally personalized with the memory store's profile.
//
// The engine holds one piece of mutable state, the current persona key,
// guarded for concurrent use. Profile reads always go through the store's
// snapshot, so in-flight requests see a consistent profile.
type Engine struct {
	llm      llm.Provider
	registry *persona.Registry

	// store supplies the memory profile; nil means no personalization.
	store *memory.Store

	mu         sync.RWMutex
	currentKey string
}

// New creates an engine with the given default persona.
// Fails with persona.ErrUnknownPersona if defaultKey is not registered.
func New(provider llm.Provider, registry *persona.Registry, store *memory.Store, defaultKey string) (*Engine, error) {
	if !registry.Has(defaultKey) {
		return nil, fmt.Errorf("%w: %q", persona.ErrUnknownPersona, defaultKey)
	}
	return &Engine{
		llm:        provider,
		registry:   registry,
		store:      store,
		currentKey: defaultKey,
	}, nil
}

// SelectPersona sets the current persona.
// Fails with persona.ErrUnknownPersona for an unregistered key, leaving the
// current persona unchanged.
func (e *Engine) SelectPersona(key string) error {
	if !e.registry.Has(key) {
		return fmt.Errorf("%w: %q", persona.ErrUnknownPersona, key)
	}
	e.mu.Lock()
	e.currentKey = key
	e.mu.Unlock()
	return nil
}

// CurrentPersona returns the current persona key.
func (e *Engine) CurrentPersona() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentKey
}

// Compose builds the system instructions for the given persona: the
// behavior template, followed by the bounded memory context and an
// instruction not to reference the stored memory overtly. When no memories
// are held, the bare behavior template is returned.
func (e *Engine) Compose(key string) (string, error) {
	p, err := e.registry.Get(key)
	if err != nil {
		return "", err
	}

	if e.store == nil {
		return p.BehaviorTemplate, nil
	}

	memoryContext := memory.RenderContext(e.store.Snapshot())
	if memoryContext == "" {
		return p.BehaviorTemplate, nil
	}

	return p.BehaviorTemplate + "\n\n" + memoryContext + "\n" + memoryGuard, nil
}

// Respond generates a persona-styled response to the user message.
//
// An explicit personaKey takes precedence over the current persona; pass
// the empty string to use the current one. One completion call is issued
// with the composed instructions at the fixed sampling parameters, and the
// provider's text is returned verbatim alongside the persona's display
// name. Transport failures surface as memory.ErrServiceUnavailable
// (wrapped); nothing is retried.
func (e *Engine) Respond(ctx context.Context, message, personaKey string) (*Response, error) {
	key := personaKey
	if key == "" {
		key = e.CurrentPersona()
	}

	p, err := e.registry.Get(key)
	if err != nil {
		return nil, err
	}

	system, err := e.Compose(key)
	if err != nil {
		return nil, err
	}

	text, err := e.complete(ctx, system, message)
	if err != nil {
		return nil, err
	}

	return &Response{
		PersonaKey:  key,
		PersonaName: p.Name,
		Text:        text,
	}, nil
}

// Baseline generates a response with a fixed neutral system instruction,
// used as the zero-personality control for comparison.
func (e *Engine) Baseline(ctx context.Context, message string) (*Response, error) {
	text, err := e.complete(ctx, baselinePrompt, message)
	if err != nil {
		return nil, err
	}
	return &Response{
		PersonaName: BaselinePersonaName,
		Text:        text,
	}, nil
}

// CompareAll generates one response per registered persona.
//
// Calls are dispatched concurrently; each reads its own profile snapshot
// and shares no mutable state with the others. Results are assembled in
// registry order regardless of completion order. A failing persona call
// aborts the whole comparison: remaining calls are cancelled and the first
// failure (in registry order) is returned with no partial results.
func (e *Engine) CompareAll(ctx context.Context, message string) ([]Response, error) {
	keys := e.registry.Keys()
	results := make([]*Response, len(keys))
	errs := make([]error, len(keys))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			resp, err := e.Respond(ctx, message, key)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = resp
		}(i, key)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]Response, len(results))
	for i, resp := range results {
		out[i] = *resp
	}
	return out, nil
}

func (e *Engine) complete(ctx context.Context, system, message string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	}

	text, err := e.llm.GenerateWithMessages(ctx, messages,
		llm.WithTemperature(ResponseTemperature),
		llm.WithMaxTokens(ResponseMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", memory.ErrServiceUnavailable, err)
	}
	return text, nil
}
