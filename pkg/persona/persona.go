// Package persona provides the static catalogue of personas and their
// behavioral prompt templates.
package persona

import (
	"errors"
	"fmt"
)

// ErrUnknownPersona indicates a persona key absent from the registry.
var ErrUnknownPersona = errors.New("unknown persona")

// Traits is free-form descriptive metadata about a persona. It is
// display-only and never used in prompting.
type Traits struct {
	Tone              string   `json:"tone"`
	Vocabulary        string   `json:"vocabulary"`
	ResponseStyle     string   `json:"responseStyle"`
	EmotionalApproach string   `json:"emotionalApproach"`
	TypicalPhrases    []string `json:"typicalPhrases"`
}

// Persona is an immutable, statically registered behavioral profile.
type Persona struct {
	// Key uniquely identifies the persona in the registry.
	Key string `json:"key"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is a one-line summary for display.
	Description string `json:"description"`

	// Traits is display-only metadata.
	Traits Traits `json:"traits"`

	// BehaviorTemplate is the persona-specific system instruction.
	BehaviorTemplate string `json:"-"`
}

// Registry is an immutable mapping from key to Persona, constructed at load
// time. Iteration follows registration order.
type Registry struct {
	keys     []string
	personas map[string]Persona
}

// NewRegistry builds a registry from the given personas, preserving their
// order. Duplicate keys are rejected.
func NewRegistry(personas ...Persona) (*Registry, error) {
	r := &Registry{
		keys:     make([]string, 0, len(personas)),
		personas: make(map[string]Persona, len(personas)),
	}
	for _, p := range personas {
		if _, exists := r.personas[p.Key]; exists {
			return nil, fmt.Errorf("duplicate persona key %q", p.Key)
		}
		r.keys = append(r.keys, p.Key)
		r.personas[p.Key] = p
	}
	return r, nil
}

// Get returns the persona registered under key.
// Fails with ErrUnknownPersona when the key is absent.
func (r *Registry) Get(key string) (Persona, error) {
	p, ok := r.personas[key]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", ErrUnknownPersona, key)
	}
	return p, nil
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.personas[key]
	return ok
}

// Keys returns the persona keys in registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// List returns all personas in registration order.
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.personas[key])
	}
	return out
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.keys)
}
