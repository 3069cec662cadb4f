// Package llm provides interfaces and utilities for completion-service providers.
//
// It defines the Provider interface that all completion-service implementations
// must satisfy, along with message types and generation options.
package llm

import (
	"context"
	"encoding/json"
)

// Provider defines the interface for completion-service providers.
//
// All implementations (OpenAI, Anthropic, test stubs) must implement this interface.
type Provider interface {
	// Generate generates text from a single prompt.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - prompt: The input prompt text
	//   - opts: Optional generation parameters (temperature, max tokens, etc.)
	//
	// Returns the generated text and any error.
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// GenerateWithMessages generates text from a conversation history.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - messages: Conversation history (system, user, assistant messages)
	//   - opts: Optional generation parameters
	//
	// Returns the generated text and any error.
	GenerateWithMessages(ctx context.Context, messages []Message, opts ...GenerateOption) (string, error)

	// Close closes the provider and releases resources.
	Close() error
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the message role: "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message content text.
	Content string `json:"content"`
}

// ResponseSchema constrains a response to structured JSON output.
//
// When set, the provider must return text that parses as JSON conforming
// to Schema. Providers without native structured-output support fold the
// schema into the system instructions instead.
type ResponseSchema struct {
	// Name identifies the schema to the provider.
	Name string

	// Schema is the JSON-schema document.
	Schema json.RawMessage
}

// GenerateOptions contains options for text generation.
type GenerateOptions struct {
	// Temperature controls randomness (0.0-2.0). Higher = more random.
	Temperature float64

	// MaxTokens limits the maximum number of tokens in the response.
	MaxTokens int

	// TopP controls nucleus sampling (0.0-1.0). Higher = more diverse.
	TopP float64

	// Stop contains stop sequences that will end generation.
	Stop []string

	// Schema constrains the response to structured JSON output (optional).
	Schema *ResponseSchema
}

// GenerateOption is a function type for configuring generation options.
type GenerateOption func(*GenerateOptions)

// WithTemperature sets the temperature for text generation.
//
// Temperature controls randomness: 0.0 = deterministic, 2.0 = very random.
func WithTemperature(temp float64) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens in the response.
func WithMaxTokens(max int) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.MaxTokens = max
	}
}

// WithTopP sets the top-p (nucleus sampling) parameter.
func WithTopP(topP float64) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.TopP = topP
	}
}

// WithResponseSchema constrains the response to JSON conforming to the
// given JSON-schema document.
//
// Example:
//
//	text, _ := provider.GenerateWithMessages(ctx, msgs,
//	    llm.WithResponseSchema("memory_extraction", schema))
func WithResponseSchema(name string, schema json.RawMessage) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.Schema = &ResponseSchema{Name: name, Schema: schema}
	}
}

// ApplyGenerateOptions applies a slice of GenerateOption functions to create GenerateOptions.
//
// This is a helper function used internally by provider implementations.
// Default values: Temperature=0.7, MaxTokens=1000, TopP=1.0.
func ApplyGenerateOptions(opts []GenerateOption) *GenerateOptions {
	options := &GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        1.0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
