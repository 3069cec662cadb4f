package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/companion-labs/companion-go/pkg/llm"
)

// ExtractionTemperature is the sampling temperature for extraction calls.
// Kept low for consistent extraction.
const ExtractionTemperature = 0.3

// ExtractionPrompt is the fixed system instruction for memory extraction.
const ExtractionPrompt = `You are an expert memory extraction system for a companion AI. Your task is to analyze a series of chat messages from a user and extract meaningful memories that will help personalize future interactions.

ANALYSIS GUIDELINES:

1. USER PREFERENCES:
   - Look for explicit statements of likes/dislikes ("I love...", "I hate...", "I prefer...")
   - Identify implicit preferences from behavior patterns
   - Note communication preferences (emoji usage, response length, formality)
   - Categorize each preference appropriately

2. EMOTIONAL PATTERNS:
   - Identify recurring emotional states across messages
   - Look for triggers that consistently affect mood
   - Note any coping mechanisms mentioned
   - Assess emotional intensity and frequency
   - Be sensitive to mental health indicators

3. FACTS WORTH REMEMBERING:
   - Personal details (name, age, location if shared)
   - Important relationships (family, friends, partners)
   - Life events (job changes, moves, celebrations, losses)
   - Goals and aspirations
   - Health-related information
   - Achievements and milestones

4. CONFIDENCE SCORING:
   - High (0.8-1.0): Explicitly stated, clear context
   - Medium (0.5-0.79): Implied or partially stated
   - Low (0.2-0.49): Inferred with some uncertainty

Be thorough but avoid over-interpretation. Only extract what is reasonably supported by the messages.`

// Extractor converts raw chat transcripts into validated memory batches via
// the completion service and merges them into a Store.
//
// Example usage:
//
//	extractor := NewExtractor(provider, store)
//	batch, err := extractor.Extract(ctx, transcript)
type Extractor struct {
	// llm is the completion-service provider.
	llm llm.Provider

	// store receives validated batches.
	store *Store

	// customPrompt overrides the default extraction instruction when set.
	customPrompt string
}

// NewExtractor creates a new memory extractor bound to a store.
func NewExtractor(provider llm.Provider, store *Store) *Extractor {
	return &Extractor{
		llm:   provider,
		store: store,
	}
}

// NewExtractorWithPrompt creates an extractor with a custom extraction
// instruction. An empty prompt falls back to ExtractionPrompt.
func NewExtractorWithPrompt(provider llm.Provider, store *Store, customPrompt string) *Extractor {
	return &Extractor{
		llm:          provider,
		store:        store,
		customPrompt: customPrompt,
	}
}

// Extract analyzes a chat transcript and merges the extracted memories into
// the store.
//
// The transcript is formatted into a single numbered block, one completion
// call is issued with the extraction instruction and the JSON schema, and
// the response is validated before any merge. Either the whole batch merges
// or none of it does: a failed call or failed validation leaves the store
// untouched.
//
// Failure modes:
//   - ErrServiceUnavailable (wrapped): transport/HTTP failure, not retried
//   - ErrMalformedResponse (wrapped): response body is not valid JSON
//   - *SchemaError: response JSON violates the extraction schema
func (e *Extractor) Extract(ctx context.Context, transcript []ChatMessage) (*Batch, error) {
	formatted := FormatTranscript(transcript)

	messages := []llm.Message{
		{Role: "system", Content: e.systemPrompt()},
		{
			Role: "user",
			Content: fmt.Sprintf("Please analyze the following %d chat messages and extract memories:\n\n%s",
				len(transcript), formatted),
		},
	}

	response, err := e.llm.GenerateWithMessages(ctx, messages,
		llm.WithTemperature(ExtractionTemperature),
		llm.WithResponseSchema(ExtractionSchemaName, ExtractionSchema()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	batch, err := ValidateBatch([]byte(stripCodeFences(response)))
	if err != nil {
		return nil, err
	}

	e.store.Merge(batch)
	return batch, nil
}

// FormatTranscript renders a transcript as a numbered, blank-line separated
// block, preserving the original message order:
//
//	[Message 1] 2024-01-02 09:15: Hey! Just started my new job...
func FormatTranscript(transcript []ChatMessage) string {
	parts := make([]string, len(transcript))
	for i, msg := range transcript {
		parts[i] = fmt.Sprintf("[Message %d] %s: %s", i+1, msg.Timestamp, msg.Content)
	}
	return strings.Join(parts, "\n\n")
}

func (e *Extractor) systemPrompt() string {
	if e.customPrompt != "" {
		return e.customPrompt
	}
	return ExtractionPrompt
}

// stripCodeFences removes markdown code fences (```json ... ```) that some
// models wrap around JSON output.
func stripCodeFences(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}
