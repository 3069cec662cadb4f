package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/companion-labs/companion-go/pkg/llm"
)

// Client is an Anthropic completion-service client.
// It implements the llm.Provider interface on top of the Anthropic Messages API.
// System messages are separated from the conversation turns, conforming to the
// Messages API specification.
type Client struct {
	client *anthropic.Client
	model  string
}

// Config is the configuration for the Anthropic provider.
// APIKey: Anthropic API key (required)
// Model: Model name to use, defaults to "claude-3-5-sonnet-latest"
// BaseURL: API base URL override (optional)
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewClient creates a new Anthropic completion-service client.
//
// Args:
//   - cfg: Anthropic configuration containing APIKey, Model, and BaseURL
//
// Returns:
//   - *Client: Anthropic client instance
//   - error: Returns an error if the configuration is invalid
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(reqOpts...)

	return &Client{
		client: &client,
		model:  model,
	}, nil
}

// Generate generates text based on the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	messages := []llm.Message{
		{Role: "user", Content: prompt},
	}
	return c.GenerateWithMessages(ctx, messages, opts...)
}

// GenerateWithMessages generates text using message history.
// System-role messages are lifted into the request's System blocks; the
// remaining turns become the conversation. The Messages API has no native
// structured-output mode, so a response schema supplied via
// llm.WithResponseSchema is folded into the system instructions.
//
// Args:
//   - ctx: Context for controlling the request lifecycle
//   - messages: Message history list, each message contains role and content
//   - opts: Optional generation parameters (temperature, max_tokens, top_p, schema)
//
// Returns:
//   - string: Generated text content
//   - error: Returns an error if generation fails
func (c *Client) GenerateWithMessages(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (string, error) {
	options := llm.ApplyGenerateOptions(opts)

	var system string
	var turns []anthropic.MessageParam
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
		case "assistant":
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	if options.Schema != nil {
		if system != "" {
			system += "\n\n"
		}
		system += fmt.Sprintf(
			"Respond with a single JSON object (no markdown, no commentary) conforming to this JSON Schema:\n%s",
			string(options.Schema.Schema),
		)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(options.MaxTokens),
		Messages:    turns,
		Temperature: anthropic.Float(options.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.New("llm generation failed: no text content returned from Anthropic API")
	}

	return text, nil
}

// Close closes the client connection.
// The Anthropic SDK client does not require explicit closing; this method is
// retained for interface compatibility.
func (c *Client) Close() error {
	return nil
}
