package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
)

// OpenAIProvider generates plans using an OpenAI-compatible chat API. It
// also backs the ollama provider, which speaks the same protocol against a
// local endpoint.
type OpenAIProvider struct {
	name   string
	apiKey string
	model  string
	local  bool
	client *openai.Client
}

// NewOpenAI creates an OpenAI provider. An empty model selects the default.
func NewOpenAI(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		name:   "openai",
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// NewOllama creates a provider that talks to a local Ollama server through
// its OpenAI-compatible endpoint. No API key is required.
func NewOllama(endpoint, model string) *OpenAIProvider {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = strings.TrimSuffix(endpoint, "/") + "/v1"
	return &OpenAIProvider{
		name:   "ollama",
		model:  model,
		local:  true,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Validate checks if the provider is properly configured.
func (p *OpenAIProvider) Validate() error {
	if !p.local && p.apiKey == "" {
		return fmt.Errorf("openai: API key not set (OPENAI_API_KEY)")
	}
	return nil
}

// Plan sends the analysis and instruction to the model and parses the
// returned formatting plan.
func (p *OpenAIProvider) Plan(ctx context.Context, a *analysis.Analysis, instruction string, opts PlanOptions) (*PlanResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	user, err := buildUserPrompt(a, instruction)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(opts)},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty response", p.name)
	}

	usage := TokenUsage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	return parsePlanResponse(resp.Choices[0].Message.Content, resp.Model, usage)
}
