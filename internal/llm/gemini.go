package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
)

// GeminiProvider generates plans using the Google Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini provider. An empty model selects the default.
func NewGemini(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
	}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Validate checks if the provider is properly configured.
func (p *GeminiProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("gemini: API key not set (GOOGLE_API_KEY)")
	}
	return nil
}

// Plan sends the analysis and instruction to the model and parses the
// returned formatting plan.
func (p *GeminiProvider) Plan(ctx context.Context, a *analysis.Analysis, instruction string, opts PlanOptions) (*PlanResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	user, err := buildUserPrompt(a, instruction)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(user), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens:   int32(opts.MaxTokens),
		SystemInstruction: genai.NewContentFromText(systemPrompt(opts), genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}

	var usage TokenUsage
	if resp.UsageMetadata != nil {
		usage = TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return parsePlanResponse(text, p.model, usage)
}
