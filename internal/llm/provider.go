// Package llm provides the LLM provider interface and registry for plan generation.
package llm

import (
	"context"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/plan"
)

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Plan takes a document analysis and a user instruction and returns
	// a formatting plan.
	Plan(ctx context.Context, a *analysis.Analysis, instruction string, opts PlanOptions) (*PlanResult, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// PlanOptions contains options for plan generation.
type PlanOptions struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Prompt      string  `json:"prompt,omitempty"`      // custom system prompt
}

// PlanResult contains the result of plan generation.
type PlanResult struct {
	Plan  *plan.Plan `json:"plan"`
	Raw   string     `json:"raw"`
	Model string     `json:"model"`
	Usage TokenUsage `json:"usage"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultPlanOptions returns the default plan generation options.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		MaxTokens:   4096,
		Temperature: 0.2,
	}
}
