package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/plan"
)

// defaultSystemPrompt instructs the model to emit a formatting plan in the
// JSON vocabulary the engine understands. Kept deliberately strict: the model
// must answer with JSON only, no prose.
const defaultSystemPrompt = `You are a document formatting assistant. You receive the structure of a
Word document as JSON and a user instruction, and you respond with a JSON
formatting plan.

Respond with ONLY a JSON object of the form:
{"actions": [ ... ]}

Each action is an object with an "action" field and parameters:

- {"action": "set_font", "scope": <scope>, "font_name": "...", "size": 12, "bold": true, "italic": false, "underline": false}
  All fields except "action" and "scope" are optional; omitted fields are left unchanged.
- {"action": "set_heading_style", "level": 1, "font_name": "...", "size": 16, "bold": true, "spacing_after": 12}
  Applies to every heading of the given level.
- {"action": "set_paragraph_spacing", "scope": <scope>, "spacing_before": 0, "spacing_after": 8, "line_spacing": 1.5}
  Spacing values are in points; line_spacing is a multiple.
- {"action": "set_alignment", "scope": <scope>, "alignment": "LEFT|CENTER|RIGHT|JUSTIFY"}
- {"action": "find_and_replace", "find": "...", "replace_with": "..."}
  Case-insensitive text replacement across the whole document.
- {"action": "fix_font_inconsistencies", "scope": <scope>, "target_font_name": "...", "target_font_size": 11}
  Rewrites every run in scope to the target font.

Scope is a string, one of:
- "all_paragraphs"         every paragraph, including headings
- "all_body_paragraphs"    paragraphs that are not headings
- "headings_level_N"       headings of level N (for example "headings_level_2")
- "paragraph_index_N"      the single paragraph at index N in the analysis

Use the paragraph indexes from the provided analysis. Do not invent indexes
that are not present. If the instruction cannot be satisfied, respond with
{"actions": []}.`

// buildUserPrompt renders the analysis and instruction into a single user
// message.
func buildUserPrompt(a *analysis.Analysis, instruction string) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Document structure:\n")
	sb.Write(data)
	sb.WriteString("\n\nInstruction:\n")
	sb.WriteString(instruction)
	return sb.String(), nil
}

// systemPrompt returns the custom prompt from opts, or the default.
func systemPrompt(opts PlanOptions) string {
	if opts.Prompt != "" {
		return opts.Prompt
	}
	return defaultSystemPrompt
}

// extractPlanJSON strips markdown code fences that models tend to wrap JSON
// in, returning the bare JSON text.
func extractPlanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence ("json").
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "json" || first == "" {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// parsePlanResponse converts a raw model response into a PlanResult.
func parsePlanResponse(raw, model string, usage TokenUsage) (*PlanResult, error) {
	p, err := plan.Parse([]byte(extractPlanJSON(raw)))
	if err != nil {
		return nil, fmt.Errorf("model returned invalid plan: %w", err)
	}
	return &PlanResult{
		Plan:  p,
		Raw:   raw,
		Model: model,
		Usage: usage,
	}, nil
}
