// Package plan defines the formatting-plan wire format: an ordered sequence
// of action records, each a tagged variant with typed fields. Plans are
// produced externally, by an LLM provider or directly by a caller, and
// consumed once by the engine.
package plan

import (
	"encoding/json"
	"fmt"
)

// ActionType tags an action variant. Unknown tags parse fine and are
// skipped by the dispatcher with a warning.
type ActionType string

const (
	ActionSetFont                ActionType = "set_font"
	ActionSetHeadingStyle        ActionType = "set_heading_style"
	ActionSetParagraphSpacing    ActionType = "set_paragraph_spacing"
	ActionSetAlignment           ActionType = "set_alignment"
	ActionFindAndReplace         ActionType = "find_and_replace"
	ActionFixFontInconsistencies ActionType = "fix_font_inconsistencies"
)

// Action is a single declarative formatting instruction. Only the fields
// relevant to the tagged variant are read; pointer fields distinguish
// "absent = untouched" from explicit zero values, which matters for the
// bold/italic/underline tri-states.
type Action struct {
	Type  ActionType `json:"action"`
	Scope string     `json:"scope,omitempty"`

	// set_font, set_heading_style, fix_font_inconsistencies
	FontName  *string  `json:"font_name,omitempty"`
	Size      *float64 `json:"size,omitempty"`
	Bold      *bool    `json:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty"`
	Underline *bool    `json:"underline,omitempty"`

	// set_heading_style
	Level        *int     `json:"level,omitempty"`
	SpacingAfter *float64 `json:"spacing_after,omitempty"`

	// set_paragraph_spacing
	SpacingBefore *float64 `json:"spacing_before,omitempty"`
	LineSpacing   *float64 `json:"line_spacing,omitempty"`

	// set_alignment
	Alignment string `json:"alignment,omitempty"`

	// find_and_replace
	Find        string  `json:"find,omitempty"`
	ReplaceWith *string `json:"replace_with,omitempty"`

	// fix_font_inconsistencies
	TargetFontName *string  `json:"target_font_name,omitempty"`
	TargetFontSize *float64 `json:"target_font_size,omitempty"`
}

// Plan is an ordered sequence of actions.
type Plan struct {
	Actions []Action `json:"actions"`
}

// Parse decodes a plan from JSON. Both the canonical object form
// {"actions": [...]} and a bare action array are accepted, since LLM
// responses use either.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err == nil && p.Actions != nil {
		return &p, nil
	}

	var actions []Action
	if err := json.Unmarshal(data, &actions); err == nil {
		return &Plan{Actions: actions}, nil
	}

	// A single bare action object is tolerated too.
	var single Action
	if err := json.Unmarshal(data, &single); err == nil && single.Type != "" {
		return &Plan{Actions: []Action{single}}, nil
	}

	return nil, fmt.Errorf("plan JSON is neither an action list nor an object with an \"actions\" field")
}

// Marshal encodes the plan in its canonical indented object form.
func (p *Plan) Marshal() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
