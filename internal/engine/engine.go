// Package engine implements the scope-resolution and action-application
// core: it maps declarative formatting actions onto concrete document
// elements and mutates them in place. Application is best-effort — a
// malformed action or an empty scope degrades to a skipped outcome in the
// report, never an error, so one bad action in an LLM-produced plan cannot
// abort the rest.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/doc"
	"github.com/smartdoc-io/smartdoc/internal/plan"
)

// ErrStaleAnalysis is returned by ApplyPlan when the analysis was taken
// from a document with a different paragraph count, which would make its
// indices point at the wrong elements.
var ErrStaleAnalysis = errors.New("analysis is stale: paragraph count differs from document")

// Status is the result class of a single action application.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
)

// Outcome is the structured result of applying one action.
type Outcome struct {
	Action   plan.ActionType `json:"action"`
	Status   Status          `json:"status"`
	Reason   string          `json:"reason,omitempty"`
	Affected int             `json:"affected"` // paragraphs mutated, or runs for fix_font_inconsistencies
}

// Report accumulates per-action outcomes across a plan.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Applied returns the number of applied actions.
func (r *Report) Applied() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusApplied {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped actions.
func (r *Report) Skipped() int {
	return len(r.Outcomes) - r.Applied()
}

// Engine applies formatting actions to a document.
type Engine struct {
	log *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{log: logger}
}

// ApplyPlan applies every action of the plan in order, collecting outcomes.
// It fails up front with ErrStaleAnalysis when the analysis no longer
// matches the document shape; individual action failures never abort the
// plan.
func (e *Engine) ApplyPlan(d *doc.Document, a *analysis.Analysis, p *plan.Plan) (*Report, error) {
	if len(a.Elements) != len(d.Paragraphs()) {
		return nil, fmt.Errorf("%w: %d analyzed, %d live", ErrStaleAnalysis, len(a.Elements), len(d.Paragraphs()))
	}

	report := &Report{Outcomes: make([]Outcome, 0, len(p.Actions))}
	for i, action := range p.Actions {
		outcome := e.Apply(d, a, action)
		if outcome.Status == StatusSkipped {
			e.log.Warn("action skipped",
				zap.Int("position", i),
				zap.String("action", string(action.Type)),
				zap.String("reason", outcome.Reason))
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report, nil
}

// Apply dispatches a single action to its mutation routine and returns the
// structured outcome. Unknown action types are skipped with a warning.
func (e *Engine) Apply(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	switch action.Type {
	case plan.ActionSetFont:
		return e.applySetFont(d, a, action)
	case plan.ActionSetHeadingStyle:
		return e.applySetHeadingStyle(d, a, action)
	case plan.ActionSetParagraphSpacing:
		return e.applySetParagraphSpacing(d, a, action)
	case plan.ActionSetAlignment:
		return e.applySetAlignment(d, a, action)
	case plan.ActionFindAndReplace:
		return e.applyFindAndReplace(d, action)
	case plan.ActionFixFontInconsistencies:
		return e.applyFixFontInconsistencies(d, a, action)
	default:
		e.log.Warn("unknown action type", zap.String("action", string(action.Type)))
		return Outcome{Action: action.Type, Status: StatusSkipped, Reason: "unknown action type"}
	}
}

func skipped(t plan.ActionType, reason string) Outcome {
	return Outcome{Action: t, Status: StatusSkipped, Reason: reason}
}

func applied(t plan.ActionType, affected int) Outcome {
	return Outcome{Action: t, Status: StatusApplied, Affected: affected}
}
