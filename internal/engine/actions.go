package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/doc"
	"github.com/smartdoc-io/smartdoc/internal/plan"
)

// fontAttrs is the subset of action fields shared by the font-touching
// actions.
type fontAttrs struct {
	name      *string
	size      *float64
	bold      *bool
	italic    *bool
	underline *bool
}

// setRunFont applies each present attribute to the run. A non-positive size
// is ignored; the tri-state flags are only written when explicitly present,
// so an absent flag never clears prior formatting.
func (e *Engine) setRunFont(r *doc.Run, f fontAttrs) {
	if f.name != nil {
		r.FontName = doc.Ptr(*f.name)
	}
	if f.size != nil {
		if *f.size > 0 {
			r.SizePt = doc.Ptr(*f.size)
		} else {
			e.log.Warn("ignoring non-positive font size", zap.Float64("size", *f.size))
		}
	}
	if f.bold != nil {
		r.Bold = doc.Ptr(*f.bold)
	}
	if f.italic != nil {
		r.Italic = doc.Ptr(*f.italic)
	}
	if f.underline != nil {
		r.Underline = doc.Ptr(*f.underline)
	}
}

func (e *Engine) applyFontToParagraphs(paras []*doc.Paragraph, f fontAttrs) {
	for _, p := range paras {
		for _, r := range p.Runs {
			e.setRunFont(r, f)
		}
	}
}

func (e *Engine) applySetFont(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	targets := e.Resolve(d, a, action.Scope)
	if len(targets) == 0 {
		return skipped(action.Type, "scope matched no paragraphs")
	}
	e.applyFontToParagraphs(targets, fontAttrs{
		name:      action.FontName,
		size:      action.Size,
		bold:      action.Bold,
		italic:    action.Italic,
		underline: action.Underline,
	})
	return applied(action.Type, len(targets))
}

func (e *Engine) applySetHeadingStyle(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	if action.Level == nil {
		return skipped(action.Type, "missing required field: level")
	}
	scope := fmt.Sprintf("headings_level_%d", *action.Level)
	targets := e.Resolve(d, a, scope)
	if len(targets) == 0 {
		return skipped(action.Type, "scope matched no paragraphs")
	}
	attrs := fontAttrs{
		name:      action.FontName,
		size:      action.Size,
		bold:      action.Bold,
		italic:    action.Italic,
		underline: action.Underline,
	}
	for _, p := range targets {
		for _, r := range p.Runs {
			e.setRunFont(r, attrs)
		}
		if action.SpacingAfter != nil {
			p.Format.SpaceAfter = doc.Ptr(*action.SpacingAfter)
		}
	}
	return applied(action.Type, len(targets))
}

func (e *Engine) applySetParagraphSpacing(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	if action.SpacingBefore == nil && action.SpacingAfter == nil && action.LineSpacing == nil {
		return skipped(action.Type, "no spacing fields provided")
	}
	targets := e.Resolve(d, a, action.Scope)
	if len(targets) == 0 {
		return skipped(action.Type, "scope matched no paragraphs")
	}
	for _, p := range targets {
		if action.SpacingBefore != nil {
			p.Format.SpaceBefore = doc.Ptr(*action.SpacingBefore)
		}
		if action.SpacingAfter != nil {
			p.Format.SpaceAfter = doc.Ptr(*action.SpacingAfter)
		}
		if action.LineSpacing != nil {
			p.Format.LineSpacing = doc.Ptr(*action.LineSpacing)
		}
	}
	return applied(action.Type, len(targets))
}

func (e *Engine) applySetAlignment(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	if action.Alignment == "" {
		return skipped(action.Type, "missing required field: alignment")
	}
	align, ok := doc.ParseAlignment(action.Alignment)
	if !ok {
		e.log.Warn("unrecognized alignment value", zap.String("alignment", action.Alignment))
		return skipped(action.Type, fmt.Sprintf("unrecognized alignment %q", action.Alignment))
	}
	targets := e.Resolve(d, a, action.Scope)
	if len(targets) == 0 {
		return skipped(action.Type, "scope matched no paragraphs")
	}
	for _, p := range targets {
		p.Alignment = align
	}
	return applied(action.Type, len(targets))
}

// applyFindAndReplace replaces case-insensitive literal occurrences within
// each run independently. Matches spanning a run boundary are not found;
// that limitation is deliberate, since splitting runs would disturb their
// formatting.
func (e *Engine) applyFindAndReplace(d *doc.Document, action plan.Action) Outcome {
	if action.Find == "" {
		return skipped(action.Type, "missing required field: find")
	}
	if action.ReplaceWith == nil {
		return skipped(action.Type, "missing required field: replace_with")
	}
	total := 0
	for _, p := range d.Paragraphs() {
		for _, r := range p.Runs {
			text, n := replaceFold(r.Text, action.Find, *action.ReplaceWith)
			if n > 0 {
				r.Text = text
				total += n
			}
		}
	}
	e.log.Info("find_and_replace complete",
		zap.String("find", action.Find), zap.Int("occurrences", total))
	return applied(action.Type, total)
}

func (e *Engine) applyFixFontInconsistencies(d *doc.Document, a *analysis.Analysis, action plan.Action) Outcome {
	if action.TargetFontName == nil && action.TargetFontSize == nil {
		return skipped(action.Type, "no target font name or size provided")
	}
	scope := action.Scope
	if scope == "" {
		scope = "all_paragraphs"
	}
	targets := e.Resolve(d, a, scope)
	if len(targets) == 0 {
		return skipped(action.Type, "scope matched no paragraphs")
	}

	changed := 0
	for _, p := range targets {
		for _, r := range p.Runs {
			touched := false
			if action.TargetFontName != nil &&
				(r.FontName == nil || *r.FontName != *action.TargetFontName) {
				r.FontName = doc.Ptr(*action.TargetFontName)
				touched = true
			}
			if action.TargetFontSize != nil &&
				(r.SizePt == nil || *r.SizePt != *action.TargetFontSize) {
				r.SizePt = doc.Ptr(*action.TargetFontSize)
				touched = true
			}
			if touched {
				changed++
			}
		}
	}
	return applied(action.Type, changed)
}

// replaceFold replaces every non-overlapping case-insensitive occurrence of
// find in s with repl, returning the new string and the occurrence count.
// Matching compares equal-length windows with strings.EqualFold, so byte
// offsets into the original string stay valid.
func replaceFold(s, find, repl string) (string, int) {
	if find == "" {
		return s, 0
	}
	var sb strings.Builder
	n := 0
	i := 0
	for i+len(find) <= len(s) {
		if strings.EqualFold(s[i:i+len(find)], find) {
			sb.WriteString(repl)
			i += len(find)
			n++
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	sb.WriteString(s[i:])
	if n == 0 {
		return s, 0
	}
	return sb.String(), n
}
