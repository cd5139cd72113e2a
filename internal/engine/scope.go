package engine

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/doc"
)

// ScopeKind identifies which subset of paragraphs a scope string denotes.
type ScopeKind int

const (
	ScopeInvalid ScopeKind = iota
	ScopeAllParagraphs
	ScopeAllBodyParagraphs
	ScopeHeadingsLevel
	ScopeParagraphIndex
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAllParagraphs:
		return "all_paragraphs"
	case ScopeAllBodyParagraphs:
		return "all_body_paragraphs"
	case ScopeHeadingsLevel:
		return "headings_level"
	case ScopeParagraphIndex:
		return "paragraph_index"
	default:
		return "invalid"
	}
}

// ScopeSpec is the parsed form of a scope string: a closed kind plus the
// numeric parameter for the parameterized kinds.
type ScopeSpec struct {
	Kind ScopeKind
	N    int // heading level or paragraph index
}

// ParseScope parses a scope string. The grammar is four fixed forms:
//
//	all_paragraphs
//	all_body_paragraphs
//	headings_level_<N>
//	paragraph_index_<N>
//
// Anything else, including an unparsable numeric suffix, yields
// ScopeInvalid; scope resolution treats that as a zero-match, never an
// error.
func ParseScope(scope string) ScopeSpec {
	switch {
	case scope == "all_paragraphs":
		return ScopeSpec{Kind: ScopeAllParagraphs}
	case scope == "all_body_paragraphs":
		return ScopeSpec{Kind: ScopeAllBodyParagraphs}
	case strings.HasPrefix(scope, "headings_level_"):
		n, err := strconv.Atoi(strings.TrimPrefix(scope, "headings_level_"))
		if err != nil || n < 0 {
			return ScopeSpec{}
		}
		return ScopeSpec{Kind: ScopeHeadingsLevel, N: n}
	case strings.HasPrefix(scope, "paragraph_index_"):
		n, err := strconv.Atoi(strings.TrimPrefix(scope, "paragraph_index_"))
		if err != nil {
			return ScopeSpec{}
		}
		return ScopeSpec{Kind: ScopeParagraphIndex, N: n}
	default:
		return ScopeSpec{}
	}
}

// Resolve maps a scope string onto the live paragraphs it denotes, in
// document order. The analysis must have been taken from the document's
// current state. An unknown scope or an out-of-range index resolves to an
// empty slice and is logged, never raised; the caller treats the action as
// a no-op.
func (e *Engine) Resolve(d *doc.Document, a *analysis.Analysis, scope string) []*doc.Paragraph {
	paras := d.Paragraphs()

	if scope == "" {
		e.log.Warn("no scope provided for paragraph resolution")
		return nil
	}

	spec := ParseScope(scope)
	switch spec.Kind {
	case ScopeAllParagraphs:
		return paras

	case ScopeAllBodyParagraphs:
		var out []*doc.Paragraph
		for _, el := range a.Elements {
			if el.Type == analysis.ElementParagraph && el.ParagraphIndex < len(paras) {
				out = append(out, paras[el.ParagraphIndex])
			}
		}
		return out

	case ScopeHeadingsLevel:
		var out []*doc.Paragraph
		for _, el := range a.Elements {
			if el.Type == analysis.ElementHeading && el.Level != nil && *el.Level == spec.N &&
				el.ParagraphIndex < len(paras) {
				out = append(out, paras[el.ParagraphIndex])
			}
		}
		if len(out) == 0 {
			e.log.Warn("scope matched no headings", zap.String("scope", scope), zap.Int("level", spec.N))
		}
		return out

	case ScopeParagraphIndex:
		if spec.N < 0 || spec.N >= len(paras) {
			e.log.Warn("paragraph index out of bounds",
				zap.String("scope", scope), zap.Int("index", spec.N), zap.Int("count", len(paras)))
			return nil
		}
		return []*doc.Paragraph{paras[spec.N]}

	default:
		e.log.Warn("unknown scope", zap.String("scope", scope))
		return nil
	}
}
