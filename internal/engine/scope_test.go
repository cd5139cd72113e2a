package engine

import (
	"testing"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/doc"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		scope    string
		wantKind ScopeKind
		wantN    int
	}{
		{"all_paragraphs", ScopeAllParagraphs, 0},
		{"all_body_paragraphs", ScopeAllBodyParagraphs, 0},
		{"headings_level_1", ScopeHeadingsLevel, 1},
		{"headings_level_0", ScopeHeadingsLevel, 0},
		{"headings_level_12", ScopeHeadingsLevel, 12},
		{"paragraph_index_0", ScopeParagraphIndex, 0},
		{"paragraph_index_42", ScopeParagraphIndex, 42},

		// Invalid forms
		{"", ScopeInvalid, 0},
		{"everything", ScopeInvalid, 0},
		{"headings_level_", ScopeInvalid, 0},
		{"headings_level_x", ScopeInvalid, 0},
		{"headings_level_-1", ScopeInvalid, 0},
		{"paragraph_index_", ScopeInvalid, 0},
		{"paragraph_index_abc", ScopeInvalid, 0},
		{"all_paragraphs ", ScopeInvalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			spec := ParseScope(tt.scope)
			if spec.Kind != tt.wantKind {
				t.Errorf("ParseScope(%q).Kind = %v, want %v", tt.scope, spec.Kind, tt.wantKind)
			}
			if spec.N != tt.wantN {
				t.Errorf("ParseScope(%q).N = %d, want %d", tt.scope, spec.N, tt.wantN)
			}
		})
	}
}

func TestScopeKindString(t *testing.T) {
	tests := []struct {
		kind ScopeKind
		want string
	}{
		{ScopeAllParagraphs, "all_paragraphs"},
		{ScopeAllBodyParagraphs, "all_body_paragraphs"},
		{ScopeHeadingsLevel, "headings_level"},
		{ScopeParagraphIndex, "paragraph_index"},
		{ScopeInvalid, "invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

// testDoc builds a document with a title, two level-1 headings, a level-2
// heading, and body paragraphs in between.
func testDoc() *doc.Document {
	d := doc.New()
	d.AddHeading("Annual Report", 0)               // 0: Title
	d.AddHeading("Overview", 1)                    // 1
	d.AddParagraph(doc.NewParagraph("First body."))  // 2
	d.AddHeading("Details", 2)                     // 3
	d.AddParagraph(doc.NewParagraph("Second body.")) // 4
	d.AddHeading("Summary", 1)                     // 5
	d.AddParagraph(doc.NewParagraph("Third body."))  // 6
	return d
}

func TestResolveAllParagraphs(t *testing.T) {
	e := New(nil)
	d := testDoc()
	a := analysis.Analyze(d)

	got := e.Resolve(d, a, "all_paragraphs")
	if len(got) != 7 {
		t.Errorf("expected 7 paragraphs, got %d", len(got))
	}
}

func TestResolveAllBodyParagraphs(t *testing.T) {
	e := New(nil)
	d := testDoc()
	a := analysis.Analyze(d)

	got := e.Resolve(d, a, "all_body_paragraphs")
	if len(got) != 3 {
		t.Fatalf("expected 3 body paragraphs, got %d", len(got))
	}
	// Document order
	if got[0].Text() != "First body." || got[2].Text() != "Third body." {
		t.Error("expected body paragraphs in document order")
	}
}

func TestResolveHeadingsLevel(t *testing.T) {
	e := New(nil)
	d := testDoc()
	a := analysis.Analyze(d)

	level1 := e.Resolve(d, a, "headings_level_1")
	if len(level1) != 2 {
		t.Fatalf("expected 2 level-1 headings, got %d", len(level1))
	}
	if level1[0].Text() != "Overview" || level1[1].Text() != "Summary" {
		t.Error("expected level-1 headings in document order")
	}

	// Title is heading level 0.
	title := e.Resolve(d, a, "headings_level_0")
	if len(title) != 1 || title[0].Text() != "Annual Report" {
		t.Error("expected the title as the only level-0 heading")
	}

	if got := e.Resolve(d, a, "headings_level_3"); len(got) != 0 {
		t.Errorf("expected no level-3 headings, got %d", len(got))
	}
}

func TestResolveParagraphIndex(t *testing.T) {
	e := New(nil)
	d := testDoc()
	a := analysis.Analyze(d)

	got := e.Resolve(d, a, "paragraph_index_2")
	if len(got) != 1 || got[0].Text() != "First body." {
		t.Errorf("expected the paragraph at index 2, got %v", got)
	}

	if got := e.Resolve(d, a, "paragraph_index_99"); got != nil {
		t.Errorf("expected nil for out-of-range index, got %v", got)
	}
}

func TestResolveInvalidScopes(t *testing.T) {
	e := New(nil)
	d := testDoc()
	a := analysis.Analyze(d)

	for _, scope := range []string{"", "everything", "headings_level_x"} {
		if got := e.Resolve(d, a, scope); len(got) != 0 {
			t.Errorf("Resolve(%q): expected empty result, got %d", scope, len(got))
		}
	}
}
