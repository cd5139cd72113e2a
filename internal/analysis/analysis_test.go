package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		style     string
		wantType  ElementType
		wantLevel *int
	}{
		{"Title", ElementHeading, doc.Ptr(0)},
		{"Heading 1", ElementHeading, doc.Ptr(1)},
		{"Heading 4", ElementHeading, doc.Ptr(4)},
		{"Heading 12", ElementHeading, doc.Ptr(12)},
		{"Heading One", ElementParagraph, doc.Ptr(0)},
		{"Heading", ElementParagraph, doc.Ptr(0)},
		{"Heading -1", ElementParagraph, doc.Ptr(0)},
		{"Normal", ElementParagraph, nil},
		{"", ElementParagraph, nil},
		{"Body Text", ElementParagraph, nil},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			gotType, gotLevel := Classify(tt.style)
			if gotType != tt.wantType {
				t.Errorf("Classify(%q) type = %s, want %s", tt.style, gotType, tt.wantType)
			}
			if (gotLevel == nil) != (tt.wantLevel == nil) {
				t.Fatalf("Classify(%q) level = %v, want %v", tt.style, gotLevel, tt.wantLevel)
			}
			if gotLevel != nil && *gotLevel != *tt.wantLevel {
				t.Errorf("Classify(%q) level = %d, want %d", tt.style, *gotLevel, *tt.wantLevel)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	d := doc.New()
	d.AddHeading("Report", 1)
	p := doc.NewParagraph("Body text here.")
	p.Alignment = doc.AlignCenter
	d.AddParagraph(p)
	d.AddParagraph(doc.NewParagraph(""))

	a := Analyze(d)

	if len(a.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(a.Elements))
	}

	h := a.Elements[0]
	if h.Type != ElementHeading {
		t.Errorf("expected heading, got %s", h.Type)
	}
	if h.Level == nil || *h.Level != 1 {
		t.Errorf("expected level 1, got %v", h.Level)
	}
	if h.ParagraphIndex != 0 {
		t.Errorf("expected index 0, got %d", h.ParagraphIndex)
	}
	if h.StyleName != "Heading 1" {
		t.Errorf("expected style 'Heading 1', got %q", h.StyleName)
	}

	b := a.Elements[1]
	if b.Type != ElementParagraph {
		t.Errorf("expected paragraph, got %s", b.Type)
	}
	if b.Level != nil {
		t.Errorf("expected nil level for body paragraph, got %d", *b.Level)
	}
	if b.Alignment == nil || *b.Alignment != "CENTER" {
		t.Errorf("expected CENTER alignment, got %v", b.Alignment)
	}
	if b.Text != "Body text here." {
		t.Errorf("unexpected text: %q", b.Text)
	}

	empty := a.Elements[2]
	if empty.Text != "" {
		t.Errorf("expected empty text, got %q", empty.Text)
	}
	if empty.Alignment != nil {
		t.Errorf("expected nil alignment for unset, got %v", empty.Alignment)
	}
}

func TestAnalyzeRunDetails(t *testing.T) {
	d := doc.New()
	p := doc.NewParagraph("")
	d.AddParagraph(p)
	r := p.AddRun("styled")
	r.FontName = doc.Ptr("Arial")
	r.SizePt = doc.Ptr(12.0)
	r.Bold = doc.Ptr(true)
	p.AddRun("plain")

	a := Analyze(d)

	runs := a.Elements[0].Runs
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].FontName == nil || *runs[0].FontName != "Arial" {
		t.Error("expected first run font name Arial")
	}
	if runs[0].FontSize == nil || *runs[0].FontSize != 12.0 {
		t.Error("expected first run size 12")
	}
	if runs[0].Bold == nil || !*runs[0].Bold {
		t.Error("expected first run bold")
	}
	if runs[0].Italic != nil {
		t.Error("expected first run italic to be inherited (nil)")
	}

	// Unstyled run keeps everything nil.
	if runs[1].FontName != nil || runs[1].Bold != nil {
		t.Error("expected second run attributes to be nil")
	}
}

func TestAnalyzeIgnoresTables(t *testing.T) {
	d := doc.New()
	d.AddParagraph(doc.NewParagraph("before"))
	d.AddTable(doc.NewTable(2, 2))
	d.AddParagraph(doc.NewParagraph("after"))

	a := Analyze(d)

	if len(a.Elements) != 2 {
		t.Fatalf("expected 2 elements (tables excluded), got %d", len(a.Elements))
	}
	if a.Elements[1].ParagraphIndex != 1 {
		t.Errorf("expected contiguous paragraph indexes, got %d", a.Elements[1].ParagraphIndex)
	}
}

func TestAnalysisJSONContract(t *testing.T) {
	d := doc.New()
	d.AddHeading("T", 2)

	data, err := json.Marshal(Analyze(d))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	s := string(data)
	for _, field := range []string{`"elements"`, `"paragraph_index"`, `"type"`, `"level"`, `"text"`, `"style_name"`, `"alignment"`, `"runs"`} {
		if !strings.Contains(s, field) {
			t.Errorf("expected JSON to contain %s, got %s", field, s)
		}
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	a := Analyze(doc.New())

	if a.Elements == nil {
		t.Fatal("expected non-nil elements slice")
	}
	if len(a.Elements) != 0 {
		t.Errorf("expected 0 elements, got %d", len(a.Elements))
	}

	// Empty analysis still serializes with an elements array, not null.
	data, _ := json.Marshal(a)
	if string(data) != `{"elements":[]}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}
