package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/smartdoc-io/smartdoc/internal/doc"
	"github.com/smartdoc-io/smartdoc/internal/docx"
)

func newTestRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("expected result content")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

// writeFixture creates a small document on disk and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := docx.New()
	f.Doc.AddHeading("Quarterly Report", 1)
	f.Doc.AddParagraph(doc.NewParagraph("Revenue grew in the third quarter."))
	f.Doc.AddParagraph(doc.NewParagraph("Costs remained flat."))

	path := filepath.Join(t.TempDir(), "fixture.docx")
	if err := f.Save(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestHandleAnalyzeDocument(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)

	res, err := s.handleAnalyzeDocument(context.Background(), newTestRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var payload struct {
		Elements []struct {
			ParagraphIndex int    `json:"paragraph_index"`
			Type           string `json:"type"`
			Text           string `json:"text"`
		} `json:"elements"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("invalid analysis JSON: %v", err)
	}

	if len(payload.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(payload.Elements))
	}
	if payload.Elements[0].Type != "heading" {
		t.Errorf("expected first element to be a heading, got %s", payload.Elements[0].Type)
	}
	if payload.Elements[1].Text != "Revenue grew in the third quarter." {
		t.Errorf("unexpected text: %s", payload.Elements[1].Text)
	}
}

func TestHandleAnalyzeDocumentMissingPath(t *testing.T) {
	s := New(nil)

	res, err := s.handleAnalyzeDocument(context.Background(), newTestRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing path argument")
	}
}

func TestHandleApplyPlan(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)
	out := filepath.Join(t.TempDir(), "out.docx")

	planJSON := `{"actions": [{"action": "set_alignment", "scope": "all_paragraphs", "alignment": "CENTER"}]}`

	res, err := s.handleApplyPlan(context.Background(), newTestRequest(map[string]any{
		"path":        path,
		"plan":        planJSON,
		"output_path": out,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var payload struct {
		Report struct {
			Outcomes []struct {
				Status string `json:"status"`
			} `json:"outcomes"`
		} `json:"report"`
		OutputPath string `json:"output_path"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("invalid report JSON: %v", err)
	}
	if len(payload.Report.Outcomes) != 1 || payload.Report.Outcomes[0].Status != "applied" {
		t.Fatalf("expected one applied outcome, got %+v", payload.Report.Outcomes)
	}
	if payload.OutputPath != out {
		t.Errorf("expected output path %s, got %s", out, payload.OutputPath)
	}

	// The written document carries the formatting.
	saved, err := docx.Load(out)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	for i, p := range saved.Doc.Paragraphs() {
		if p.Alignment != "CENTER" {
			t.Errorf("paragraph %d: expected CENTER alignment, got %q", i, p.Alignment)
		}
	}
}

func TestHandleApplyPlanDryRun(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)

	res, err := s.handleApplyPlan(context.Background(), newTestRequest(map[string]any{
		"path":    path,
		"plan":    `{"actions": []}`,
		"dry_run": true,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `"dry_run": true`) {
		t.Error("expected dry_run marker in result")
	}
}

func TestHandleApplyPlanInvalidPlan(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)

	res, err := s.handleApplyPlan(context.Background(), newTestRequest(map[string]any{
		"path": path,
		"plan": "not json",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for invalid plan")
	}
}

func TestHandleCreateTable(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)
	out := filepath.Join(t.TempDir(), "out.docx")

	res, err := s.handleCreateTable(context.Background(), newTestRequest(map[string]any{
		"path":        path,
		"rows":        float64(2),
		"cols":        float64(3),
		"data":        "a,b,c;d,e,f",
		"style":       "Table Grid",
		"output_path": out,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	saved, err := docx.Load(out)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	tbl, ok := saved.Doc.Table(0)
	if !ok {
		t.Fatal("expected a table in the output document")
	}
	if tbl.Rows != 2 || tbl.Cols != 3 {
		t.Errorf("expected 2x3 table, got %dx%d", tbl.Rows, tbl.Cols)
	}
	cell, _ := tbl.Cell(1, 2)
	if cell.Text() != "f" {
		t.Errorf("expected cell text 'f', got %q", cell.Text())
	}
}

func TestHandleFormatCell(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)
	out := filepath.Join(t.TempDir(), "out.docx")

	// First add a table to format.
	mid := filepath.Join(t.TempDir(), "mid.docx")
	res, err := s.handleCreateTable(context.Background(), newTestRequest(map[string]any{
		"path":        path,
		"rows":        float64(2),
		"cols":        float64(2),
		"output_path": mid,
	}))
	if err != nil || res.IsError {
		t.Fatalf("failed to create table: %v %v", err, res)
	}

	res, err = s.handleFormatCell(context.Background(), newTestRequest(map[string]any{
		"path":        mid,
		"row":         float64(0),
		"col":         float64(1),
		"text":        "Header",
		"bold":        true,
		"alignment":   "CENTER",
		"shading":     "#c0c0c0",
		"output_path": out,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	saved, err := docx.Load(out)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	tbl, _ := saved.Doc.Table(0)
	cell, _ := tbl.Cell(0, 1)
	if cell.Text() != "Header" {
		t.Errorf("expected cell text 'Header', got %q", cell.Text())
	}
	if cell.Shading != "C0C0C0" {
		t.Errorf("expected shading C0C0C0, got %q", cell.Shading)
	}
	para := cell.FirstParagraph()
	if para.Alignment != "CENTER" {
		t.Errorf("expected CENTER alignment, got %q", para.Alignment)
	}
	if len(para.Runs) == 0 || para.Runs[0].Bold == nil || !*para.Runs[0].Bold {
		t.Error("expected bold run in formatted cell")
	}
}

func TestHandleMergeCells(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)
	mid := filepath.Join(t.TempDir(), "mid.docx")
	out := filepath.Join(t.TempDir(), "out.docx")

	res, err := s.handleCreateTable(context.Background(), newTestRequest(map[string]any{
		"path":        path,
		"rows":        float64(3),
		"cols":        float64(3),
		"output_path": mid,
	}))
	if err != nil || res.IsError {
		t.Fatalf("failed to create table: %v %v", err, res)
	}

	res, err = s.handleMergeCells(context.Background(), newTestRequest(map[string]any{
		"path":        mid,
		"start_row":   float64(0),
		"start_col":   float64(0),
		"end_row":     float64(0),
		"end_col":     float64(2),
		"output_path": out,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	saved, err := docx.Load(out)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	tbl, _ := saved.Doc.Table(0)
	anchor, _ := tbl.Cell(0, 0)
	if anchor.ColSpan != 3 {
		t.Errorf("expected ColSpan 3 after merge round-trip, got %d", anchor.ColSpan)
	}
	// A merged-over coordinate aliases the anchor.
	aliased, _ := tbl.Cell(0, 2)
	if aliased != anchor {
		t.Error("expected merged-over cell to alias the anchor")
	}
}

func TestHandleMergeCellsBadRegion(t *testing.T) {
	s := New(nil)
	path := writeFixture(t)
	mid := filepath.Join(t.TempDir(), "mid.docx")

	res, err := s.handleCreateTable(context.Background(), newTestRequest(map[string]any{
		"path":        path,
		"rows":        float64(2),
		"cols":        float64(2),
		"output_path": mid,
	}))
	if err != nil || res.IsError {
		t.Fatalf("failed to create table: %v %v", err, res)
	}

	res, err = s.handleMergeCells(context.Background(), newTestRequest(map[string]any{
		"path":      mid,
		"start_row": float64(1),
		"start_col": float64(1),
		"end_row":   float64(0),
		"end_col":   float64(0),
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for inverted merge region")
	}
}

func TestBuildRegistersTools(t *testing.T) {
	s := New(nil)
	m := s.build("test")
	if m == nil {
		t.Fatal("expected non-nil MCP server")
	}
}

func TestDerivedOutputPath(t *testing.T) {
	if got := derivedOutputPath("a/b/report.docx"); got != "a/b/report_formatted.docx" {
		t.Errorf("unexpected derived path: %s", got)
	}
}
