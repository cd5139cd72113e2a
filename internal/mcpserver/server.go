// Package mcpserver exposes document analysis and formatting as Model
// Context Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/docx"
	"github.com/smartdoc-io/smartdoc/internal/engine"
	"github.com/smartdoc-io/smartdoc/internal/plan"
)

// Server wires the formatting engine into MCP tool handlers.
type Server struct {
	log *zap.Logger
	eng *engine.Engine
}

// New creates an MCP server wrapper. A nil logger disables logging.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log: log,
		eng: engine.New(log),
	}
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run(version string) error {
	return server.ServeStdio(s.build(version))
}

func (s *Server) build(version string) *server.MCPServer {
	m := server.NewMCPServer(
		"smartdoc",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	m.AddTool(mcp.NewTool("analyze_document",
		mcp.WithDescription("Analyze the structure of a .docx document: paragraphs, headings, styles, alignment and run formatting. Returns JSON with zero-based paragraph indexes usable in plan scopes."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .docx file")),
	), s.handleAnalyzeDocument)

	m.AddTool(mcp.NewTool("apply_plan",
		mcp.WithDescription("Apply a JSON formatting plan to a .docx document and write the result to a new file. Returns a per-action report."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .docx file")),
		mcp.WithString("plan", mcp.Required(), mcp.Description("Formatting plan as JSON: {\"actions\": [...]}")),
		mcp.WithString("output_path", mcp.Description("Output file path (default: <name>_formatted.docx)")),
		mcp.WithBoolean("dry_run", mcp.Description("Report without writing output")),
	), s.handleApplyPlan)

	m.AddTool(mcp.NewTool("create_table",
		mcp.WithDescription("Append a new table to a .docx document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .docx file")),
		mcp.WithNumber("rows", mcp.Required(), mcp.Description("Number of rows")),
		mcp.WithNumber("cols", mcp.Required(), mcp.Description("Number of columns")),
		mcp.WithString("data", mcp.Description("Initial cell content, rows separated by ';' and cells by ','")),
		mcp.WithString("style", mcp.Description("Table style name, e.g. \"Table Grid\"")),
		mcp.WithString("output_path", mcp.Description("Output file path (default: <name>_formatted.docx)")),
	), s.handleCreateTable)

	m.AddTool(mcp.NewTool("format_cell",
		mcp.WithDescription("Format a single table cell: text, font, alignment and shading."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .docx file")),
		mcp.WithNumber("table_index", mcp.Description("Table index in the document, zero-based (default 0)")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Cell row, zero-based")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Cell column, zero-based")),
		mcp.WithString("text", mcp.Description("Replacement cell text")),
		mcp.WithString("font_name", mcp.Description("Font name")),
		mcp.WithNumber("size", mcp.Description("Font size in points")),
		mcp.WithBoolean("bold", mcp.Description("Bold")),
		mcp.WithBoolean("italic", mcp.Description("Italic")),
		mcp.WithBoolean("underline", mcp.Description("Underline")),
		mcp.WithString("alignment", mcp.Description("Paragraph alignment: LEFT, CENTER, RIGHT or JUSTIFY")),
		mcp.WithString("shading", mcp.Description("Cell fill as hex, e.g. C0C0C0")),
		mcp.WithString("output_path", mcp.Description("Output file path (default: <name>_formatted.docx)")),
	), s.handleFormatCell)

	m.AddTool(mcp.NewTool("merge_cells",
		mcp.WithDescription("Merge a rectangular cell region in a table. Merged-over cells alias the top-left cell afterwards."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .docx file")),
		mcp.WithNumber("table_index", mcp.Description("Table index in the document, zero-based (default 0)")),
		mcp.WithNumber("start_row", mcp.Required(), mcp.Description("Top-left row of the region, zero-based")),
		mcp.WithNumber("start_col", mcp.Required(), mcp.Description("Top-left column of the region, zero-based")),
		mcp.WithNumber("end_row", mcp.Required(), mcp.Description("Bottom-right row of the region, inclusive")),
		mcp.WithNumber("end_col", mcp.Required(), mcp.Description("Bottom-right column of the region, inclusive")),
		mcp.WithString("output_path", mcp.Description("Output file path (default: <name>_formatted.docx)")),
	), s.handleMergeCells)

	return m
}

func (s *Server) handleAnalyzeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := docx.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	a := analysis.Analyze(f.Doc)
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode analysis: %v", err)), nil
	}

	s.log.Debug("document analyzed", zap.String("path", path), zap.Int("elements", len(a.Elements)))
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleApplyPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	planJSON, err := req.RequireString("plan")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, err := plan.Parse([]byte(planJSON))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid plan: %v", err)), nil
	}

	f, err := docx.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	a := analysis.Analyze(f.Doc)
	report, err := s.eng.ApplyPlan(f.Doc, a, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := struct {
		Report     *engine.Report `json:"report"`
		OutputPath string         `json:"output_path,omitempty"`
		DryRun     bool           `json:"dry_run,omitempty"`
	}{Report: report}

	if req.GetBool("dry_run", false) {
		result.DryRun = true
	} else {
		out := req.GetString("output_path", "")
		if out == "" {
			out = derivedOutputPath(path)
		}
		if err := f.Save(out); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save document: %v", err)), nil
		}
		result.OutputPath = out
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCreateTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rows, err := req.RequireInt("rows")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cols, err := req.RequireInt("cols")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var data [][]string
	if raw := req.GetString("data", ""); raw != "" {
		for _, row := range strings.Split(raw, ";") {
			data = append(data, strings.Split(row, ","))
		}
	}

	f, err := docx.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	t, err := s.eng.CreateTable(f.Doc, rows, cols, data, req.GetString("style", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := req.GetString("output_path", "")
	if out == "" {
		out = derivedOutputPath(path)
	}
	if err := f.Save(out); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("created %dx%d table (style %q), written to %s", t.Rows, t.Cols, t.Style, out)), nil
}

func (s *Server) handleFormatCell(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := req.RequireInt("row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := req.RequireInt("col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := docx.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	idx := req.GetInt("table_index", 0)
	t, ok := f.Doc.Table(idx)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("table %d not found: document has %d tables", idx, len(f.Doc.Tables()))), nil
	}

	cf := engine.CellFormat{
		Alignment: req.GetString("alignment", ""),
		Shading:   req.GetString("shading", ""),
	}
	// Optional fields stay nil when absent so existing formatting survives.
	args := req.GetArguments()
	if v, ok := args["text"].(string); ok {
		cf.Text = &v
	}
	if v, ok := args["font_name"].(string); ok {
		cf.FontName = &v
	}
	if v, ok := args["size"].(float64); ok {
		cf.Size = &v
	}
	if v, ok := args["bold"].(bool); ok {
		cf.Bold = &v
	}
	if v, ok := args["italic"].(bool); ok {
		cf.Italic = &v
	}
	if v, ok := args["underline"].(bool); ok {
		cf.Underline = &v
	}

	if err := s.eng.FormatCell(t, row, col, cf); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := req.GetString("output_path", "")
	if out == "" {
		out = derivedOutputPath(path)
	}
	if err := f.Save(out); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("formatted cell (%d,%d) in table %d, written to %s", row, col, idx, out)), nil
}

func (s *Server) handleMergeCells(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startRow, err := req.RequireInt("start_row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startCol, err := req.RequireInt("start_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endRow, err := req.RequireInt("end_row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endCol, err := req.RequireInt("end_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := docx.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	idx := req.GetInt("table_index", 0)
	t, ok := f.Doc.Table(idx)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("table %d not found: document has %d tables", idx, len(f.Doc.Tables()))), nil
	}

	if err := s.eng.MergeCells(t, startRow, startCol, endRow, endCol); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := req.GetString("output_path", "")
	if out == "" {
		out = derivedOutputPath(path)
	}
	if err := f.Save(out); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save document: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("merged cells (%d,%d)-(%d,%d) in table %d, written to %s", startRow, startCol, endRow, endCol, idx, out)), nil
}

// derivedOutputPath turns report.docx into report_formatted.docx.
func derivedOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_formatted" + ext
}
