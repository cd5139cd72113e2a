package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/smartdoc-io/smartdoc/internal/doc"
	"github.com/smartdoc-io/smartdoc/internal/docx"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "smartdoc_test.exe"
	}
	return "smartdoc_test"
}

// buildTestBinary builds the test binary and returns a cleanup function
func buildTestBinary(t *testing.T) (string, func()) {
	t.Helper()
	binName := binaryName()
	buildCmd := exec.Command("go", "build", "-o", binName, "../cmd/smartdoc")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	return binName, func() { os.Remove(binName) }
}

// writeSampleDocx writes a small document with a title, headings, body
// paragraphs, and a table, and returns its path.
func writeSampleDocx(t *testing.T, dir string) string {
	t.Helper()
	f := docx.New()
	f.Doc.AddHeading("Quarterly Report", 0)
	f.Doc.AddHeading("Revenue", 1)
	f.Doc.AddParagraph(doc.NewParagraph("Revenue grew 12% over the quarter."))
	f.Doc.AddHeading("Outlook", 1)
	f.Doc.AddParagraph(doc.NewParagraph("We expect continued growth."))

	tbl := doc.NewTable(2, 2)
	tbl.SetCellText(0, 0, "Region")
	tbl.SetCellText(0, 1, "Growth")
	tbl.SetCellText(1, 0, "East")
	tbl.SetCellText(1, 1, "12%")
	f.Doc.AddTable(tbl)

	path := filepath.Join(dir, "sample.docx")
	if err := f.Save(path); err != nil {
		t.Fatalf("failed to write sample document: %v", err)
	}
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	sampleFile := writeSampleDocx(t, t.TempDir())

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "analyze as json",
			args:       []string{"analyze", sampleFile},
			wantErr:    false,
			wantOutput: []string{"elements", "Quarterly Report", "heading"},
		},
		{
			name:       "analyze as text",
			args:       []string{"analyze", sampleFile, "--format", "text"},
			wantErr:    false,
			wantOutput: []string{"Quarterly Report", "Revenue"},
		},
		{
			name:    "analyze non-existent file",
			args:    []string{"analyze", "nonexistent.docx"},
			wantErr: true,
		},
		{
			name:    "analyze unsupported format",
			args:    []string{"analyze", "notes.txt"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("./"+binPath, tc.args...)
			output, err := cmd.CombinedOutput()

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v\noutput: %s", err, output)
				}
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(string(output), want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestFormatCommandRequiresPlanOrInstruction(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	sampleFile := writeSampleDocx(t, t.TempDir())

	cmd := exec.Command("./"+binPath, "format", sampleFile)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Errorf("expected error without --plan or --instruction, got: %s", output)
	}
}

func TestTableCreateCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeSampleDocx(t, dir)
	outFile := filepath.Join(dir, "with_table.docx")

	cmd := exec.Command("./"+binPath, "table", "create", sampleFile,
		"--rows", "2", "--cols", "3",
		"--data", "a,b,c;d,e,f",
		"--output", outFile)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("table create failed: %v\noutput: %s", err, output)
	}

	loaded, err := docx.Load(outFile)
	if err != nil {
		t.Fatalf("failed to load output: %v", err)
	}
	tables := loaded.Doc.Tables()
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables after create, got %d", len(tables))
	}
	added := tables[1]
	if cell, _ := added.Cell(1, 2); cell.Text() != "f" {
		t.Errorf("cell (1,2) = %q, want f", cell.Text())
	}
}

func TestProvidersCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "providers")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	// Check that all providers are listed
	providers := []string{"anthropic", "openai", "gemini", "ollama"}
	for _, p := range providers {
		if !strings.Contains(string(output), p) {
			t.Errorf("output should contain provider %q, got: %s", p, output)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(string(output), "smartdoc") {
		t.Errorf("output should contain 'smartdoc', got: %s", output)
	}
}

func TestConfigCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	t.Run("config show", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "show")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), "default_provider") {
			t.Errorf("output should contain 'default_provider', got: %s", output)
		}
	})

	t.Run("config path", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "path")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), "config.yaml") {
			t.Errorf("output should contain 'config.yaml', got: %s", output)
		}
	})
}

func TestHelpCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "--help")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	expectedStrings := []string{"smartdoc", "analyze", "plan", "format", "table", "serve", "providers", "config"}
	for _, s := range expectedStrings {
		if !strings.Contains(string(output), s) {
			t.Errorf("output should contain %q, got: %s", s, output)
		}
	}
}
