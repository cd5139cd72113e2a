package tests

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartdoc-io/smartdoc/internal/doc"
	"github.com/smartdoc-io/smartdoc/internal/docx"
)

// E2E test for the deterministic formatting path: a JSON plan applied via
// the format command, verified by reloading the output document.

func TestE2EFormatWithPlanFile(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeSampleDocx(t, dir)
	planFile := filepath.Join(dir, "plan.json")
	outFile := filepath.Join(dir, "formatted.docx")

	planJSON := `{
	  "actions": [
	    {"action": "set_alignment", "scope": "headings_level_0", "alignment": "CENTER"},
	    {"action": "set_heading_style", "level": 1, "font_name": "Georgia", "size": 16, "bold": true, "spacing_after": 12},
	    {"action": "set_font", "scope": "all_body_paragraphs", "font_name": "Calibri", "size": 11},
	    {"action": "find_and_replace", "find": "growth", "replace_with": "expansion"}
	  ]
	}`
	if err := os.WriteFile(planFile, []byte(planJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command("./"+binPath, "format", sampleFile,
		"--plan", planFile, "--output", outFile)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("format command failed: %v\noutput: %s", err, output)
	}

	loaded, err := docx.Load(outFile)
	if err != nil {
		t.Fatalf("failed to load formatted output: %v", err)
	}
	paras := loaded.Doc.Paragraphs()

	// Title centered
	if paras[0].Alignment != doc.AlignCenter {
		t.Errorf("title alignment = %q, want CENTER", paras[0].Alignment)
	}

	// Level-1 headings restyled
	for _, i := range []int{1, 3} {
		p := paras[i]
		if p.StyleName != "Heading 1" {
			t.Fatalf("paragraph %d is %q, expected a Heading 1", i, p.StyleName)
		}
		if p.Format.SpaceAfter == nil || *p.Format.SpaceAfter != 12.0 {
			t.Errorf("heading %d space after = %v, want 12", i, p.Format.SpaceAfter)
		}
		for _, r := range p.Runs {
			if r.FontName == nil || *r.FontName != "Georgia" {
				t.Errorf("heading %d run font = %v, want Georgia", i, r.FontName)
			}
			if r.Bold == nil || !*r.Bold {
				t.Errorf("heading %d run not bold", i)
			}
		}
	}

	// Body font swapped
	for _, i := range []int{2, 4} {
		for _, r := range paras[i].Runs {
			if r.FontName == nil || *r.FontName != "Calibri" {
				t.Errorf("body %d run font = %v, want Calibri", i, r.FontName)
			}
		}
	}

	// Replacement applied case-insensitively
	joined := strings.Join([]string{paras[2].Text(), paras[4].Text()}, " ")
	if strings.Contains(strings.ToLower(joined), "growth") {
		t.Errorf("find_and_replace left 'growth' behind: %q", joined)
	}
	if !strings.Contains(joined, "expansion") {
		t.Errorf("replacement text missing: %q", joined)
	}
}

func TestE2EFormatDryRun(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeSampleDocx(t, dir)
	planFile := filepath.Join(dir, "plan.json")
	outFile := filepath.Join(dir, "never_written.docx")

	planJSON := `[{"action": "set_alignment", "scope": "all_paragraphs", "alignment": "RIGHT"}]`
	if err := os.WriteFile(planFile, []byte(planJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command("./"+binPath, "format", sampleFile,
		"--plan", planFile, "--output", outFile, "--dry-run")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("format --dry-run failed: %v\noutput: %s", err, output)
	}

	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Error("dry run must not write the output file")
	}
}

func TestE2EFormatReport(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeSampleDocx(t, dir)
	planFile := filepath.Join(dir, "plan.json")
	outFile := filepath.Join(dir, "out.docx")

	// One applicable action, one that matches nothing.
	planJSON := `[
	  {"action": "set_alignment", "scope": "all_paragraphs", "alignment": "LEFT"},
	  {"action": "set_font", "scope": "headings_level_8", "font_name": "Arial"}
	]`
	if err := os.WriteFile(planFile, []byte(planJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command("./"+binPath, "format", sampleFile,
		"--plan", planFile, "--output", outFile, "--report")
	// The JSON report goes to stdout; status lines go to stderr.
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("format --report failed: %v", err)
	}

	var report struct {
		Outcomes []struct {
			Action string `json:"action"`
			Status string `json:"status"`
			Reason string `json:"reason"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal(output, &report); err != nil {
		t.Fatalf("failed to decode report: %v\noutput: %s", err, output)
	}
	if len(report.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(report.Outcomes))
	}
	if report.Outcomes[0].Status != "applied" {
		t.Errorf("first outcome = %q, want applied", report.Outcomes[0].Status)
	}
	if report.Outcomes[1].Status != "skipped" {
		t.Errorf("second outcome = %q, want skipped", report.Outcomes[1].Status)
	}
}

func TestE2ETableMergeWorkflow(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeSampleDocx(t, dir)
	withTable := filepath.Join(dir, "with_table.docx")
	merged := filepath.Join(dir, "merged.docx")

	create := exec.Command("./"+binPath, "table", "create", sampleFile,
		"--rows", "3", "--cols", "3",
		"--data", "Region,H1,H2;East,10,12;West,8,9",
		"--style", "Table Grid",
		"--output", withTable)
	if output, err := create.CombinedOutput(); err != nil {
		t.Fatalf("table create failed: %v\noutput: %s", err, output)
	}

	// The sample document already carries one table; the new one is index 1.
	merge := exec.Command("./"+binPath, "table", "merge", withTable,
		"--table", "1", "--start", "0,0", "--end", "0,2",
		"--output", merged)
	if output, err := merge.CombinedOutput(); err != nil {
		t.Fatalf("table merge failed: %v\noutput: %s", err, output)
	}

	loaded, err := docx.Load(merged)
	if err != nil {
		t.Fatalf("failed to load merged output: %v", err)
	}
	tbl, ok := loaded.Doc.Table(1)
	if !ok {
		t.Fatal("expected table index 1 in merged output")
	}
	if tbl.Style != "Table Grid" {
		t.Errorf("table style = %q, want Table Grid", tbl.Style)
	}
	anchor, _ := tbl.Cell(0, 0)
	if anchor.ColSpan != 3 {
		t.Errorf("anchor colspan = %d, want 3", anchor.ColSpan)
	}
	if alias, _ := tbl.Cell(0, 2); alias != anchor {
		t.Error("cell (0,2) must alias the merge anchor after reload")
	}
}

func TestE2EPlanCommandRequiresInstruction(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	sampleFile := writeSampleDocx(t, t.TempDir())

	cmd := exec.Command("./"+binPath, "plan", sampleFile)
	if output, err := cmd.CombinedOutput(); err == nil {
		t.Errorf("expected error without --instruction, got: %s", output)
	}
}
