package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	analyzeOutput string
	analyzeFormat string
	analyzePretty bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Inspect the structure of a .docx document",
	Long: `Analyzes a .docx document and reports its structure: every paragraph
with its index, element type (heading or paragraph), style, alignment and
run formatting.

The JSON output is the same structure given to the LLM during plan
generation, so paragraph indexes seen here can be used in plan scopes.

Examples:
  smartdoc analyze report.docx
  smartdoc analyze report.docx -o analysis.json
  smartdoc analyze report.docx --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format (json, text)")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := openDocument(args[0])
	if err != nil {
		return err
	}

	a := analysis.Analyze(f.Doc)

	output, err := renderAnalysis(a, analyzeFormat)
	if err != nil {
		return err
	}

	if analyzeOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(analyzeOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "analysis written: %s\n", analyzeOutput)
	}

	return nil
}

func renderAnalysis(a *analysis.Analysis, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if analyzePretty {
			data, err = json.MarshalIndent(a, "", "  ")
		} else {
			data, err = json.Marshal(a)
		}
		if err != nil {
			return "", fmt.Errorf("failed to encode analysis: %w", err)
		}
		return string(data), nil

	case "text":
		return analysisAsText(a), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func analysisAsText(a *analysis.Analysis) string {
	var sb strings.Builder
	for _, el := range a.Elements {
		sb.WriteString(fmt.Sprintf("[%d] %s", el.ParagraphIndex, el.Type))
		if el.Level != nil {
			sb.WriteString(fmt.Sprintf(" level=%d", *el.Level))
		}
		if el.StyleName != "" {
			sb.WriteString(fmt.Sprintf(" style=%q", el.StyleName))
		}
		if el.Alignment != nil {
			sb.WriteString(fmt.Sprintf(" align=%s", *el.Alignment))
		}
		text := el.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", text))
	}
	return sb.String()
}
