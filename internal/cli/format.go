package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/smartdoc-io/smartdoc/internal/engine"
	"github.com/smartdoc-io/smartdoc/internal/plan"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	formatPlanPath    string
	formatInstruction string
	formatProvider    string
	formatModel       string
	formatOutputPath  string
	formatReportJSON  bool
	formatDryRun      bool
)

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Apply a formatting plan to a .docx document",
	Long: `Formats a .docx document, either from a saved plan file or from a
natural language instruction (which is turned into a plan by an LLM).

Actions are applied best-effort: an action that cannot be applied is
skipped with a reason instead of aborting the run. The input file is
never modified; output goes to a new file.

Environment variables:
  SMARTDOC_PROVIDER   LLM provider (anthropic, openai, gemini, ollama)
  SMARTDOC_MODEL      model name (provider detected automatically)

Examples:
  smartdoc format report.docx --instruction "Make all headings bold"
  smartdoc format report.docx --plan plan.json -o clean.docx
  smartdoc format report.docx --plan plan.json --dry-run --report`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&formatPlanPath, "plan", "", "path to a JSON plan file")
	formatCmd.Flags().StringVarP(&formatInstruction, "instruction", "i", "", "natural language formatting instruction")
	formatCmd.Flags().StringVar(&formatProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	formatCmd.Flags().StringVar(&formatModel, "model", "", "LLM model name")
	formatCmd.Flags().StringVarP(&formatOutputPath, "output", "o", "", "output file path (default: <name>_formatted.docx)")
	formatCmd.Flags().BoolVar(&formatReportJSON, "report", false, "print the full apply report as JSON")
	formatCmd.Flags().BoolVar(&formatDryRun, "dry-run", false, "resolve and report actions without writing output")
	formatCmd.MarkFlagsMutuallyExclusive("plan", "instruction")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	f, err := openDocument(inputPath)
	if err != nil {
		return err
	}

	a := analysis.Analyze(f.Doc)

	p, err := resolvePlan(cmd, a)
	if err != nil {
		return err
	}

	eng := engine.New(logger)
	report, err := eng.ApplyPlan(f.Doc, a, p)
	if err != nil {
		return err
	}

	if formatReportJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printReportSummary(cmd, report)
	}

	if formatDryRun {
		fmt.Fprintln(cmd.ErrOrStderr(), "dry run: no output written")
		return nil
	}

	outputPath := formatOutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}
	if err := f.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "formatted document written: %s\n", outputPath)
	return nil
}

// resolvePlan loads the plan from a file or generates one from the
// instruction.
func resolvePlan(cmd *cobra.Command, a *analysis.Analysis) (*plan.Plan, error) {
	if formatPlanPath != "" {
		data, err := os.ReadFile(formatPlanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read plan file: %w", err)
		}
		p, err := plan.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("invalid plan file %s: %w", formatPlanPath, err)
		}
		return p, nil
	}

	if formatInstruction == "" {
		return nil, fmt.Errorf("either --plan or --instruction is required")
	}

	provider, opts, err := newProvider(formatProvider, formatModel)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "generating plan with %s...\n", provider.Name())
	result, err := provider.Plan(cmd.Context(), a, formatInstruction, opts)
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	logger.Debug("plan generated",
		zap.String("model", result.Model),
		zap.Int("actions", len(result.Plan.Actions)),
		zap.Int("total_tokens", result.Usage.TotalTokens))

	return result.Plan, nil
}

func printReportSummary(cmd *cobra.Command, report *engine.Report) {
	applied := report.Applied()
	skipped := report.Skipped()
	fmt.Fprintf(cmd.ErrOrStderr(), "actions: %d applied, %d skipped\n", applied, skipped)

	for _, o := range report.Outcomes {
		if o.Status == engine.StatusSkipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "  skipped %s: %s\n", o.Action, o.Reason)
		}
	}
}
