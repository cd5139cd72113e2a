package cli

import (
	"fmt"
	"os"

	"github.com/smartdoc-io/smartdoc/internal/analysis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	planInstruction string
	planProvider    string
	planModel       string
	planOutput      string
)

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Generate a formatting plan without applying it",
	Long: `Analyzes a .docx document and asks an LLM to turn a natural language
instruction into a JSON formatting plan. The plan is printed (or written
to a file) without modifying the document; apply it later with
'smartdoc format --plan'.

Environment variables:
  SMARTDOC_PROVIDER   LLM provider (anthropic, openai, gemini, ollama)
  SMARTDOC_MODEL      model name (provider detected automatically)

Examples:
  smartdoc plan report.docx -i "Make all headings Arial 14pt bold"
  smartdoc plan report.docx -i "Center the title" -o plan.json
  smartdoc plan report.docx -i "Fix fonts" --provider openai --model gpt-4o`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planInstruction, "instruction", "i", "", "natural language formatting instruction (required)")
	planCmd.Flags().StringVar(&planProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	planCmd.Flags().StringVar(&planModel, "model", "", "LLM model name")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "output file path (default: stdout)")
	_ = planCmd.MarkFlagRequired("instruction")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	f, err := openDocument(args[0])
	if err != nil {
		return err
	}

	a := analysis.Analyze(f.Doc)

	provider, opts, err := newProvider(planProvider, planModel)
	if err != nil {
		return err
	}

	result, err := provider.Plan(cmd.Context(), a, planInstruction, opts)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	logger.Debug("plan generated",
		zap.String("model", result.Model),
		zap.Int("actions", len(result.Plan.Actions)),
		zap.Int("total_tokens", result.Usage.TotalTokens))

	data, err := result.Plan.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	if planOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		if err := os.WriteFile(planOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "plan written: %s (%d actions)\n", planOutput, len(result.Plan.Actions))
	}

	return nil
}
