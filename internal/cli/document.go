package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartdoc-io/smartdoc/internal/config"
	"github.com/smartdoc-io/smartdoc/internal/docx"
	"github.com/smartdoc-io/smartdoc/internal/llm"
)

// openDocument validates the path and loads a .docx file.
func openDocument(path string) (*docx.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	switch docx.DetectFormat(path) {
	case docx.FormatDocx:
		// ok
	case docx.FormatDoc:
		return nil, fmt.Errorf("legacy .doc format is not supported: %s (save as .docx first)", path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	return docx.Load(path)
}

// defaultOutputPath derives the output path for a formatted document:
// report.docx becomes report_formatted.docx.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + "_formatted" + ext
}

// newProvider resolves the provider and plan options from flags, environment
// and the config file. Flags win over environment, environment over config.
func newProvider(providerFlag, modelFlag string) (llm.Provider, llm.PlanOptions, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, llm.PlanOptions{}, fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, llm.PlanOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	name := providerFlag
	if name == "" {
		name = os.Getenv("SMARTDOC_PROVIDER")
	}
	model := modelFlag
	if model == "" {
		model = os.Getenv("SMARTDOC_MODEL")
	}
	if name == "" {
		if model != "" {
			name = detectProviderFromModel(model)
		} else {
			name = cfg.DefaultProvider
		}
	}

	pc, ok := cfg.GetProvider(name)
	if !ok {
		pc = &config.Provider{}
	}

	// A model flag overrides the configured model, so the provider is built
	// directly; otherwise it comes from the registry of configured providers.
	var p llm.Provider
	if model != "" || !ok {
		pc.Model = model
		p, err = llm.NewFromConfig(name, pc)
	} else {
		p, err = llm.NewRegistryFromConfig(cfg).Get(name)
	}
	if err != nil {
		return nil, llm.PlanOptions{}, err
	}

	opts := llm.DefaultPlanOptions()
	if pc.MaxTokens > 0 {
		opts.MaxTokens = pc.MaxTokens
	}
	if cfg.Format.Temperature > 0 {
		opts.Temperature = cfg.Format.Temperature
	}
	return p, opts, nil
}
