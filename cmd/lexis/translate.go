// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/smyrgeorge/lexis/internal/glossary"
	"github.com/smyrgeorge/lexis/internal/ledger"
	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/internal/translate"
	"github.com/smyrgeorge/lexis/pkg/types"
)

var translateCmd = &cobra.Command{
	Use:   "translate <file.md | directory>",
	Short: "Translate Markdown chunks",
	Long: `Translate a Markdown file, or every chunk in a directory, with the
configured provider. Each chunk is translated in one request; outputs are
written atomically as <stem>_<target-lang>.md beside the source. Chunks whose
output already exists are skipped, so an interrupted or partially failed run
resumes by rerunning the same command.

The claude and chatgpt providers need an API key, resolved in order from
--api-key, the ANTHROPIC_API_KEY / OPENAI_API_KEY environment, and the
.secrets/ directory. The rules provider translates offline from a
find-replace rules file.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg := translateConfig(cmd)
	cfg.APIKey = providerKey(cfg.Provider, cfg.APIKey)

	dict, err := loadDictionary(cfg.DictionaryPath)
	if err != nil {
		return err
	}

	tr, err := provider.New(cfg)
	if err != nil {
		return err
	}

	orch, err := translate.NewOrchestrator(tr, cfg, dict)
	if err != nil {
		return err
	}

	inPath := args[0]
	info, err := os.Stat(inPath)
	if err != nil {
		return &types.InputError{Path: inPath, Err: err}
	}

	ctx := cmd.Context()
	var report *types.RunReport
	if info.IsDir() {
		report, err = orch.TranslateDirectory(ctx, inPath, os.Stdout)
	} else {
		report, err = orch.TranslateFile(ctx, inPath, os.Stdout)
	}
	if report != nil {
		finishRun(cmd, report)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted after %d chunk(s); rerun to resume", report.Translated)
	}
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return fmt.Errorf("%d chunk(s) failed", report.Failed)
	}
	return nil
}

// finishRun writes the YAML report and the ledger row when either is
// configured. Neither failure aborts the command: the translations are
// already committed on disk.
func finishRun(cmd *cobra.Command, report *types.RunReport) {
	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeReport(reportPath, report); err != nil {
			log.Warn("could not write report", "file", reportPath, "err", err)
		}
	}

	ledgerPath := flagOrConfig(cmd, "ledger", "ledger.path")
	if ledgerPath == "" {
		return
	}
	store, err := ledger.Open(ledgerPath)
	if err != nil {
		log.Warn("could not open ledger", "path", ledgerPath, "err", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(context.Background(), report); err != nil {
		log.Warn("could not record run", "path", ledgerPath, "err", err)
	}
}

func writeReport(path string, report *types.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadDictionary parses the terminology dictionary when a path is set.
// Duplicate terms surface as warnings; malformed lines abort, since a
// half-read dictionary would silently mistranslate terms.
func loadDictionary(path string) (*glossary.Dictionary, error) {
	if path == "" {
		return nil, nil
	}
	d, warnings, err := glossary.ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, warn := range warnings {
		log.Warn("dictionary", "issue", warn)
	}
	return d, nil
}

func translateConfig(cmd *cobra.Command) types.TranslateConfig {
	apiKey, _ := cmd.Flags().GetString("api-key")
	outDir, _ := cmd.Flags().GetString("outdir")

	return types.TranslateConfig{
		Provider:       flagOrConfig(cmd, "provider", "translate.provider"),
		Model:          flagOrConfig(cmd, "model", "translate.model"),
		APIKey:         apiKey,
		SourceLang:     flagOrConfig(cmd, "source-lang", "translate.source_lang"),
		TargetLang:     flagOrConfig(cmd, "target-lang", "translate.target_lang"),
		PromptTemplate: flagOrConfig(cmd, "prompt", "translate.prompt"),
		DictionaryPath: flagOrConfig(cmd, "dictionary", "translate.dictionary"),
		RulesPath:      flagOrConfig(cmd, "rules-file", "translate.rules_file"),
		ContextLines:   intFlagOrConfig(cmd, "context-lines", "translate.context_lines"),
		OutputDir:      outDir,
	}
}

func init() {
	translateCmd.Flags().String("provider", provider.ProviderClaude, "translation provider: claude, chatgpt, or rules")
	translateCmd.Flags().StringP("model", "m", "", "model identifier (default: the provider's default)")
	translateCmd.Flags().String("api-key", "", "provider API key (default: environment or .secrets/)")
	translateCmd.Flags().StringP("source-lang", "s", "Spanish", "source language name")
	translateCmd.Flags().StringP("target-lang", "t", "English", "target language name")
	translateCmd.Flags().String("prompt", "", "custom prompt with {source} and {target} placeholders")
	translateCmd.Flags().StringP("dictionary", "d", "", "terminology dictionary file (term: rendering per line)")
	translateCmd.Flags().String("rules-file", "", "find-replace rules file for the rules provider")
	translateCmd.Flags().IntP("context-lines", "c", translate.DefaultContextLines, "boundary lines from adjacent chunks (0 disables)")
	translateCmd.Flags().StringP("outdir", "o", "", "output directory (default: beside each source file)")
	translateCmd.Flags().String("report", "", "write a YAML run report to this file")
	translateCmd.Flags().String("ledger", "", "record the run in this sqlite ledger")

	rootCmd.AddCommand(translateCmd)
}
