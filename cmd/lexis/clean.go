package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/internal/translate"
	"github.com/smyrgeorge/lexis/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file.md | directory>",
	Short: "Strip conversion noise from Markdown",
	Long: `Send Markdown through the provider with a cleanup instruction instead
of a translation prompt, removing headers, footers, page numbers, and other
conversion artifacts. Outputs are written as <stem>_cleaned.md beside the
source, and files whose cleaned output already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	providerName := flagOrConfig(cmd, "provider", "translate.provider")
	cfg := types.TranslateConfig{
		Provider: providerName,
		Model:    flagOrConfig(cmd, "model", "translate.model"),
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	cfg.APIKey = providerKey(providerName, apiKey)
	cfg.RulesPath = flagOrConfig(cmd, "rules-file", "translate.rules_file")

	tr, err := provider.New(cfg)
	if err != nil {
		return err
	}

	inPath := args[0]
	info, err := os.Stat(inPath)
	if err != nil {
		return &types.InputError{Path: inPath, Err: err}
	}

	ctx := cmd.Context()
	suffix, _ := cmd.Flags().GetString("suffix")
	outDir, _ := cmd.Flags().GetString("outdir")

	var report *types.RunReport
	if info.IsDir() {
		report, err = translate.CleanDirectory(ctx, tr, inPath, suffix, outDir, os.Stdout)
	} else {
		report, err = translate.CleanFile(ctx, tr, inPath, outDir, os.Stdout)
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

func init() {
	cleanCmd.Flags().String("provider", provider.ProviderClaude, "provider: claude, chatgpt, or rules")
	cleanCmd.Flags().StringP("model", "m", "", "model identifier (default: the provider's default)")
	cleanCmd.Flags().String("api-key", "", "provider API key (default: environment or .secrets/)")
	cleanCmd.Flags().String("rules-file", "", "find-replace rules file for the rules provider")
	cleanCmd.Flags().String("suffix", "", "only clean files whose stem ends with this suffix")
	cleanCmd.Flags().StringP("outdir", "o", "", "output directory (default: beside each source file)")
	cleanCmd.Flags().String("report", "", "write a YAML run report to this file")
	cleanCmd.Flags().String("ledger", "", "record the run in this sqlite ledger")

	rootCmd.AddCommand(cleanCmd)
}
