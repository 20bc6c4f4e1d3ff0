package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smyrgeorge/lexis/internal/chunk"
	"github.com/smyrgeorge/lexis/internal/convert"
	"github.com/smyrgeorge/lexis/internal/markdown"
	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/internal/translate"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// workspacePDFName constrains pipeline documents to portable names: the
// stem reappears in chunk file names, output suffixes, and shell commands.
var workspacePDFName = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.pdf$`)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <project/document.pdf>",
	Short: "Run chunk, convert, and translate end to end",
	Long: `Run the full pipeline for one document: split the PDF into page
chunks under <project>/chunks/, convert each chunk to Markdown, and translate
the Markdown chunk by chunk.

The document path is relative to the workspace and must sit in a project
subdirectory, with a name matching ` + workspacePDFName.String() + `. Every
stage skips work whose output already exists, so rerunning the pipeline
resumes wherever it stopped. With --skip-chunking the whole PDF is converted
and translated as a single unit.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	workspace, _ := cmd.Flags().GetString("workspace")
	skipChunking, _ := cmd.Flags().GetBool("skip-chunking")

	pdfPath, err := resolvePipelinePDF(workspace, args[0])
	if err != nil {
		return err
	}
	projDir := filepath.Dir(pdfPath)

	convCfg := convertConfig(cmd)
	conv, err := convert.NewConverter(convCfg.Engine)
	if err != nil {
		return err
	}

	tcfg := pipelineTranslateConfig(cmd)
	dict, err := loadDictionary(tcfg.DictionaryPath)
	if err != nil {
		return err
	}
	tr, err := provider.New(tcfg)
	if err != nil {
		return err
	}
	orch, err := translate.NewOrchestrator(tr, tcfg, dict)
	if err != nil {
		return err
	}

	pdfs := []string{pdfPath}
	chunksDir := filepath.Join(projDir, "chunks")
	if skipChunking {
		fmt.Println("Step 1/3: page chunking skipped")
	} else {
		fmt.Printf("Step 1/3: splitting %s into page chunks\n", filepath.Base(pdfPath))
		if existing, _ := listPDFs(chunksDir); len(existing) > 0 {
			fmt.Printf("skipped: %s (already has %d chunks)\n", chunksDir, len(existing))
			pdfs = existing
		} else {
			pages, _ := cmd.Flags().GetInt("pages")
			res, err := chunk.SplitPDF(pdfPath, chunksDir, pages, os.Stdout)
			if err != nil {
				return err
			}
			pdfs = res.Files
		}
	}

	fmt.Println("\nStep 2/3: converting to Markdown")
	convRes := convert.ConvertBatch(conv, pdfs, "", convCfg, os.Stdout)
	if convRes.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", convRes.Failed)
	}

	fmt.Println("\nStep 3/3: translating")
	ctx := cmd.Context()
	var report *types.RunReport
	if skipChunking {
		report, err = orch.TranslateFile(ctx, convert.OutputPath(pdfPath, ""), os.Stdout)
	} else {
		report, err = orch.TranslateDirectory(ctx, chunksDir, os.Stdout)
	}
	if report != nil {
		report.Command = "pipeline"
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

	fmt.Printf("\nPipeline complete: %s\n", projDir)
	return nil
}

// resolvePipelinePDF validates the workspace-relative document path and
// returns the path on disk.
func resolvePipelinePDF(workspace, rel string) (string, error) {
	rel = filepath.Clean(rel)
	if filepath.IsAbs(rel) {
		return "", &types.InputError{Path: rel, Err: errors.New("document path must be relative to the workspace")}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &types.InputError{Path: rel, Err: errors.New("document path must stay inside the workspace")}
	}
	if filepath.Dir(rel) == "." {
		return "", &types.InputError{Path: rel, Err: errors.New("document must live in a project subdirectory, e.g. myproject/doc.pdf")}
	}
	name := filepath.Base(rel)
	if !workspacePDFName.MatchString(name) {
		return "", &types.InputError{Path: rel, Err: fmt.Errorf("document name must match %s", workspacePDFName)}
	}

	path := filepath.Join(workspace, rel)
	if _, err := os.Stat(path); err != nil {
		return "", &types.InputError{Path: path, Err: err}
	}
	return path, nil
}

// pipelineTranslateConfig mirrors the translate command's configuration,
// minus the flags the pipeline does not expose; those settings still come
// from the config file.
func pipelineTranslateConfig(cmd *cobra.Command) types.TranslateConfig {
	apiKey, _ := cmd.Flags().GetString("api-key")
	providerName := flagOrConfig(cmd, "provider", "translate.provider")

	return types.TranslateConfig{
		Provider:       providerName,
		Model:          flagOrConfig(cmd, "model", "translate.model"),
		APIKey:         providerKey(providerName, apiKey),
		SourceLang:     flagOrConfig(cmd, "source-lang", "translate.source_lang"),
		TargetLang:     flagOrConfig(cmd, "target-lang", "translate.target_lang"),
		PromptTemplate: viper.GetString("translate.prompt"),
		DictionaryPath: flagOrConfig(cmd, "dictionary", "translate.dictionary"),
		RulesPath:      viper.GetString("translate.rules_file"),
		ContextLines:   intFlagOrConfig(cmd, "context-lines", "translate.context_lines"),
	}
}

func init() {
	pipelineCmd.Flags().String("workspace", ".", "workspace root the document path is relative to")
	pipelineCmd.Flags().IntP("pages", "p", chunk.DefaultPagesPerChunk, "pages per PDF chunk")
	pipelineCmd.Flags().Bool("skip-chunking", false, "convert and translate the whole PDF as one unit")
	pipelineCmd.Flags().String("engine", string(types.EngineDocling), "conversion engine: docling or native")
	pipelineCmd.Flags().Int("line-width", markdown.DefaultLineWidth, "wrap width for converted Markdown")
	pipelineCmd.Flags().Bool("no-wrap", false, "keep converter output unwrapped")
	pipelineCmd.Flags().String("provider", provider.ProviderClaude, "translation provider: claude, chatgpt, or rules")
	pipelineCmd.Flags().StringP("model", "m", "", "model identifier (default: the provider's default)")
	pipelineCmd.Flags().String("api-key", "", "provider API key (default: environment or .secrets/)")
	pipelineCmd.Flags().StringP("source-lang", "s", "Spanish", "source language name")
	pipelineCmd.Flags().StringP("target-lang", "t", "English", "target language name")
	pipelineCmd.Flags().StringP("dictionary", "d", "", "terminology dictionary file")
	pipelineCmd.Flags().IntP("context-lines", "c", translate.DefaultContextLines, "boundary lines from adjacent chunks")
	pipelineCmd.Flags().String("report", "", "write a YAML run report to this file")
	pipelineCmd.Flags().String("ledger", "", "record the run in this sqlite ledger")

	rootCmd.AddCommand(pipelineCmd)
}
