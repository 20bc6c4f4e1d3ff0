package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smyrgeorge/lexis/internal/convert"
	"github.com/smyrgeorge/lexis/internal/markdown"
	"github.com/smyrgeorge/lexis/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf | directory>",
	Short: "Convert PDFs to Markdown",
	Long: `Convert a PDF, or every PDF in a directory, to Markdown. The docling
engine (default) pipes each file through a local container image; the native
engine extracts embedded text in-process. Files whose Markdown output already
exists are skipped, so an interrupted batch can simply be rerun.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	outDir, _ := cmd.Flags().GetString("outdir")

	conv, err := convert.NewConverter(cfg.Engine)
	if err != nil {
		return err
	}

	inPath := args[0]
	info, err := os.Stat(inPath)
	if err != nil {
		return &types.InputError{Path: inPath, Err: err}
	}

	if !info.IsDir() {
		if convert.ConvertFile(conv, inPath, outDir, cfg, os.Stdout) == convert.StatusFailed {
			return fmt.Errorf("conversion failed for %s", inPath)
		}
		return nil
	}

	pdfs, err := listPDFs(inPath)
	if err != nil {
		return err
	}

	res := convert.ConvertBatch(conv, pdfs, outDir, cfg, os.Stdout)
	if res.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", res.Failed)
	}
	return nil
}

// listPDFs returns the PDF files directly under dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &types.InputError{Path: dir, Err: err}
	}

	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)

	if len(pdfs) == 0 {
		return nil, &types.InputError{Path: dir, Err: fmt.Errorf("no PDF files found")}
	}
	return pdfs, nil
}

func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	engine, _ := cmd.Flags().GetString("engine")
	lineWidth, _ := cmd.Flags().GetInt("line-width")
	noWrap, _ := cmd.Flags().GetBool("no-wrap")

	return types.ConvertConfig{
		Engine:    types.ConversionEngine(engine),
		LineWidth: lineWidth,
		Wrap:      !noWrap,
	}
}

func init() {
	convertCmd.Flags().String("engine", string(types.EngineDocling), "conversion engine: docling or native")
	convertCmd.Flags().String("outdir", "", "output directory (default: beside each source file)")
	convertCmd.Flags().Int("line-width", markdown.DefaultLineWidth, "wrap width for converted Markdown")
	convertCmd.Flags().Bool("no-wrap", false, "keep converter output unwrapped")

	rootCmd.AddCommand(convertCmd)
}
