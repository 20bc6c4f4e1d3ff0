package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smyrgeorge/lexis/internal/ledger"
	"github.com/smyrgeorge/lexis/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs from the ledger",
	Long: `List runs recorded in the sqlite ledger, newest first. Runs are
recorded when translate, clean, or pipeline is invoked with --ledger (or a
ledger path in the config file). --run shows the per-chunk outcomes of one
run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := flagOrConfig(cmd, "ledger", "ledger.path")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no ledger at %s; record runs with translate --ledger", path)
	}

	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		chunks, err := store.ChunkResults(ctx, runID)
		if err != nil {
			return err
		}
		return formatChunkResults(chunks, jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.History(ctx, limit)
	if err != nil {
		return err
	}
	return formatHistoryOutput(runs, jsonOutput)
}

func formatHistoryOutput(runs []ledger.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-9s  %-8s  %-22s  %10s  %7s  %6s  %9s\n",
		"ID", "Started", "Command", "Provider", "Languages", "Translated", "Skipped", "Failed", "Elapsed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))

	for _, r := range runs {
		langs := ""
		if r.SourceLang != "" || r.TargetLang != "" {
			langs = r.SourceLang + " -> " + r.TargetLang
		}
		if len(langs) > 22 {
			langs = langs[:19] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-9s  %-8s  %-22s  %10d  %7d  %6d  %9s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Command, r.Provider,
			langs, r.Translated, r.Skipped, r.Failed, r.Elapsed.Round(time.Second))
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func formatChunkResults(chunks []types.ChunkResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	}

	if len(chunks) == 0 {
		fmt.Println("No chunks recorded for that run.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-10s  %9s  %s\n", "Chunk", "Status", "Elapsed", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, c := range chunks {
		name := c.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		errMsg := c.Error
		if len(errMsg) > 30 {
			errMsg = errMsg[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-10s  %9s  %s\n",
			name, c.Status, c.Elapsed.Round(time.Millisecond), errMsg)
	}

	fmt.Fprintf(os.Stdout, "\n%d chunks\n", len(chunks))
	return nil
}

func init() {
	historyCmd.Flags().String("ledger", "lexis.db", "sqlite ledger to read")
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().Int64("run", 0, "show per-chunk outcomes for this run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
