package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echosense-labs/echosense/internal/output"
)

var (
	historyFlagJSON  bool
	historyFlagClear bool
	historyFlagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear completed analysis runs",
	Long: `History lists every completed run, newest first, including runs that
produced nothing notable. Individual records cannot be deleted; --clear
removes all of them.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")
	historyCmd.Flags().BoolVar(&historyFlagClear, "clear", false, "Delete all run records")
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 0, "Show at most this many runs (0 = all)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if historyFlagClear {
		if err := db.ClearHistory(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := db.LoadHistory()
	if err != nil {
		return err
	}

	// Newest first for display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if historyFlagLimit > 0 && len(entries) > historyFlagLimit {
		entries = entries[:historyFlagLimit]
	}

	if historyFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println(output.StyleMuted.Render("No runs recorded yet."))
		return nil
	}

	table := output.NewTable("TIME", "MODE", "FINDINGS", "OBSERVATIONS", "INPUT")
	for _, e := range entries {
		table.AddRow(
			e.Timestamp.Format("2006-01-02 15:04"),
			string(e.InputMode),
			fmt.Sprintf("%d", len(e.Suggestions)),
			fmt.Sprintf("%d", len(e.Disciplines)),
			e.InputPreview,
		)
	}
	table.Print()
	return nil
}
