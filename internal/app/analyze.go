package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/echosense-labs/echosense/internal/output"
	"github.com/echosense-labs/echosense/internal/podcast"
	"github.com/echosense-labs/echosense/internal/session"
)

var (
	analyzeFlagURL  bool
	analyzeFlagFile string
	analyzeFlagJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input]",
	Short: "Run a value assessment on a transcript or episode URL",
	Long: `Analyze runs the full assessment pipeline on one episode: extraction
(for URL input), streamed generation, case-grounded valuation, and
priority classification. Discipline observations from the run are folded
into the creator profile and the run is recorded in history.

Input is the transcript text as an argument, a file via --file, or an
episode URL with --url. Input starting with http:// or https:// is
treated as a URL automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFlagURL, "url", false, "Treat input as an episode URL")
	analyzeCmd.Flags().StringVar(&analyzeFlagFile, "file", "", "Read transcript text from a file")
	analyzeCmd.Flags().BoolVar(&analyzeFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, mode, err := resolveInput(args)
	if err != nil {
		return err
	}

	orch, db, err := openOrchestrator()
	if err != nil {
		return err
	}
	defer db.Close()

	cb := session.Callbacks{
		OnState: func(s session.State) {
			if flagVerbose {
				fmt.Fprintf(os.Stderr, "state: %s\n", s)
			}
			switch s {
			case session.StateExtracting:
				fmt.Fprintln(os.Stderr, output.StyleMuted.Render("提取播客内容..."))
			case session.StateAnalyzing:
				fmt.Fprintln(os.Stderr, output.StyleMuted.Render("分析中..."))
			}
		},
	}

	result, err := orch.Start(cmd.Context(), input, mode, cb)
	if err != nil {
		return describeRunError(err)
	}

	if analyzeFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.History)
	}

	renderRun(result)
	return nil
}

// resolveInput picks the transcript text or URL and its input mode from the
// argument and flags.
func resolveInput(args []string) (string, podcast.InputMode, error) {
	if analyzeFlagFile != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("pass either --file or an input argument, not both")
		}
		raw, err := os.ReadFile(analyzeFlagFile)
		if err != nil {
			return "", "", fmt.Errorf("reading transcript file: %w", err)
		}
		return string(raw), podcast.InputModeTranscript, nil
	}

	if len(args) == 0 {
		return "", "", fmt.Errorf("nothing to analyze: pass a transcript, --file, or a URL")
	}

	input := args[0]
	if analyzeFlagURL || strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input, podcast.InputModeURL, nil
	}
	return input, podcast.InputModeTranscript, nil
}

// describeRunError prefixes pipeline failures with the failing phase so the
// user can tell service errors from input errors.
func describeRunError(err error) error {
	var ve *session.ValidationError
	var ee *session.ExtractionError
	var te *session.TransportError
	var pe *session.SchemaParseError
	switch {
	case errors.Is(err, session.ErrRunInFlight):
		return err
	case errors.As(err, &ve):
		return fmt.Errorf("invalid input: %s", ve.Reason)
	case errors.As(err, &ee):
		return fmt.Errorf("extraction failed: %s", ee.Message)
	case errors.As(err, &te):
		return fmt.Errorf("generation failed: %v", te.Err)
	case errors.As(err, &pe):
		return fmt.Errorf("could not parse analysis output: %v", pe.Err)
	default:
		return err
	}
}

func renderRun(result *session.Result) {
	if result.NothingNotable {
		fmt.Println(output.StyleMuted.Render("本期内容没有值得标注的段落。"))
		fmt.Println(output.StyleMuted.Render("分析已记录到历史。"))
		return
	}

	if block := output.AlertBlock(result.AlertWorthy); block != "" {
		fmt.Println(block)
	}

	if len(result.Suggestions) > 0 {
		fmt.Println(output.Section(fmt.Sprintf("价值标注（%d）", len(result.Suggestions))))
		for _, s := range result.Suggestions {
			fmt.Println()
			fmt.Print(output.Suggestion(s))
		}
	}

	if len(result.Disciplines) > 0 {
		fmt.Println(output.Section(fmt.Sprintf("学科观察（%d）", len(result.Disciplines))))
		for _, r := range result.Disciplines {
			fmt.Println()
			fmt.Print(output.DisciplineRecord(r))
		}
	}

	if flagVerbose {
		for _, w := range result.Warnings {
			fmt.Fprintln(os.Stderr, output.StyleWarning.Render("warning: "+w))
		}
	}
}
