package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echosense-labs/echosense/internal/output"
	"github.com/echosense-labs/echosense/internal/podcast"
)

var (
	settingsFlagJSON       bool
	settingsFlagAlert      string
	settingsFlagPercentile int
	settingsFlagEnable     []string
	settingsFlagDisable    []string
	settingsFlagDepth      string
)

// validPercentiles are the coarse alert sensitivities with labeled bands.
var validPercentiles = map[int]bool{1: true, 5: true, 10: true, 20: true}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change alert and display settings",
	Long: `Settings shows the current configuration. Pass flags to change it:
--alert on|off, --percentile 1|5|10|20, --depth basic|standard|detailed,
and --enable/--disable for suggestion domains (commercial, viral, risk)
and discipline lenses (law, psychology, business, health, communication).`,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsFlagJSON, "json", false, "Output as JSON")
	settingsCmd.Flags().StringVar(&settingsFlagAlert, "alert", "", "Turn the critical-content alert on or off")
	settingsCmd.Flags().IntVar(&settingsFlagPercentile, "percentile", 0, "Alert sensitivity: 1, 5, 10, or 20")
	settingsCmd.Flags().StringSliceVar(&settingsFlagEnable, "enable", nil, "Enable a suggestion domain or discipline (repeatable)")
	settingsCmd.Flags().StringSliceVar(&settingsFlagDisable, "disable", nil, "Disable a suggestion domain or discipline (repeatable)")
	settingsCmd.Flags().StringVar(&settingsFlagDepth, "depth", "", "Analysis depth: basic, standard, or detailed")

	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.LoadSettings()
	if err != nil {
		return err
	}

	changed, err := applySettingsFlags(&s)
	if err != nil {
		return err
	}
	if changed {
		if err := db.SaveSettings(s); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}

	if settingsFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	renderSettings(s)
	return nil
}

func applySettingsFlags(s *podcast.UserSettings) (bool, error) {
	changed := false

	switch settingsFlagAlert {
	case "":
	case "on":
		s.AlertThreshold.Enabled = true
		changed = true
	case "off":
		s.AlertThreshold.Enabled = false
		changed = true
	default:
		return false, fmt.Errorf("--alert takes on or off, got %q", settingsFlagAlert)
	}

	if settingsFlagPercentile != 0 {
		if !validPercentiles[settingsFlagPercentile] {
			return false, fmt.Errorf("--percentile takes 1, 5, 10, or 20, got %d", settingsFlagPercentile)
		}
		s.AlertThreshold.Percentile = settingsFlagPercentile
		changed = true
	}

	switch settingsFlagDepth {
	case "":
	case string(podcast.DepthBasic), string(podcast.DepthStandard), string(podcast.DepthDetailed):
		s.AnalysisDepth = podcast.AnalysisDepth(settingsFlagDepth)
		changed = true
	default:
		return false, fmt.Errorf("--depth takes basic, standard, or detailed, got %q", settingsFlagDepth)
	}

	for _, name := range settingsFlagEnable {
		if err := setToggle(s, name, true); err != nil {
			return false, err
		}
		changed = true
	}
	for _, name := range settingsFlagDisable {
		if err := setToggle(s, name, false); err != nil {
			return false, err
		}
		changed = true
	}

	return changed, nil
}

// setToggle flips one suggestion-domain or discipline toggle by name.
func setToggle(s *podcast.UserSettings, name string, on bool) error {
	switch name {
	case string(podcast.DomainCommercial):
		s.SuggestionTypes.Commercial = on
	case string(podcast.DomainViral):
		s.SuggestionTypes.Viral = on
	case string(podcast.DomainRisk):
		s.SuggestionTypes.Risk = on
	case string(podcast.DisciplineLaw):
		s.Disciplines.Law = on
	case string(podcast.DisciplinePsychology):
		s.Disciplines.Psychology = on
	case string(podcast.DisciplineBusiness):
		s.Disciplines.Business = on
	case string(podcast.DisciplineHealth):
		s.Disciplines.Health = on
	case string(podcast.DisciplineCommunication):
		s.Disciplines.Communication = on
	default:
		return fmt.Errorf("unknown toggle %q", name)
	}
	return nil
}

func renderSettings(s podcast.UserSettings) {
	onOff := func(b bool) string {
		if b {
			return output.StyleSuccess.Render("on")
		}
		return output.StyleMuted.Render("off")
	}

	fmt.Println(output.Section("Alert"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("enabled"), onOff(s.AlertThreshold.Enabled))
	fmt.Printf(" %s top %d%%\n", output.StyleLabel.Render("sensitivity"), s.AlertThreshold.Percentile)

	fmt.Println(output.Section("Suggestion domains"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("commercial"), onOff(s.SuggestionTypes.Commercial))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("viral"), onOff(s.SuggestionTypes.Viral))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("risk"), onOff(s.SuggestionTypes.Risk))

	fmt.Println(output.Section("Discipline lenses"))
	for _, d := range podcast.FixedDisciplines {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(string(d)), onOff(s.Disciplines.Enabled(d)))
	}

	fmt.Println(output.Section("Analysis"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("depth"), string(s.AnalysisDepth))
}
