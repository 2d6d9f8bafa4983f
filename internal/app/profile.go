package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/echosense-labs/echosense/internal/output"
	"github.com/echosense-labs/echosense/internal/podcast"
	"github.com/echosense-labs/echosense/internal/profile"
)

var (
	profileFlagJSON  bool
	profileFlagReset bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or reset the accumulated creator profile",
	Long: `Profile shows the longitudinal creator profile: account style, audience,
and the discipline observations accumulated across runs. --reset restores
the installation default, discarding all accumulated history.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&profileFlagJSON, "json", false, "Output as JSON")
	profileCmd.Flags().BoolVar(&profileFlagReset, "reset", false, "Reset the profile to defaults")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if profileFlagReset {
		if err := db.ClearProfile(); err != nil {
			return fmt.Errorf("resetting profile: %w", err)
		}
		fmt.Println("Profile reset to defaults.")
		return nil
	}

	p, err := db.LoadProfile()
	if err != nil {
		return err
	}

	if profileFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Println(output.Section("创作者画像"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("账号风格"), p.Communication.AccountStyle)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("受众画像"), p.Communication.AudienceProfile)
	if len(p.Communication.ContentThemes) > 0 {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render("内容主题"), strings.Join(p.Communication.ContentThemes, "、"))
	}
	fmt.Printf(" %s %.1f%%\n", output.StyleLabel.Render("平均互动率"), p.Communication.AvgEngagement)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("风险承受"), string(p.Business.RiskTolerance))

	fmt.Println(output.Section(fmt.Sprintf("学科观察（共%d条）", p.RecordCount())))
	for _, d := range podcast.FixedDisciplines {
		records := profile.DedupByID(p.DisciplineHistory.For(d))
		if len(records) == 0 {
			continue
		}
		fmt.Printf("\n %s（%d）\n", output.StyleBold.Render(string(d)), len(records))
		for _, r := range records {
			fmt.Print(output.DisciplineRecord(r))
		}
	}
	for _, c := range p.CustomDisciplines {
		records := profile.DedupByID(c.Records)
		fmt.Printf("\n %s（%d，自定义）\n", output.StyleBold.Render(c.Name), len(records))
		for _, r := range records {
			fmt.Print(output.DisciplineRecord(r))
		}
	}
	if p.RecordCount() == 0 {
		fmt.Println(output.StyleMuted.Render(" 还没有积累任何观察。"))
	}
	return nil
}
