package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/output"
	"github.com/echosense-labs/echosense/internal/podcast"
)

var (
	casesFlagJSON   bool
	casesFlagDomain string
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Browse the reference case library",
	Long: `Cases lists the reference case library that percentile claims are
grounded on. User-supplied override corpora stored in the database
replace the built-in set per domain.`,
	RunE: runCases,
}

func init() {
	casesCmd.Flags().BoolVar(&casesFlagJSON, "json", false, "Output as JSON")
	casesCmd.Flags().StringVar(&casesFlagDomain, "domain", "", "Only show one domain: commercial, viral, risk")

	rootCmd.AddCommand(casesCmd)
}

func runCases(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	overrides, err := db.LoadCaseOverrides()
	if err != nil {
		return err
	}
	library := cases.NewLibraryWithOverrides(overrides)

	domains := []podcast.Domain{podcast.DomainCommercial, podcast.DomainViral, podcast.DomainRisk}
	if casesFlagDomain != "" {
		d := podcast.Domain(casesFlagDomain)
		switch d {
		case podcast.DomainCommercial, podcast.DomainViral, podcast.DomainRisk:
			domains = []podcast.Domain{d}
		default:
			return fmt.Errorf("unknown domain %q", casesFlagDomain)
		}
	}

	if casesFlagJSON || flagJSON {
		byDomain := make(map[podcast.Domain][]podcast.ReferenceCase, len(domains))
		for _, d := range domains {
			byDomain[d] = library.Lookup(d)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(byDomain)
	}

	for _, d := range domains {
		entries := library.Lookup(d)
		fmt.Println(output.Section(fmt.Sprintf("%s（%d）", string(d), len(entries))))
		table := output.NewTable("ID", "AUDIENCE", "DESCRIPTION", "SOURCE")
		for _, c := range entries {
			table.AddRow(c.ID, c.AudienceSize, c.Description, c.Source)
		}
		fmt.Println()
		table.Print()
	}
	return nil
}
