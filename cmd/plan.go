package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
	"github.com/kamal-hamza/chartfetch/pkg/ui"
)

var planShowURLs bool

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:     "plan",
	Short:   "Show the downloads a fetch would perform",
	Aliases: []string{"ls"},
	Long: `List the twelve target descriptors (month, URL and file name)
without contacting the server, marking the months whose file is
already in the output directory.

Examples:
  chartfetch plan
  chartfetch plan --urls`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planShowURLs, "urls", false, "Include the download URL of each month")
}

func runPlan(cmd *cobra.Command, args []string) error {
	targets := batchService.Plan()

	downloaded, err := artifactStore.Downloaded()
	if err != nil {
		return err
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("Download plan for %d", domain.Year)))
	fmt.Println()

	columns := []ui.TableColumn{
		{Header: "Month", Align: "right"},
		{Header: "Date"},
		{Header: "File"},
		{Header: "On disk"},
	}
	if planShowURLs {
		columns = append(columns, ui.TableColumn{Header: "URL"})
	}

	table := ui.NewTable(columns)
	for _, t := range targets {
		onDisk := "-"
		if _, ok := downloaded[t.Date]; ok {
			onDisk = ui.IconSuccess
		}
		cells := []string{domain.MonthString(t.Month), t.Date, appWorkspace.ArtifactPath(t.Filename), onDisk}
		if planShowURLs {
			cells = append(cells, t.URL)
		}
		table.AddRow(cells...)
	}

	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d targets, %d already downloaded", len(targets), len(downloaded))))

	return nil
}
