package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/chartfetch/internal/core/domain"
	"github.com/kamal-hamza/chartfetch/internal/core/services"
	"github.com/kamal-hamza/chartfetch/pkg/config"
	"github.com/kamal-hamza/chartfetch/pkg/ui"
)

var (
	fetchOutputDir   string
	fetchKeepGoing   bool
	fetchStatusCheck string
	fetchTimeout     time.Duration
	fetchNoProgress  bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download all twelve monthly chart snapshots",
	Long: `Download the global daily chart of the first day of every month of 2020.

Months are processed in order, one at a time. Each response body is written
verbatim to regional-global-daily-<date>.csv and then parsed as CSV. A month
whose body does not parse leaves no file behind.

By default the first failure stops the batch; --keep-going attempts every
month and reports all failures at the end.

Examples:
  chartfetch fetch
  chartfetch fetch -o ./charts
  chartfetch fetch --keep-going --status-check ignore`,
	RunE: runFetch,
}

func init() {
	addFetchFlags(fetchCmd)
}

// addFetchFlags registers the fetch flags; the root command shares them
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fetchOutputDir, "output", "o", "", "Directory to write the CSV files to")
	cmd.Flags().BoolVarP(&fetchKeepGoing, "keep-going", "k", false, "Attempt every month even after a failure")
	cmd.Flags().StringVar(&fetchStatusCheck, "status-check", config.StatusCheckStrict, "Non-2xx handling: strict or ignore")
	cmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "Per-request timeout in whole seconds")
	cmd.Flags().BoolVar(&fetchNoProgress, "no-progress", false, "Hide the progress bar")
}

// applyFetchFlags copies explicitly set flags over the loaded config
func applyFetchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Lookup("output") == nil {
		return nil
	}

	if flags.Changed("output") {
		cfg.OutputDir = fetchOutputDir
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = fetchKeepGoing
	}
	if flags.Changed("status-check") {
		if _, err := services.ParseStatusPolicy(fetchStatusCheck); err != nil {
			return err
		}
		cfg.StatusCheck = fetchStatusCheck
	}
	if flags.Changed("timeout") {
		if fetchTimeout < time.Second || fetchTimeout%time.Second != 0 {
			return fmt.Errorf("timeout must be a whole number of seconds, at least 1s, got %s", fetchTimeout)
		}
		cfg.TimeoutSeconds = int(fetchTimeout / time.Second)
	}
	if flags.Changed("no-progress") {
		cfg.ShowProgress = !fetchNoProgress
	}

	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := getContext()
	defer stop()

	policy, err := services.ParseStatusPolicy(appConfig.StatusCheck)
	if err != nil {
		return err
	}

	onFailure := "stop"
	if appConfig.KeepGoing {
		onFailure = "keep going"
	}

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Downloading %d global daily charts for %d...", domain.MonthsPerYear, domain.Year)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Output", appWorkspace.AbsOutputDir()))
	fmt.Println(ui.RenderKeyValue("Status check", string(policy)))
	fmt.Println(ui.RenderKeyValue("On failure", onFailure))
	fmt.Println(ui.RenderKeyValue("Timeout", appConfig.Timeout().String()))
	fmt.Println()

	progressChan := make(chan services.BatchProgress, domain.MonthsPerYear)
	resultChan := make(chan *domain.BatchResult, 1)
	errorChan := make(chan error, 1)

	go func() {
		req := services.BatchRequest{
			StatusPolicy: policy,
			KeepGoing:    appConfig.KeepGoing,
		}
		result, err := batchService.ExecuteWithProgress(ctx, req, progressChan)
		resultChan <- result
		errorChan <- err
	}()

	var bar *ui.ProgressBar
	if appConfig.ShowProgress {
		bar = ui.NewProgressBar(20)
	}

	for p := range progressChan {
		fmt.Println(formatProgressLine(p, bar))
	}

	result := <-resultChan
	runErr := <-errorChan

	fmt.Println()
	printSummary(result)

	if runErr != nil {
		fmt.Println(ui.FormatWarning("Interrupted"))
		return runErr
	}

	if err := result.Err(); err != nil {
		return fmt.Errorf("%d of %d months failed: %w", result.Failed, result.Total, err)
	}

	return nil
}

// formatProgressLine renders one finished month: its date, its file name and the outcome
func formatProgressLine(p services.BatchProgress, bar *ui.ProgressBar) string {
	r := p.Result
	counter := fmt.Sprintf("[%2d/%d]", p.Current, p.Total)

	var detail string
	switch r.Status {
	case domain.StatusOK:
		a := r.Artifact
		detail = fmt.Sprintf("HTTP %d, %s, %d rows, sha256:%s", a.StatusCode, ui.FormatBytes(a.Bytes), a.Rows, a.ShortDigest())
	case domain.StatusFailed:
		detail = fmt.Sprintf("%s: %v", r.Stage, r.Err)
	default:
		detail = "skipped"
	}
	status := ui.FormatOutcome(string(r.Status), detail)

	line := fmt.Sprintf("%s %s  %s  %s", counter, r.Target.Date, r.Target.Filename, status)
	if bar != nil {
		line = bar.Render(p.Current, p.Total) + " " + line
	}
	return line
}

func printSummary(result *domain.BatchResult) {
	if result.Failed == 0 && result.Skipped == 0 {
		fmt.Println(ui.FormatSuccess("All months downloaded!"))
	} else {
		fmt.Println(ui.FormatWarning("Batch finished with problems"))
	}
	fmt.Println()

	fmt.Println(ui.RenderKeyValue("Run", result.RunID))
	fmt.Println(ui.RenderKeyValue("Duration", result.Duration.Round(time.Millisecond).String()))
	fmt.Println(ui.RenderKeyValue("Total", fmt.Sprintf("%d", result.Total)))
	fmt.Println(ui.RenderKeyValue("Succeeded", ui.StyleSuccess.Render(fmt.Sprintf("%d", result.Succeeded))))
	if result.Failed > 0 {
		fmt.Println(ui.RenderKeyValue("Failed", ui.StyleError.Render(fmt.Sprintf("%d", result.Failed))))
	}
	if result.Skipped > 0 {
		fmt.Println(ui.RenderKeyValue("Skipped", ui.StyleWarning.Render(fmt.Sprintf("%d", result.Skipped))))
	}

	if artifacts := result.Artifacts(); len(artifacts) > 0 {
		fmt.Println()
		fmt.Print(artifactTable(artifacts).Render())
	}

	if result.Failed > 0 {
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed months:"))
		for _, r := range result.Results {
			if r.Failed() {
				fmt.Println(ui.FormatMuted(fmt.Sprintf("  • %s (%s): %v", r.Target.Date, r.Stage, r.Err)))
			}
		}
	}
}

// artifactTable lists what was written in this run
func artifactTable(artifacts []domain.Artifact) *ui.Table {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Date"},
		{Header: "Status", Align: "right"},
		{Header: "Size", Align: "right"},
		{Header: "Rows", Align: "right"},
		{Header: "Content type"},
		{Header: "SHA-256"},
		{Header: "Fetched"},
	})

	for _, a := range artifacts {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "-"
		}
		table.AddRow(
			a.Target.Date,
			fmt.Sprintf("%d", a.StatusCode),
			ui.FormatBytes(a.Bytes),
			fmt.Sprintf("%d", a.Rows),
			contentType,
			a.ShortDigest(),
			a.FetchedAt.Format("15:04:05"),
		)
	}

	return table
}
