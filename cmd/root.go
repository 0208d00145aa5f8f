package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/chartfetch/internal/adapters/fetcher"
	"github.com/kamal-hamza/chartfetch/internal/adapters/storage"
	"github.com/kamal-hamza/chartfetch/internal/adapters/validator"
	"github.com/kamal-hamza/chartfetch/internal/core/domain"
	"github.com/kamal-hamza/chartfetch/internal/core/services"
	"github.com/kamal-hamza/chartfetch/pkg/config"
	"github.com/kamal-hamza/chartfetch/pkg/ui"
	"github.com/kamal-hamza/chartfetch/pkg/workspace"
)

var (
	// Global workspace and settings
	appWorkspace *workspace.Workspace
	appConfig    *config.Config

	// Services
	batchService  *services.BatchService
	artifactStore *storage.FileStore

	// Chart endpoint; only replaced in tests
	chartBaseURL = domain.BaseURL

	// Global flags
	configPathFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chartfetch",
	Short: "Download the 2020 global daily chart snapshots",
	Long: ui.StyleTitle.Render("chartfetch") + " - Chart Snapshot Downloader\n\n" +
		"Downloads the twelve monthly global daily chart CSV snapshots of 2020,\n" +
		"one after another, and saves each one as regional-global-daily-<date>.csv.\n\n" +
		"Running chartfetch without a subcommand is the same as 'chartfetch fetch'.",
	PersistentPreRunE: initializeApp,
	RunE:              runFetch,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to the config file (default: $XDG_CONFIG_HOME/chartfetch/config.yaml)")
	addFetchFlags(rootCmd)
}

// initializeApp loads settings and wires the batch service
func initializeApp(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	if configPathFlag != "" {
		ws.ConfigPath = configPathFlag
	}
	appWorkspace = ws

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	// Flags override the config file
	if err := applyFetchFlags(cmd, appConfig); err != nil {
		return err
	}

	ui.SetTheme(appConfig.ColorTheme)
	appWorkspace.SetOutputDir(appConfig.OutputDir)

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.Options{
		Timeout:      appConfig.Timeout(),
		MaxRedirects: appConfig.MaxRedirects,
	})
	artifactStore = storage.NewFileStore(appWorkspace)
	csvValidator := validator.NewCSVValidator()

	batchService = services.NewBatchServiceWithSource(httpFetcher, artifactStore, csvValidator, chartBaseURL, domain.Year)

	return nil
}

// getContext returns a context cancelled on Ctrl-C
func getContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
