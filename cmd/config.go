package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/chartfetch/pkg/config"
	"github.com/kamal-hamza/chartfetch/pkg/ui"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage the chartfetch configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appWorkspace.ConfigPath)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	RunE:  runConfigEdit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	source := appWorkspace.ConfigPath
	if _, err := os.Stat(source); os.IsNotExist(err) {
		source += " (not found, using defaults)"
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("File", source))
	fmt.Println(ui.RenderKeyValue("output_dir", appConfig.OutputDir))
	fmt.Println(ui.RenderKeyValue("timeout_seconds", strconv.Itoa(appConfig.TimeoutSeconds)))
	fmt.Println(ui.RenderKeyValue("max_redirects", strconv.Itoa(appConfig.MaxRedirects)))
	fmt.Println(ui.RenderKeyValue("status_check", appConfig.StatusCheck))
	fmt.Println(ui.RenderKeyValue("keep_going", strconv.FormatBool(appConfig.KeepGoing)))
	fmt.Println(ui.RenderKeyValue("show_progress", strconv.FormatBool(appConfig.ShowProgress)))
	fmt.Println(ui.RenderKeyValue("color_theme", appConfig.ColorTheme))

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Println(ui.FormatWarning("Config file already exists"))
		fmt.Println(ui.FormatMuted("Location: " + path))
		fmt.Println(ui.FormatInfo("Use --force to overwrite it"))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Config written to " + path))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := appWorkspace.ConfigPath

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s (run 'chartfetch config init' first)", path)
	}

	fmt.Println(ui.FormatInfo("Opening config: " + path))

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
