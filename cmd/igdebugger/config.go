package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"igdebugger/pkg/config"
	"igdebugger/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage igdebugger configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (IGDEBUGGER_*)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created in the current directory as 'igdebugger.yaml' unless a
different path is given with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration from every source and check it.

This command checks:
  - YAML syntax
  - base URL, timeout and endpoint values
  - server and logging settings`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

const exampleConfig = `# igdebugger configuration file
#
# Environment variables override these values:
# IGDEBUGGER_BASE_URL, IGDEBUGGER_TIMEOUT, IGDEBUGGER_USER_AGENT,
# IGDEBUGGER_ENDPOINT, IGDEBUGGER_ADDR, IGDEBUGGER_LOG_LEVEL, IGDEBUGGER_LOG_FILE

# Proxy API
api:
  # Base URL of the proxy server
  base_url: "` + config.DefaultBaseURL + `"

  # Per-request timeout, e.g. 15s. 0 waits forever
  timeout: 0s

  # User-Agent header sent with every request
  user_agent: "igdebugger/1.0"

# Query panel
panel:
  # Endpoint selected on start: profile, stories or reels
  default_endpoint: "profile"

# Web page (igdebugger serve)
server:
  addr: "127.0.0.1:8080"

  # Number of browser panels kept in memory
  session_limit: 256

# Logging
logging:
  # debug, info, warn, error or disabled
  level: "info"

  # Write JSON logs to this file instead of the console
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	ui.Output = cmd.OutOrStdout()

	configPath := configFile
	if configPath == "" {
		configPath = "igdebugger.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Fprintf(ui.Output, "\nTo overwrite, first remove the existing file:\n  rm %s\n", configPath)
		return errReported
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(ui.Output, "\nNext steps:")
	fmt.Fprintln(ui.Output, "1. Point api.base_url at your proxy if it differs from the default")
	fmt.Fprintln(ui.Output, "2. Run 'igdebugger config validate' to check the configuration")
	fmt.Fprintln(ui.Output, "3. Start the panel with 'igdebugger' or 'igdebugger serve'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ui.Output = cmd.OutOrStdout()

	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	fmt.Fprint(ui.Output, string(data))

	path := configFile
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		path = "(none found)"
	}
	fmt.Fprintln(ui.Output)
	ui.PrintInfo("Configuration file", path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	ui.Output = cmd.OutOrStdout()

	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		ui.PrintError("Configuration validation failed", err)
		return errReported
	}

	var warnings []string
	if cfg.API.Timeout == 0 {
		warnings = append(warnings, "api.timeout is 0: a hung proxy call keeps the panel loading until cancelled")
	}
	if cfg.Logging.Level == "debug" && cfg.Logging.File == "" {
		warnings = append(warnings, "debug logs are discarded by the interactive panel unless logging.file is set")
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, w := range warnings {
			fmt.Fprintf(ui.Output, "  - %s\n", w)
		}
		fmt.Fprintln(ui.Output)
	}

	ui.PrintSuccess("Configuration is valid")
	fmt.Fprintln(ui.Output, "\nConfiguration summary:")
	fmt.Fprintf(ui.Output, "  Base URL: %s\n", cfg.API.BaseURL)
	fmt.Fprintf(ui.Output, "  Timeout: %s\n", cfg.API.Timeout)
	fmt.Fprintf(ui.Output, "  Default endpoint: %s\n", cfg.Panel.DefaultEndpoint)
	fmt.Fprintf(ui.Output, "  Server address: %s\n", cfg.Server.Addr)
	fmt.Fprintf(ui.Output, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
