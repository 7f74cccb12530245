package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"igdebugger/pkg/config"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/proxyapi"
	"igdebugger/pkg/ui"
	"igdebugger/pkg/ui/tui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFile    string
	baseURL    string
	endpoint   string
	timeout    time.Duration
	noColor    bool
)

// errReported marks a failure that has already been shown to the user
var errReported = stderrors.New("reported")

// rootCmd runs the interactive panel when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "igdebugger [username]",
	Short: "Query panel for exploring the Instagram proxy API",
	Long: `igdebugger is a debugging panel for the Instagram proxy API.

Type a username or profile link, pick an endpoint (profile, stories, reels)
and inspect the JSON the proxy returns, with thumbnail previews.

Presentations:
  - interactive terminal panel (default)
  - one-shot query printed to stdout (igdebugger query)
  - web page (igdebugger serve)`,
	Example: `  # Open the panel
  igdebugger

  # Open the panel and immediately fetch reels for a profile link
  igdebugger -e reels https://instagram.com/alice/`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPanel,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !stderrors.Is(err, errReported) {
			ui.Output = os.Stderr
			ui.PrintError("Error", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./igdebugger.yaml or $HOME/.config/igdebugger/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "proxy API base URL")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "endpoint to query: profile, stories or reels")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout, 0 waits forever")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate(`igdebugger {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// commandFlags collects the global flags the user actually set
func commandFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	set := func(name string, value interface{}) {
		if cmd.Flags().Changed(name) {
			flags[name] = value
		}
	}
	set("base-url", baseURL)
	set("timeout", timeout)
	set("endpoint", endpoint)
	set("log-level", logLevel)
	set("log-file", logFile)
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		flags["addr"] = f.Value.String()
	}
	return flags
}

// loadRuntime loads configuration and sets up the process logger. Console
// logs go to console; pass io.Discard while a full-screen UI owns the terminal.
func loadRuntime(cmd *cobra.Command, console io.Writer) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile, commandFlags(cmd))
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Initialize(&cfg.Logging, console); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger().WithField("command", cmd.Name())
	log.DebugWithFields("configuration loaded", map[string]interface{}{
		"base_url": cfg.API.BaseURL,
		"endpoint": cfg.Panel.DefaultEndpoint,
		"timeout":  cfg.API.Timeout,
	})
	return cfg, log, nil
}

func newDispatcher(cfg *config.Config, log logger.Logger) *proxyapi.Dispatcher {
	client := proxyapi.NewClient(cfg.API.Timeout, cfg.API.UserAgent, log)
	return proxyapi.NewDispatcher(client, cfg.API.BaseURL, log)
}

func defaultEndpoint(cfg *config.Config) proxyapi.Endpoint {
	// Validate already rejected unknown names
	ep, _ := proxyapi.ParseEndpoint(cfg.Panel.DefaultEndpoint)
	return ep
}

func runPanel(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive panel needs a terminal; use 'igdebugger query <username>' instead")
	}

	cfg, log, err := loadRuntime(cmd, io.Discard)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Endpoint: defaultEndpoint(cfg),
		Logger:   log,
	}
	if len(args) == 1 {
		opts.Input = args[0]
		opts.AutoRun = true
	}

	log.Info("starting interactive panel")
	return tui.Run(cmd.Context(), newDispatcher(cfg, log), opts)
}
