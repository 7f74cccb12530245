package main

import (
	"github.com/spf13/cobra"
	"igdebugger/pkg/ui"
	"igdebugger/pkg/web"
)

// serveCmd serves the panel as a web page
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query panel as a web page",
	Long: `Serve an HTML rendition of the query panel.

Every browser gets its own panel, remembered for the life of the process.
GET /api/fetch?username=<name>&endpoint=<endpoint> returns the upstream JSON
directly (502 with {"message": ...} when the fetch fails).`,
	Example: `  igdebugger serve
  igdebugger serve --addr :9000 --endpoint reels`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dispatcher := newDispatcher(cfg, log)
	handler, err := web.NewHandler(dispatcher, web.Options{
		DefaultEndpoint: defaultEndpoint(cfg),
		SessionLimit:    cfg.Server.SessionLimit,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	ui.Output = cmd.OutOrStdout()
	ui.PrintBanner()
	ui.PrintInfo("Listening", "http://"+cfg.Server.Addr)
	ui.PrintInfo("Proxy API", dispatcher.BaseURL())

	return web.ListenAndServe(cmd.Context(), cfg.Server.Addr, web.NewRouter(handler), log)
}
