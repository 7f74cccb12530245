package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/render"
	"igdebugger/pkg/ui"
)

var rawOutput bool

// queryCmd runs one fetch sequence and prints the panel
var queryCmd = &cobra.Command{
	Use:   "query <username>",
	Short: "Fetch one endpoint and print the result",
	Long: `Run a single fetch against the proxy API and print the rendered panel:
the endpoint preview followed by the full JSON response.

The username may be a bare handle or a profile link. With --raw only the
upstream JSON is written to stdout, suitable for piping into other tools.
The exit code is non-zero when the fetch failed.`,
	Example: `  igdebugger query alice
  igdebugger query https://instagram.com/alice/ --endpoint stories
  igdebugger query alice -e reels --raw | jq '.reels | length'`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&rawOutput, "raw", false, "print only the response JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	state := panel.New(defaultEndpoint(cfg))
	state.EditInput(args[0])
	if !state.CanSubmit() {
		return fmt.Errorf("username must not be blank")
	}

	panel.Execute(cmd.Context(), state, newDispatcher(cfg, log), log)
	out := cmd.OutOrStdout()

	if rawOutput {
		if state.ErrorMessage != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), state.ErrorMessage)
			return errReported
		}
		fmt.Fprintln(out, string(state.Response))
		return nil
	}

	color := !noColor && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	if err := ui.WriteView(out, render.Build(state), color); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if state.ErrorMessage != "" {
		return errReported
	}
	return nil
}
