package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/rfpdesk/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Smallest terminal the workspace lays out in.
const (
	minTermWidth  = 60
	minTermHeight = 16
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the interactive workspace",
	Long: `Open the interactive workspace: the session list on the left, the
current RFP, organization analysis, matches and prompt on the right.
Press ? inside for key bindings.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("rfpdesk start needs a terminal; use the subcommands for scripting")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < minTermWidth || h < minTermHeight) {
		return fmt.Errorf("terminal is %dx%d; rfpdesk needs at least %dx%d", w, h, minTermWidth, minTermHeight)
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := tui.OptionsFromConfig(e.cfg, e.cfg.Backend.URL)
	opts.Logger = e.logger

	e.logger.Info("workspace started", "backend", e.cfg.Backend.URL)
	app := tui.New(e.backend, opts)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
