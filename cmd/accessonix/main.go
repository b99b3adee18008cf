package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deslibris/accessonix/cli/internal/cmd"
	"github.com/deslibris/accessonix/cli/internal/config"
	"github.com/deslibris/accessonix/cli/internal/logging"
	"github.com/deslibris/accessonix/cli/internal/submit"
	"github.com/deslibris/accessonix/cli/internal/ui"
)

var errNotInteractive = errors.New("the form needs an interactive terminal; use 'accessonix submit' instead")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "accessonix",
		Short: "AccessONIX - EPUB accessibility metadata for ONIX",
		Long:  "AccessONIX CLI: send an EPUB and its ONIX record to the processing service and save the enriched ONIX file.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.InitCmd())
	root.AddCommand(cmd.SubmitCmd())
	root.AddCommand(cmd.CheckCmd())
	root.AddCommand(cmd.ConfigCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, cmd.ErrSubmissionFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errNotInteractive
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closer, err := logging.NewFile(cfg.LogPath(), logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer closer.Close()

	client := cfg.NewClient()
	controller := submit.New(client, submit.DirSaver{Dir: cfg.DownloadDir}, submit.WithLogger(logger))
	app := ui.NewApp(client, cfg, controller, logger)

	logger.Info("starting form", "service", client.ProcessURL(), "download_dir", cfg.DownloadDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
