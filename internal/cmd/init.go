package cmd

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deslibris/accessonix/cli/internal/config"
)

// RunInteractiveInit prompts for the service URL and download directory,
// then persists the config. Empty answers keep the current values.
func RunInteractiveInit(in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(in)

	serverURL := prompt(reader, out, "server url", cfg.ServerURL)
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url must be an http or https address")
	}
	cfg.ServerURL = strings.TrimRight(serverURL, "/")
	cfg.DownloadDir = prompt(reader, out, "download dir", cfg.DownloadDir)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label, current string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// InitCmd returns the `accessonix init` command.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Configure the processing service and download directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveInit(os.Stdin, os.Stdout)
		},
	}
}
