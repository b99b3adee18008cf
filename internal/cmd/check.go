package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deslibris/accessonix/cli/internal/config"
)

// CheckCmd returns the `accessonix check` command.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the processing service is reachable",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := cfg.NewClient()
			if err := client.Ping(); err != nil {
				return fmt.Errorf("service at %s: %w", client.BaseURL(), err)
			}
			fmt.Fprintf(c.OutOrStdout(), "service ok: %s\n", client.ProcessURL())
			return nil
		},
	}
}
