package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deslibris/accessonix/cli/internal/config"
)

// ConfigCmd returns the `accessonix config` command.
func ConfigCmd() *cobra.Command {
	var showPath bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(c *cobra.Command, _ []string) error {
			out := c.OutOrStdout()
			if showPath {
				fmt.Fprintln(out, config.Path())
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path only")
	return cmd
}
