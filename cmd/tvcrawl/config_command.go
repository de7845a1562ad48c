package main

import (
	"github.com/spf13/cobra"

	"github.com/dbytex91/tvcrawl/internal/static"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Print a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(static.SampleConfig())
			return err
		},
	})

	return configCmd
}
