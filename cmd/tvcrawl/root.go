package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dbytex91/tvcrawl/internal/config"
	"github.com/dbytex91/tvcrawl/internal/crawler"
	"github.com/dbytex91/tvcrawl/internal/logging"
)

type rootOptions struct {
	configPath string
	baseURL    string
	output     string
	iconsDir   string
	timeout    int
	summary    bool
	verbose    bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	return newRootCommandWithOptions(out, &rootOptions{})
}

func newRootCommandWithOptions(out io.Writer, opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tvcrawl",
		Short:         "Build an M3U playlist and icon set from a live TV listing site",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logging.Setup(cmd.OutOrStdout(), cmd.ErrOrStderr(), true)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			summary, err := crawler.New(cfg).Run(cmd.Context())
			if err != nil {
				return err
			}

			if opts.summary || isTerminal(out) {
				if table := renderSummary(summary); table != "" {
					fmt.Fprintln(out, table)
				}
			}

			return nil
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("TVCRAWL_CONFIG"), "Configuration file path (TOML)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Site hosting the live TV listing")
	flags.StringVarP(&opts.output, "output", "o", "", "Playlist file to write")
	flags.StringVar(&opts.iconsDir, "icons-dir", "", "Directory for channel icons")
	flags.IntVar(&opts.timeout, "timeout", 0, "Per-request timeout in seconds")
	flags.BoolVar(&opts.summary, "summary", false, "Print a summary table even when stdout is not a terminal")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every request")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// loadConfig layers command-line flags over the file and environment values.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("output") {
		cfg.PlaylistPath = opts.output
	}
	if flags.Changed("icons-dir") {
		cfg.IconsDir = opts.iconsDir
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
