package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
)

func initCmd(opts *globalOptions) *cobra.Command {
	var (
		manifestPath string
		port         int
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default routec.json",
		Long: `Write routec.json with the default settings into dir (default: the
working directory). The global --mode flag sets the default field mode.

Examples:
  routec init
  routec init --mode=named --manifest=routes.yaml
  routec init --force ./api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				noColor = true
				errors.DisableColors()
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg := config.New()
			if opts.mode != "" {
				cfg.Mode = opts.mode
			}
			cfg.Manifest = manifestPath
			if port != 0 {
				cfg.Serve.Port = port
			}

			if err := runInit(cfg, dir, force); err != nil {
				return err
			}
			success("Wrote %s", cfg.Path())
			if cfg.Manifest == "" {
				info("Set \"manifest\" or \"s3\" before running routec check")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest path, relative to dir")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Playground port (default 7070)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing routec.json")

	return cmd
}

// runInit validates cfg and writes it to dir/routec.json.
func runInit(cfg *config.Config, dir string, force bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if config.Exists(dir) && !force {
		return errors.New("C103").
			WithLocation(filepath.Join(dir, config.ConfigFileName), 1, 0).
			WithSuggestion("Pass --force to replace it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("C101").Wrap(err)
	}
	return cfg.SaveTo(filepath.Join(dir, config.ConfigFileName))
}
