package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/compiler"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	mode       string
	verbose    bool
	noColor    bool
}

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "routec",
		Short: "Parse, optimize and serve route matchers",
		Long: `routec compiles route matcher strings such as

  /users/{id}/posts/{*:rest}?sort={order}#{section}!

into matcher tokens and explains why a matcher is rejected.

Commands:
  • parse and optimize a single matcher
  • check a manifest of named routes (local file or S3)
  • init a routec.json and explain error codes
  • serve an HTTP/WebSocket playground with Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to routec.json (default: search upwards from the working directory)")
	flags.StringVarP(&opts.mode, "mode", "m", "", "Field mode, named or unnamed (default from routec.json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		parseCmd(&opts),
		optimizeCmd(&opts),
		checkCmd(&opts),
		serveCmd(&opts),
		initCmd(&opts),
		explainCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(*errors.Error); ok {
			errors.PrintError(err)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads routec.json, applies the global flags and installs the
// default logger.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if opts.noColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NoColor {
		noColor = true
		errors.DisableColors()
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

// newCompiler builds a compiler from the configuration.
func newCompiler(cfg *config.Config, extra ...compiler.Option) *compiler.Compiler {
	opts := append([]compiler.Option{
		compiler.WithLogger(slog.Default()),
		compiler.WithCacheSize(cfg.Compiler.CacheSize),
	}, extra...)
	return compiler.New(opts...)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", colorize("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", colorize("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize("\033[31m", "✗"), fmt.Sprintf(format, args...))
}

var noColor bool

func colorize(code, text string) string {
	if noColor {
		return text
	}
	return code + text + "\033[0m"
}
