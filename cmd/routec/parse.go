package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

func parseCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <matcher>",
		Short: "Print the route tokens of a matcher",
		Long: `Parse a matcher and print one route token per line.

A rejected matcher is reported with the failing position and the tokens
that would have been accepted there.

Examples:
  routec parse '/users/{id}'
  routec parse --mode=named '/files/{*:path}!'
  routec parse --json '?sort={order}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := compileArg(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(route.Tokens)
			}
			for _, tok := range route.Tokens {
				info("%s", tok)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tokens as JSON")

	return cmd
}

func optimizeCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "optimize <matcher>",
		Short: "Print the matcher tokens of a matcher",
		Long: `Parse a matcher and merge its tokens into matcher tokens: runs of
literal text become a single exact token, captures are kept and a trailing
'!' becomes an end token.

Examples:
  routec optimize '/users/{id}/posts'
  routec optimize --json '/a?b={c}&d=e'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := compileArg(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(route.Matchers)
			}
			for _, tok := range route.Matchers {
				info("%s", tok)
			}
			success("%d tokens, %d matchers, %d captures", len(route.Tokens), len(route.Matchers), len(route.Captures()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matchers as JSON")

	return cmd
}

// compileArg compiles a matcher given on the command line. Rejections are
// printed with a caret under the failing character.
func compileArg(ctx context.Context, opts *globalOptions, matcher string) (*compiler.Route, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	route, err := newCompiler(cfg).Compile(ctx, matcher, cfg.FieldMode())
	if err != nil {
		var perr *routeparser.ParseError
		if stderrors.As(err, &perr) {
			return nil, errors.FromParseError(perr, "<argument>", 1)
		}
		return nil, err
	}
	return route, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
