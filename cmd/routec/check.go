package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/manifest"
)

// s3Flags override the s3 section of routec.json.
type s3Flags struct {
	region   string
	endpoint string
	bucket   string
	key      string
}

func (f *s3Flags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bucket, "s3-bucket", "", "Read the manifest from this S3 bucket")
	cmd.Flags().StringVar(&f.key, "s3-key", "", "Object key of the manifest in --s3-bucket")
	cmd.Flags().StringVar(&f.region, "s3-region", "", "S3 region (default from routec.json)")
	cmd.Flags().StringVar(&f.endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
}

func (f *s3Flags) apply(cfg *config.Config) {
	if f.bucket != "" {
		cfg.S3.Bucket = f.bucket
	}
	if f.key != "" {
		cfg.S3.Key = f.key
	}
	if f.region != "" {
		cfg.S3.Region = f.region
	}
	if f.endpoint != "" {
		cfg.S3.Endpoint = f.endpoint
	}
}

func checkCmd(opts *globalOptions) *cobra.Command {
	var (
		s3f    s3Flags
		format string
	)

	cmd := &cobra.Command{
		Use:   "check [manifest]",
		Short: "Compile every route of a manifest",
		Long: `Compile every route of a manifest and report all rejected matchers.

The manifest is a JSON or YAML document listing named routes:

  routes:
    - name: user
      matcher: /users/{id}!
      mode: named

Without an argument the manifest comes from routec.json, either the
"manifest" path or the "s3" object.

With --format=compact or --format=json each rejected route is printed to
stdout as one line, "file:line:col: CODE: message (detail)" or a JSON
object, and nothing else is printed on success.

Examples:
  routec check routes.yaml
  routec check --format=compact routes.yaml
  routec check --s3-bucket=my-routes --s3-key=prod/routes.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := errors.ParseStyle(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				// Arguments are relative to the working directory, not routec.json.
				path, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				cfg.Manifest = path
				cfg.S3.Bucket = ""
			}
			s3f.apply(cfg)

			return runCheck(cmd.Context(), cfg, style, os.Stdout)
		},
	}

	s3f.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Report format: text, compact or json")

	return cmd
}

// runCheck compiles the configured manifest. In the text style failures go
// to stderr with full context; compact and json write one line per failure
// to w.
func runCheck(ctx context.Context, cfg *config.Config, style errors.Style, w io.Writer) error {
	src, err := manifestSource(cfg)
	if err != nil {
		return err
	}
	if src == nil {
		return errors.New("M100").
			WithSuggestion("Pass a manifest path, --s3-bucket and --s3-key, or set \"manifest\" in routec.json")
	}

	table, err := manifest.Load(ctx, src, newCompiler(cfg), cfg.FieldMode())
	if err != nil {
		var cerr *manifest.CompileError
		if !stderrors.As(err, &cerr) {
			return err
		}
		if style == errors.StyleText {
			printCoded(os.Stderr, cerr.Coded(), style)
			errorMsg("%d of the routes in %s failed to compile", len(cerr.Failures), src.Name())
		} else {
			printCoded(w, cerr.Coded(), style)
		}
		return fmt.Errorf("%s: %d routes rejected", src.Name(), len(cerr.Failures))
	}

	if style != errors.StyleText {
		return nil
	}
	for _, r := range table.Routes() {
		info("%-20s %s", r.Name, r.Matcher)
	}
	success("%d routes compiled from %s", table.Len(), src.Name())
	return nil
}

func printCoded(w io.Writer, errs []*errors.Error, style errors.Style) {
	for _, e := range errs {
		errors.FprintStyle(w, e, style)
	}
}

// manifestSource picks the manifest location from the configuration. S3
// wins when a bucket is set. It returns nil when nothing is configured.
func manifestSource(cfg *config.Config) (manifest.Source, error) {
	if cfg.S3.Bucket != "" {
		if cfg.S3.Key == "" {
			return nil, errors.New("C100").
				WithDetail("s3.key must be set together with s3.bucket")
		}
		return manifest.S3Source{
			Client: manifest.NewS3Client(cfg.S3.Region, cfg.S3.Endpoint),
			Bucket: cfg.S3.Bucket,
			Key:    cfg.S3.Key,
		}, nil
	}
	if path := cfg.ManifestPath(); path != "" {
		return manifest.FileSource{Path: path}, nil
	}
	return nil, nil
}

// loadTable compiles the configured manifest, if any. A nil table means no
// manifest is configured.
func loadTable(ctx context.Context, cfg *config.Config, c *compiler.Compiler) (*manifest.Table, error) {
	src, err := manifestSource(cfg)
	if err != nil || src == nil {
		return nil, err
	}
	table, err := manifest.Load(ctx, src, c, cfg.FieldMode())
	if err != nil {
		var cerr *manifest.CompileError
		if stderrors.As(err, &cerr) {
			printCoded(os.Stderr, cerr.Coded(), errors.StyleText)
		}
		return nil, err
	}
	return table, nil
}
