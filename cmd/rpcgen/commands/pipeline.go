package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/misha-mad/vercel-rpc-sub000/codegen"
	"github.com/misha-mad/vercel-rpc-sub000/codegen/typescript"
	"github.com/misha-mad/vercel-rpc-sub000/config"
	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/display"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/misha-mad/vercel-rpc-sub000/parser"
	"github.com/spf13/cobra"
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "Rust source directory (overrides [input] dir)")
	cmd.Flags().StringSlice("include", nil, "Glob patterns selecting files, relative to the source directory")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns removing files from the selection")
}

func addCodegenFlags(cmd *cobra.Command) {
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Generated TypeScript file (overrides [output] types)")
	cmd.Flags().Bool("preserve-docs", false, "Emit Rust doc comments as JSDoc")
	cmd.Flags().Bool("branded-newtypes", false, "Emit newtype structs as branded types")
	cmd.Flags().String("fields", "", "Field naming policy: preserve or camelCase")
}

// overridesFromFlags collects only the flags the user actually set, so
// config file values survive unset flags.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("dir") {
		v, _ := flags.GetString("dir")
		o.InputDir = &v
	}
	if changed("output") {
		v, _ := flags.GetString("output")
		o.OutputTypes = &v
	}
	if changed("include") {
		o.Include, _ = flags.GetStringSlice("include")
	}
	if changed("exclude") {
		o.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if changed("preserve-docs") {
		v, _ := flags.GetBool("preserve-docs")
		o.PreserveDocs = &v
	}
	if changed("branded-newtypes") {
		v, _ := flags.GetBool("branded-newtypes")
		o.BrandedNewtypes = &v
	}
	if changed("fields") {
		v, _ := flags.GetString("fields")
		o.Fields = &v
	}
	return o
}

// loadConfig loads the configuration, reports unknown keys, applies flag
// overrides and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, warnings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	stderr := cmd.ErrOrStderr()
	printDiagnostics(stderr, warnings)

	if v := verbosity(cmd); logger.ShouldOutput(v, logger.OutputConfig) {
		fmt.Fprintf(stderr, "Verbosity: %s, showing %s\n",
			logger.LevelName(v), strings.Join(logger.VerboseCategories(v), ", "))
		if cfg.Path != "" {
			fmt.Fprintf(stderr, "Using config %s\n", cfg.Path)
		} else {
			fmt.Fprintf(stderr, "No %s found, using defaults\n", config.FileName)
		}
	}

	cfg.ApplyOverrides(overridesFromFlags(cmd))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scanSources runs the scanner over the configured input and prints its
// diagnostics.
func scanSources(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*parser.ScanResult, error) {
	start := time.Now()
	result, err := parser.Scan(ctx, parser.ScanOptions{
		Dir:     cfg.InputDir(),
		Include: cfg.Input.Include,
		Exclude: cfg.Input.Exclude,
	})
	if err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	v := verbosity(cmd)
	printDiagnostics(stderr, result.Diagnostics)
	if logger.ShouldOutput(v, logger.OutputFiles) {
		for _, f := range result.Files {
			fmt.Fprintf(stderr, "  scanned %s\n", displayPath(f))
		}
	}
	if logger.ShouldOutput(v, logger.OutputTiming) {
		fmt.Fprintf(stderr, "Scanned %d files in %s\n", len(result.Files), time.Since(start).Round(time.Millisecond))
	}
	if logger.ShouldOutput(v, logger.OutputManifestDump) {
		fmt.Fprintln(stderr, "---")
		if err := display.Write(stderr, result.Manifest, display.FormatYAML); err != nil {
			logger.Debugw("manifest dump failed", logger.FieldError, err)
		}
	}
	return result, nil
}

func newGenerator(cfg *config.Config) *typescript.Generator {
	return typescript.NewGenerator(typescript.Options{
		PreserveDocs:    cfg.Codegen.PreserveDocs,
		BrandedNewtypes: cfg.Codegen.BrandedNewtypes,
		FieldNaming:     cfg.FieldPolicy(),
		Overrides:       cfg.Overrides(),
	})
}

// build scans and renders in memory.
func build(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*parser.ScanResult, []byte, error) {
	result, err := scanSources(ctx, cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	content := codegen.Render(newGenerator(cfg), result.Manifest)
	if logger.ShouldOutput(verbosity(cmd), logger.OutputTiming) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %d bytes in %s\n", len(content), time.Since(start).Round(time.Millisecond))
	}
	return result, content, nil
}

// printDiagnostics writes each diagnostic on its own line, in color unless
// NO_COLOR is set.
func printDiagnostics(w io.Writer, diags diag.List) {
	color := os.Getenv("NO_COLOR") == ""
	for _, d := range diags {
		fmt.Fprintln(w, d.Format(color))
	}
}

// displayPath shortens path relative to the working directory when that
// does not climb out of it.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
