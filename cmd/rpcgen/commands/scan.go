package commands

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/display"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Show the procedures and types found in the Rust sources",
		Long: `Scan the configured source directory and summarize what generate would emit.

Use --format to print the full manifest instead of the summary.

Examples:
  rpcgen scan
  rpcgen scan --format yaml
  rpcgen scan --dir crates/api --exclude '**/tests/**'`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "", "Print the manifest as json or yaml")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := display.ParseFormat(name)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	result, err := scanSources(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != display.FormatText {
		return display.Write(out, result.Manifest, format)
	}

	stats := result.Manifest.Stats()
	fmt.Fprintf(out, "Scanned %d files in %s\n", len(result.Files), displayPath(cfg.InputDir()))
	fmt.Fprintf(out, "  queries:   %d\n", stats.Queries)
	fmt.Fprintf(out, "  mutations: %d\n", stats.Mutations)
	fmt.Fprintf(out, "  records:   %d\n", stats.Records)
	fmt.Fprintf(out, "  sums:      %d\n", stats.Sums)
	if n := len(result.Diagnostics.Warnings()); n > 0 {
		fmt.Fprintf(out, "  warnings:  %d\n", n)
	}
	return nil
}
