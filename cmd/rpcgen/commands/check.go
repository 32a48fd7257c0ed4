package commands

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/codegen"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the types file is up to date",
		Long: `Generate in memory and compare the result with the file on disk.

Exits with an error when the file is missing or differs, which makes it
suitable for CI.

Examples:
  rpcgen check
  rpcgen check -o web/src/rpc.ts`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
	addCodegenFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, content, err := build(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	result, err := codegen.Check(cfg.OutputPath(), content)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up to date\n", pterm.Green("✓"), displayPath(result.Path))
	return nil
}
