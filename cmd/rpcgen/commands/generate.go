package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/misha-mad/vercel-rpc-sub000/codegen"
	"github.com/misha-mad/vercel-rpc-sub000/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Write the TypeScript types file",
		Long: `Scan the Rust sources and write the TypeScript types file.

Nothing is written when scanning fails. An unchanged file is left untouched
so file watchers downstream do not fire.

Examples:
  rpcgen generate
  rpcgen generate -o web/src/rpc.ts --fields camelCase
  rpcgen generate --preserve-docs --branded-newtypes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return generate(cmd.Context(), cmd, cfg)
		},
	}
	addCodegenFlags(cmd)
	return cmd
}

// generate runs one full scan and write. watch calls it for every rebuild.
func generate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	result, content, err := build(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	path := cfg.OutputPath()
	changed, err := codegen.WriteFile(path, content)
	if err != nil {
		return err
	}

	detail := fmt.Sprintf("%d types, %s", result.Manifest.Stats().Types(), humanize.Bytes(uint64(len(content))))
	if !changed {
		detail += ", unchanged"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Generated %s (%s)\n", pterm.Green("✓"), displayPath(path), detail)
	return nil
}
