// Package commands implements the rpcgen command tree.
package commands

import (
	"fmt"
	"io"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the rpcgen command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpcgen",
		Short: "rpcgen - TypeScript types for Rust RPC handlers",
		Long: `rpcgen reads Rust sources annotated with #[rpc_query] and #[rpc_mutation],
collects the structs and enums they use, and writes a TypeScript module with
matching types and a Procedures map.

Available commands:
  scan      - Show what would be generated
  generate  - Write the TypeScript types file
  check     - Fail if the types file is out of date
  watch     - Regenerate on every source change
  init      - Write a default rpc.config.toml
  version   - Show version information

Examples:
  rpcgen init                      # Create rpc.config.toml
  rpcgen generate                  # Write src/lib/rpc-types.ts
  rpcgen generate -o web/rpc.ts    # Write somewhere else
  rpcgen check                     # Use in CI
  rpcgen watch -v                  # Rebuild on change`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			jsonLog, _ := cmd.Flags().GetBool("json-log")
			if err := logger.Initialize(jsonLog, verbosity(cmd)); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().String("config", "", "Path to rpc.config.toml (default: search upward from the working directory)")
	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json-log", false, "Emit logs as JSON")

	root.AddCommand(newScanCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// PrintError writes err and any hints attached to it.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", pterm.Red("Error:"), err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  %s %s\n", pterm.Green("hint:"), hint)
	}
}

func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}
