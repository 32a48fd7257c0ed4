package commands

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/display"
	"github.com/misha-mad/vercel-rpc-sub000/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show rpcgen version information",
		Long:  `Display version, build time, commit hash, and platform information for the rpcgen binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			info := version.Get()
			out := cmd.OutOrStdout()

			if jsonOutput {
				return display.Write(out, info, display.FormatJSON)
			}
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return cmd
}
