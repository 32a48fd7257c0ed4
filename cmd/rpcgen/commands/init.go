package commands

import (
	"fmt"

	"github.com/misha-mad/vercel-rpc-sub000/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Long: `Write a configuration file holding every default value.

The file goes to the working directory unless --config names another path.
An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.FileName
			}
			force, _ := cmd.Flags().GetBool("force")

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", pterm.Green("✓"), path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
