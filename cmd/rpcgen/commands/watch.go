package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/misha-mad/vercel-rpc-sub000/config"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/misha-mad/vercel-rpc-sub000/parser"
	"github.com/misha-mad/vercel-rpc-sub000/watch"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the types file whenever a Rust source changes",
		Long: `Generate once, then watch the source directory and regenerate after every
change. Changes are debounced by [watch] debounce_ms. Stop with Ctrl-C.

A failed rebuild is reported and watching continues.

Examples:
  rpcgen watch
  rpcgen watch -v --fields camelCase`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	addCodegenFlags(cmd)
	cmd.Flags().Bool("clear", false, "Clear the terminal before each rebuild (overrides [watch] clear_screen)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("clear") {
		cfg.Watch.ClearScreen, _ = cmd.Flags().GetBool("clear")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, cmd, cfg); err != nil {
		PrintError(cmd.ErrOrStderr(), err)
	}
	return watchSources(ctx, cmd, cfg)
}

// watchSources blocks until ctx is cancelled, regenerating on change.
func watchSources(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	v := verbosity(cmd)
	w, err := watch.New(watch.Options{
		Dir:         cfg.InputDir(),
		Matcher:     parser.NewMatcher(cfg.Input.Include, cfg.Input.Exclude),
		Debounce:    cfg.Debounce(),
		ClearScreen: cfg.Watch.ClearScreen,
		Out:         cmd.OutOrStdout(),
	}, func(ctx context.Context, changed []string) error {
		if logger.ShouldOutput(v, logger.OutputProgress) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Rebuilding after %d changed files\n", len(changed))
		}
		if err := generate(ctx, cmd, cfg); err != nil {
			PrintError(cmd.ErrOrStderr(), err)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Watching %s for changes\n", pterm.Cyan("●"), displayPath(cfg.InputDir()))
	return w.Run(ctx)
}
