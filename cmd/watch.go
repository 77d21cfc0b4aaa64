package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"devenv/internal/cli"
	"devenv/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [tool-id...]",
	Short: "Re-check the catalog whenever custom templates or settings change",
	Long: `Watch the custom template directory and config.yaml. After every
change the catalog is reloaded and the installation order of the given
tools, or of the whole catalog, is resolved again so that broken
dependencies and cycles show up while editing templates.

Examples:
  devenv watch
  devenv watch claude-code codex`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	check := func() {
		checkCatalog(ctx, out, env, args)
	}
	check()

	w := watch.NewWatcher(env.configPath, env.store.Dir(), 0)
	changes := make(chan watch.ChangeEvent, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, changes)
	}()

	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", env.configPath)
	for {
		select {
		case err := <-errCh:
			return err
		case change := <-changes:
			fmt.Fprintf(out, "\n%s %s %s %s\n", change.Timestamp.Format("15:04:05"), change.Kind, change.Name, change.Operation)
			check()
		}
	}
}

// checkCatalog resolves ids, or every catalog tool when ids is empty, and
// prints the outcome.
func checkCatalog(ctx context.Context, out io.Writer, env *environment, ids []string) {
	if len(ids) == 0 {
		templates, err := env.store.Templates()
		if err != nil {
			fmt.Fprintln(out, cli.FormatError(err))
			return
		}
		for _, t := range templates {
			ids = append(ids, t.ID)
		}
	}
	order, err := env.service.ResolveInstallationOrder(ctx, ids)
	if err != nil {
		fmt.Fprintln(out, cli.FormatError(err))
		return
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s resolve: %s", cli.Plural(len(order), "tool"), strings.Join(order, " -> "))))
}
