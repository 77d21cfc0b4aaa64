package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"devenv/internal/cli"
	"devenv/internal/installer"
)

var (
	installYes     bool
	installDryRun  bool
	installVerbose bool

	// installerOptions is appended to the installer's options. Tests use it
	// to replace brew and shell commands.
	installerOptions []installer.Option
)

var installCmd = &cobra.Command{
	Use:   "install <tool-id>",
	Short: "Install a tool together with its missing dependencies",
	Long: `Install a tool and every dependency that is not installed yet, in
dependency order. Tools are installed with Homebrew or with the install
script of their template. Installation stops at the first failure.

Examples:
  devenv install claude-code
  devenv install uv --yes --verbose
  devenv install aerospace --dry-run -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Do not ask for confirmation")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Only print what would be installed")
	installCmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "Print the output of install commands")
	rootCmd.AddCommand(installCmd)
}

// planOutput is the structured output of "devenv install --dry-run".
type planOutput struct {
	Target  string   `json:"target" yaml:"target"`
	Order   []string `json:"order" yaml:"order"`
	Install []string `json:"install" yaml:"install"`
	Skipped []string `json:"skipped" yaml:"skipped"`
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]

	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	order, c, err := env.service.InstallPlan(ctx, target)
	if err != nil {
		return err
	}

	stop := cli.StartSpinner(cmd.ErrOrStderr(), flags.Quiet || flags.Debug, "Detecting installed tools...")
	installed, err := env.detector.Installed(ctx, c)
	stop()
	if err != nil {
		return err
	}

	templates, err := env.store.Templates()
	if err != nil {
		return err
	}
	plan, err := installer.NewPlan(order, templates, installed)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if p.Structured() {
		if !installDryRun && !installYes {
			return errors.New("structured output requires --dry-run or --yes")
		}
		if installDryRun {
			return p.PrintData(planOutput{
				Target:  target,
				Order:   order,
				Install: nonNil(plan.ToolIDs()),
				Skipped: nonNil(plan.Skipped),
			})
		}
	}

	if plan.Empty() {
		p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("%s and its dependencies are already installed", target)))
		return nil
	}

	p.Infof("Installing %s: %s", cli.Plural(len(plan.Steps), "tool"), strings.Join(plan.ToolIDs(), " -> "))
	if len(plan.Skipped) > 0 {
		p.Infof("Already installed: %s", strings.Join(plan.Skipped, ", "))
	}
	if installDryRun {
		return nil
	}

	if !installYes {
		ok, err := cli.Confirm("Continue?", io.NopCloser(cmd.InOrStdin()), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !ok {
			p.Infof("Installation cancelled")
			return nil
		}
	}

	events := make(chan installer.Event, 64)
	progress := cli.NewInstallProgress(cmd.ErrOrStderr(), flags.Quiet, installVerbose || flags.Debug)
	done := make(chan struct{})
	go func() {
		progress.Run(events)
		close(done)
	}()

	inst := installer.New(events, installerOptions...)
	err = inst.Execute(ctx, plan)
	close(events)
	<-done
	if err != nil {
		return err
	}

	p.Infof("%s", cli.FormatSuccess(fmt.Sprintf("Installed %s", cli.Plural(len(plan.Steps), "tool"))))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
