package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"devenv/internal/catalog"
	"devenv/internal/cli"
	"devenv/internal/config"
	"devenv/internal/dependency"
	"devenv/internal/detection"
	"devenv/internal/installer"
	"devenv/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeUnknownTool indicates a tool ID that is not in the catalog.
	ExitCodeUnknownTool = 2
	// ExitCodeCircularDependency indicates that the requested tools depend on each other in a loop.
	ExitCodeCircularDependency = 3
	// ExitCodeInstallFailed indicates that installing a tool failed.
	ExitCodeInstallFailed = 4
)

var (
	flags cli.CommandFlags

	// detectorOptions is appended to the options built from config.yaml.
	// Tests use it to replace PATH lookups and version probes.
	detectorOptions []detection.Option
)

// rootCmd represents the base command for the devenv application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "devenv",
	Short: "Detect, inspect and install developer CLI tools",
	Long: `devenv knows a catalog of developer CLI tools (node, python, uv, nvim,
tmux, claude-code, ...) and the tools they depend on. It detects which of
them are installed, shows dependency trees, computes installation orders and
installs missing tools together with their dependencies.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.LevelWarn
		if flags.Debug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return cli.ValidateOutputFormat(flags.OutputFormat)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var unknown *dependency.UnknownToolError
	switch {
	case errors.As(err, &unknown), errors.Is(err, dependency.ErrUnknownTool):
		return ExitCodeUnknownTool
	case errors.Is(err, dependency.ErrCircularDependency):
		return ExitCodeCircularDependency
	case errors.Is(err, installer.ErrInstallFailed):
		return ExitCodeInstallFailed
	default:
		return ExitCodeError
	}
}

// environment bundles the collaborators most commands need.
type environment struct {
	configPath string
	config     config.Config
	store      *catalog.Store
	detector   *detection.Detector
	service    *dependency.Service
}

// loadEnvironment reads config.yaml and wires the catalog, detector and
// dependency service.
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	configPath, err := config.ResolveConfigPath(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if !flags.Debug && cfg.LogLevel != "" {
		if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			logging.InitForCLI(level, cmd.ErrOrStderr())
		}
	}

	store := catalog.NewStore(config.NewStorage(configPath))
	opts := append([]detection.Option{
		detection.WithWorkers(cfg.Detection.Workers),
		detection.WithTimeout(cfg.Detection.Timeout),
		detection.WithCaskLister(installer.New(nil).InstalledCasks),
	}, detectorOptions...)
	detector := detection.NewDetector(store, opts...)

	return &environment{
		configPath: configPath,
		config:     cfg,
		store:      store,
		detector:   detector,
		service:    dependency.NewService(store, detector, cfg.Dependencies.MaxTreeDepth),
	}, nil
}

// customTemplates returns the valid custom templates. Broken files are
// logged and skipped.
func (e *environment) customTemplates() ([]catalog.ToolTemplate, error) {
	customs, err := e.store.LoadCustom()
	var problems *config.ConfigurationErrorCollection
	if err != nil && !errors.As(err, &problems) {
		return nil, err
	}
	if problems != nil {
		for _, p := range problems.Errors {
			logging.Warn("Catalog", "Skipping custom template: %s", p.Error())
		}
	}
	if customs == nil {
		customs = []catalog.ToolTemplate{}
	}
	return customs, nil
}

// detectWithSpinner runs detection while showing a spinner on stderr.
func (e *environment) detectWithSpinner(ctx context.Context, cmd *cobra.Command, templates []catalog.ToolTemplate) ([]detection.Result, error) {
	stop := cli.StartSpinner(cmd.ErrOrStderr(), flags.Quiet || flags.Debug, fmt.Sprintf("Detecting %s...", cli.Plural(len(templates), "tool")))
	defer stop()
	return e.detector.Detect(ctx, templates)
}

func printer(cmd *cobra.Command) *cli.Printer {
	return flags.Printer(cmd.OutOrStdout())
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to register the shared flags and the subcommands.
func init() {
	cli.RegisterCommonFlags(rootCmd, &flags)
	rootCmd.SetVersionTemplate(`{{printf "devenv version %s\n" .Version}}`)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
