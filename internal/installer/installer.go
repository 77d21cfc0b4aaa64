package installer

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"devenv/internal/catalog"
	"devenv/internal/template"
	"devenv/pkg/logging"
)

// Installer installs tools and reports progress on an event channel. All
// events of one Installer share a run ID.
type Installer struct {
	runID    string
	events   chan<- Event
	run      StreamRunner
	lookPath func(string) (string, error)
	engine   *template.Engine
	vars     map[string]interface{}
	shell    []string
}

// Option configures an Installer.
type Option func(*Installer)

// WithRunner replaces the command runner.
func WithRunner(run StreamRunner) Option {
	return func(i *Installer) {
		if run != nil {
			i.run = run
		}
	}
}

// WithLookPath replaces the PATH lookup used by CheckBrew.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(i *Installer) {
		if fn != nil {
			i.lookPath = fn
		}
	}
}

// WithTemplateVars replaces the host variables available to script commands.
func WithTemplateVars(vars map[string]interface{}) Option {
	return func(i *Installer) {
		i.vars = vars
	}
}

// New creates an Installer sending events to events. events may be nil, in
// which case progress is only logged.
func New(events chan<- Event, opts ...Option) *Installer {
	shell := []string{"sh", "-c"}
	if runtime.GOOS == "windows" {
		shell = []string{"cmd", "/C"}
	}
	i := &Installer{
		runID:    uuid.NewString(),
		events:   events,
		run:      ExecStreamRunner,
		lookPath: exec.LookPath,
		engine:   template.New(),
		vars:     template.HostContext(),
		shell:    shell,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// RunID returns the ID attached to every event of this Installer.
func (i *Installer) RunID() string {
	return i.runID
}

func (i *Installer) emit(ctx context.Context, e Event) {
	if i.events == nil {
		return
	}
	e.RunID = i.runID
	select {
	case i.events <- e:
	case <-ctx.Done():
	}
}

func (i *Installer) status(ctx context.Context, toolID, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.Debug("Installer", "%s: %s", toolID, msg)
	i.emit(ctx, Event{Type: EventStatus, ToolID: toolID, Message: msg})
}

func (i *Installer) fail(ctx context.Context, toolID string, err error) error {
	logging.Error("Installer", err, "Installation of %s failed", toolID)
	i.emit(ctx, Event{Type: EventError, ToolID: toolID, Message: err.Error()})
	return err
}

func (i *Installer) succeed(ctx context.Context, toolID, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.Info("Installer", "%s: %s", toolID, msg)
	i.emit(ctx, Event{Type: EventSuccess, ToolID: toolID, Message: msg})
}

func (i *Installer) runCommand(ctx context.Context, toolID, name string, args ...string) error {
	return i.run(ctx, func(line string) {
		i.emit(ctx, Event{Type: EventOutput, ToolID: toolID, Line: line})
	}, name, args...)
}

// CheckBrew returns ErrBrewNotFound unless brew is on PATH.
func (i *Installer) CheckBrew() error {
	if _, err := i.lookPath("brew"); err != nil {
		return ErrBrewNotFound
	}
	return nil
}

// InstalledCasks lists the Homebrew casks currently installed.
func (i *Installer) InstalledCasks(ctx context.Context) ([]string, error) {
	if err := i.CheckBrew(); err != nil {
		return nil, err
	}
	var casks []string
	err := i.run(ctx, func(line string) {
		casks = append(casks, strings.Fields(line)...)
	}, "brew", "list", "--cask")
	if err != nil {
		return nil, fmt.Errorf("failed to list installed casks: %w", err)
	}
	return casks, nil
}

// InstallBrewCask runs "brew install --cask <cask>".
func (i *Installer) InstallBrewCask(ctx context.Context, toolID, cask string) error {
	return i.installBrew(ctx, toolID, cask, true)
}

// InstallBrewFormula runs "brew install <formula>".
func (i *Installer) InstallBrewFormula(ctx context.Context, toolID, formula string) error {
	return i.installBrew(ctx, toolID, formula, false)
}

// InstallBrewTap runs "brew tap <tap>" and then installs pkg from it.
func (i *Installer) InstallBrewTap(ctx context.Context, toolID, tap, pkg string, isCask bool) error {
	if err := i.CheckBrew(); err != nil {
		return i.fail(ctx, toolID, err)
	}
	i.status(ctx, toolID, "Tapping %s...", tap)
	if err := i.runCommand(ctx, toolID, "brew", "tap", tap); err != nil {
		return i.fail(ctx, toolID, fmt.Errorf("failed to tap %s: %w", tap, err))
	}
	if err := ctx.Err(); err != nil {
		return i.fail(ctx, toolID, err)
	}
	return i.installBrew(ctx, toolID, pkg, isCask)
}

func (i *Installer) installBrew(ctx context.Context, toolID, pkg string, isCask bool) error {
	if err := i.CheckBrew(); err != nil {
		return i.fail(ctx, toolID, err)
	}

	args := []string{"install"}
	if isCask {
		args = append(args, "--cask")
	}
	args = append(args, pkg)

	i.status(ctx, toolID, "Installing %s via Homebrew...", pkg)
	if err := i.runCommand(ctx, toolID, "brew", args...); err != nil {
		return i.fail(ctx, toolID, err)
	}
	i.succeed(ctx, toolID, "Successfully installed %s", pkg)
	return nil
}

// InstallScript renders and runs commands one by one through the shell,
// stopping at the first failure.
func (i *Installer) InstallScript(ctx context.Context, toolID, toolName string, commands []string) error {
	rendered, err := i.engine.RenderAll(commands, template.MergeContexts(i.vars, template.ToolContext(toolID, toolName)))
	if err != nil {
		return i.fail(ctx, toolID, err)
	}

	for idx, command := range rendered {
		if err := ctx.Err(); err != nil {
			return i.fail(ctx, toolID, err)
		}
		i.status(ctx, toolID, "Executing command %d of %d...", idx+1, len(rendered))

		args := append(append([]string{}, i.shell[1:]...), command)
		if err := i.runCommand(ctx, toolID, i.shell[0], args...); err != nil {
			return i.fail(ctx, toolID, err)
		}
	}

	i.succeed(ctx, toolID, "Script installation completed successfully")
	return nil
}

// InstallTemplate installs t with its first supported install method.
func (i *Installer) InstallTemplate(ctx context.Context, t catalog.ToolTemplate) error {
	method, ok := t.PreferredInstallMethod()
	if !ok {
		return i.fail(ctx, t.ID, fmt.Errorf("%w for %s", ErrNoInstallMethod, t.ID))
	}

	switch method.Type {
	case catalog.MethodBrew:
		if method.BrewTap != "" {
			return i.InstallBrewTap(ctx, t.ID, method.BrewTap, method.BrewPackage(), method.IsCask())
		}
		if method.IsCask() {
			return i.InstallBrewCask(ctx, t.ID, method.BrewCaskName)
		}
		return i.InstallBrewFormula(ctx, t.ID, method.BrewFormulaName)
	default:
		return i.InstallScript(ctx, t.ID, t.Name, method.ScriptCommands)
	}
}
