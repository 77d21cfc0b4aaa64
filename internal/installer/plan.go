package installer

import (
	"context"
	"fmt"

	"devenv/internal/catalog"
	"devenv/internal/dependency"
	"devenv/pkg/logging"
)

// Step is one tool of a Plan.
type Step struct {
	Template catalog.ToolTemplate
}

// Plan lists the tools to install in dependency order. Tools that are
// already installed are kept in Skipped.
type Plan struct {
	Steps   []Step
	Skipped []string
}

// ToolIDs returns the IDs of the tools that will be installed, in order.
func (p *Plan) ToolIDs() []string {
	ids := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		ids = append(ids, s.Template.ID)
	}
	return ids
}

// Empty reports whether nothing needs to be installed.
func (p *Plan) Empty() bool {
	return len(p.Steps) == 0
}

// NewPlan builds a Plan from a resolved installation order, as returned by
// dependency.Service.InstallPlan. Every tool to install must have a
// template with a supported install method.
func NewPlan(order []string, templates []catalog.ToolTemplate, installed dependency.InstalledSet) (*Plan, error) {
	p := &Plan{}
	for _, id := range order {
		if installed.Has(id) {
			p.Skipped = append(p.Skipped, id)
			continue
		}
		t, ok := catalog.Find(templates, id)
		if !ok {
			return nil, &dependency.UnknownToolError{ID: id}
		}
		if _, ok := t.PreferredInstallMethod(); !ok {
			return nil, fmt.Errorf("%w for %s", ErrNoInstallMethod, id)
		}
		p.Steps = append(p.Steps, Step{Template: t})
	}
	return p, nil
}

// Execute installs the plan's tools sequentially and stops at the first
// failure, which is returned as *InstallError. No step starts after ctx is
// done.
func (i *Installer) Execute(ctx context.Context, p *Plan) error {
	logging.Info("Installer", "Run %s: installing %v, skipping %v", i.runID, p.ToolIDs(), p.Skipped)

	for idx, step := range p.Steps {
		t := step.Template
		if err := ctx.Err(); err != nil {
			return &InstallError{ToolID: t.ID, Err: err}
		}
		i.status(ctx, t.ID, "Installing %s (%d of %d)...", t.Name, idx+1, len(p.Steps))
		if err := i.InstallTemplate(ctx, t); err != nil {
			return &InstallError{ToolID: t.ID, Err: err}
		}
	}
	return nil
}
