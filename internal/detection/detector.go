package detection

import (
	"context"
	"maps"
	"os/exec"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"devenv/internal/catalog"
	"devenv/internal/dependency"
	"devenv/pkg/logging"
)

// DefaultTimeout bounds a single version probe.
const DefaultTimeout = 5 * time.Second

// TemplateSource supplies the merged tool templates to detect.
type TemplateSource interface {
	Templates() ([]catalog.ToolTemplate, error)
}

// Detector probes the machine for tools described by templates.
type Detector struct {
	source   TemplateSource
	workers  int
	timeout  time.Duration
	lookPath LookPathFunc
	run      CommandRunner
	casks    CaskLister
	now      func() time.Time

	group singleflight.Group
}

// Option configures a Detector.
type Option func(*Detector)

// WithWorkers sets how many tools are probed concurrently. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithTimeout bounds each version command. Values of zero or less are
// ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Detector) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLookPath replaces the PATH lookup.
func WithLookPath(fn LookPathFunc) Option {
	return func(d *Detector) {
		if fn != nil {
			d.lookPath = fn
		}
	}
}

// WithRunner replaces the command runner used for version probes.
func WithRunner(fn CommandRunner) Option {
	return func(d *Detector) {
		if fn != nil {
			d.run = fn
		}
	}
}

// WithCaskLister makes tools that are not on PATH count as installed when
// one of their Homebrew casks is. Apps such as AeroSpace or WezTerm are
// often installed as .app bundles without a command on PATH.
func WithCaskLister(fn CaskLister) Option {
	return func(d *Detector) {
		d.casks = fn
	}
}

// NewDetector creates a Detector reading templates from source. source may
// be nil when only Detect and DetectOne are used.
func NewDetector(source TemplateSource, opts ...Option) *Detector {
	d := &Detector{
		source:   source,
		workers:  runtime.NumCPU(),
		timeout:  DefaultTimeout,
		lookPath: exec.LookPath,
		run:      ExecRunner,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectOne probes a single template. It never fails: a tool that cannot be
// found is reported as not installed.
func (d *Detector) DetectOne(ctx context.Context, t catalog.ToolTemplate) Result {
	results := []Result{d.detectOne(ctx, t)}
	d.markCasks(ctx, []catalog.ToolTemplate{t}, results)
	return results[0]
}

func (d *Detector) detectOne(ctx context.Context, t catalog.ToolTemplate) Result {
	result := Result{
		TemplateID:  t.ID,
		ConfigFiles: make([]ConfigFileStatus, 0, len(t.ConfigFiles)),
		DetectedAt:  d.now().UTC(),
	}

	for _, cfg := range t.ConfigFiles {
		result.ConfigFiles = append(result.ConfigFiles, checkConfigFile(cfg.Path))
	}

	path, err := d.lookPath(t.Executable)
	if err != nil {
		logging.Debug("Detection", "%s not found on PATH: %v", t.Executable, err)
		return result
	}
	result.Installed = true
	result.ExecutablePath = path
	result.Version = d.probeVersion(ctx, path, t)

	return result
}

func (d *Detector) probeVersion(ctx context.Context, path string, t catalog.ToolTemplate) string {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	args := strings.Fields(t.EffectiveVersionCommand())
	stdout, stderr, err := d.run(ctx, path, args...)
	if err != nil && len(stdout) == 0 && len(stderr) == 0 {
		logging.Debug("Detection", "Version probe for %s failed: %v", t.ID, err)
		return ""
	}
	return ParseVersion(t.EffectiveVersionParser(), stdout, stderr)
}

// Detect probes all templates concurrently and returns the results sorted
// by template ID. It only fails when ctx is cancelled.
func (d *Detector) Detect(ctx context.Context, templates []catalog.ToolTemplate) ([]Result, error) {
	results := make([]Result, len(templates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, t := range templates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.detectOne(gctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Probes may have been cut short by cancellation after the last check.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.markCasks(ctx, templates, results)

	sort.Slice(results, func(i, j int) bool {
		return results[i].TemplateID < results[j].TemplateID
	})

	logging.Info("Detection", "Detected %d of %d tools installed", len(InstalledSet(results)), len(results))
	return results, nil
}

// markCasks marks results[i] installed when templates[i] was not found on
// PATH but one of its casks is installed. Casks are listed at most once.
func (d *Detector) markCasks(ctx context.Context, templates []catalog.ToolTemplate, results []Result) {
	if d.casks == nil {
		return
	}
	var installed map[string]bool
	for i, t := range templates {
		names := caskNames(t)
		if results[i].Installed || len(names) == 0 {
			continue
		}
		if installed == nil {
			list, err := d.casks(ctx)
			if err != nil {
				logging.Debug("Detection", "Cannot list Homebrew casks: %v", err)
				return
			}
			installed = make(map[string]bool, len(list))
			for _, name := range list {
				installed[name] = true
			}
		}
		for _, name := range names {
			if installed[name] {
				logging.Debug("Detection", "%s is installed as cask %s", t.ID, name)
				results[i].Installed = true
				break
			}
		}
	}
}

func caskNames(t catalog.ToolTemplate) []string {
	var names []string
	for _, m := range t.InstallMethods {
		if m.Type == catalog.MethodBrew && m.BrewCaskName != "" {
			names = append(names, path.Base(m.BrewCaskName))
		}
	}
	return names
}

// DetectAll detects every template from the source.
func (d *Detector) DetectAll(ctx context.Context) ([]Result, error) {
	templates, err := d.source.Templates()
	if err != nil {
		return nil, err
	}
	return d.Detect(ctx, templates)
}

// Installed implements dependency.InstalledProvider. Only templates known to
// c are probed. Concurrent callers asking about the same set of tools share
// one detection run; each caller still returns as soon as its own ctx is
// done.
func (d *Detector) Installed(ctx context.Context, c *dependency.Catalog) (dependency.InstalledSet, error) {
	ch := d.group.DoChan(installedKey(c), func() (interface{}, error) {
		// The run outlives any single caller.
		return d.installed(context.WithoutCancel(ctx), c)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return maps.Clone(res.Val.(dependency.InstalledSet)), nil
	}
}

func (d *Detector) installed(ctx context.Context, c *dependency.Catalog) (dependency.InstalledSet, error) {
	templates, err := d.source.Templates()
	if err != nil {
		return nil, err
	}

	wanted := make([]catalog.ToolTemplate, 0, len(templates))
	for _, t := range templates {
		if c.Has(t.ID) {
			wanted = append(wanted, t)
		}
	}

	results, err := d.Detect(ctx, wanted)
	if err != nil {
		return nil, err
	}
	return InstalledSet(results), nil
}

func installedKey(c *dependency.Catalog) string {
	defs := c.Definitions()
	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// InstalledSet collects the IDs of installed tools.
func InstalledSet(results []Result) dependency.InstalledSet {
	set := make(dependency.InstalledSet, len(results))
	for _, r := range results {
		if r.Installed {
			set[r.TemplateID] = struct{}{}
		}
	}
	return set
}
