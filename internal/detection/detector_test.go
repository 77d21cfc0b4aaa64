package detection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devenv/internal/catalog"
	"devenv/internal/dependency"
)

type fakeSource struct {
	templates []catalog.ToolTemplate
	err       error
	calls     atomic.Int32
}

func (f *fakeSource) Templates() ([]catalog.ToolTemplate, error) {
	f.calls.Add(1)
	return f.templates, f.err
}

// fakePath resolves only the given executables.
func fakePath(executables ...string) LookPathFunc {
	known := map[string]bool{}
	for _, e := range executables {
		known[e] = true
	}
	return func(file string) (string, error) {
		if known[file] {
			return "/usr/local/bin/" + file, nil
		}
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
	}
}

// fakeRunner prints "<name> 1.2.3" for every command.
func fakeRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return []byte(name + " 1.2.3\n"), nil, nil
}

func tmpl(id string, deps ...string) catalog.ToolTemplate {
	return catalog.ToolTemplate{ID: id, Name: id, Executable: id, Dependencies: deps}
}

func TestDetectOne(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var gotArgs []string
	d := NewDetector(nil,
		WithLookPath(fakePath("tmux")),
		WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			gotArgs = args
			return []byte("tmux 3.4\n"), nil, nil
		}),
	)
	d.now = func() time.Time { return fixed }

	tmux := tmpl("tmux")
	tmux.VersionCommand = "-V"
	tmux.ConfigFiles = []catalog.ConfigFileLocation{{Path: "~/.tmux.conf"}}

	result := d.DetectOne(context.Background(), tmux)
	assert.Equal(t, Result{
		TemplateID:     "tmux",
		Installed:      true,
		Version:        "3.4",
		ExecutablePath: "/usr/local/bin/tmux",
		ConfigFiles:    []ConfigFileStatus{{Path: "~/.tmux.conf"}},
		DetectedAt:     fixed,
	}, result)
	assert.Equal(t, []string{"-V"}, gotArgs)
}

func TestDetectOne_NotInstalled(t *testing.T) {
	ran := false
	d := NewDetector(nil,
		WithLookPath(fakePath()),
		WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			ran = true
			return nil, nil, nil
		}),
	)

	result := d.DetectOne(context.Background(), tmpl("fish"))
	assert.False(t, result.Installed)
	assert.Empty(t, result.Version)
	assert.Empty(t, result.ExecutablePath)
	assert.NotNil(t, result.ConfigFiles)
	assert.False(t, ran, "version probe must not run for a missing executable")
}

func TestDetectOne_VersionProbe(t *testing.T) {
	t.Run("non-zero exit with output keeps the version", func(t *testing.T) {
		d := NewDetector(nil, WithLookPath(fakePath("uv")),
			WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
				return []byte("uv 0.4.0\n"), nil, errors.New("exit status 2")
			}))
		assert.Equal(t, "0.4.0", d.DetectOne(context.Background(), tmpl("uv")).Version)
	})

	t.Run("failure without output leaves the version empty", func(t *testing.T) {
		d := NewDetector(nil, WithLookPath(fakePath("uv")),
			WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
				return nil, nil, errors.New("permission denied")
			}))
		result := d.DetectOne(context.Background(), tmpl("uv"))
		assert.True(t, result.Installed)
		assert.Empty(t, result.Version)
	})

	t.Run("probe is bounded by the timeout", func(t *testing.T) {
		d := NewDetector(nil, WithLookPath(fakePath("slow")), WithTimeout(10*time.Millisecond),
			WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
				<-ctx.Done()
				return nil, nil, ctx.Err()
			}))
		result := d.DetectOne(context.Background(), tmpl("slow"))
		assert.True(t, result.Installed)
		assert.Empty(t, result.Version)
	})
}

func TestDetect_SortedAndConcurrent(t *testing.T) {
	var inFlight, peak atomic.Int32
	d := NewDetector(nil,
		WithWorkers(2),
		WithLookPath(fakePath("b", "c")),
		WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return []byte("1.0\n"), nil, nil
		}),
	)

	results, err := d.Detect(context.Background(), []catalog.ToolTemplate{tmpl("c"), tmpl("a"), tmpl("b")})
	require.NoError(t, err)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.TemplateID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, dependency.NewInstalledSet("b", "c"), InstalledSet(results))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDetect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDetector(nil, WithLookPath(fakePath("a")), WithRunner(fakeRunner))
	_, err := d.Detect(ctx, []catalog.ToolTemplate{tmpl("a")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectAll(t *testing.T) {
	source := &fakeSource{templates: []catalog.ToolTemplate{tmpl("node"), tmpl("n", "node")}}
	d := NewDetector(source, WithLookPath(fakePath("node")), WithRunner(fakeRunner))

	results, err := d.DetectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "n", results[0].TemplateID)
	assert.False(t, results[0].Installed)
	assert.Equal(t, "1.2.3", results[1].Version)

	source.err = errors.New("broken store")
	_, err = d.DetectAll(context.Background())
	assert.EqualError(t, err, "broken store")
}

func TestInstalled(t *testing.T) {
	source := &fakeSource{templates: []catalog.ToolTemplate{tmpl("node"), tmpl("n", "node"), tmpl("extra")}}
	d := NewDetector(source, WithLookPath(fakePath("node", "extra")), WithRunner(fakeRunner))

	c := dependency.NewCatalog([]dependency.Definition{
		{ID: "node", Name: "node"},
		{ID: "n", Name: "n", Dependencies: []string{"node"}},
	})

	set, err := d.Installed(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, dependency.NewInstalledSet("node"), set)
}

// blockingRunner holds every version probe until release is closed and
// signals entered on the first probe.
func blockingRunner(entered, release chan struct{}) CommandRunner {
	var once sync.Once
	return func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		once.Do(func() { close(entered) })
		<-release
		return []byte("1.0.0\n"), nil, nil
	}
}

func TestInstalled_SharedAcrossConcurrentCallers(t *testing.T) {
	source := &fakeSource{templates: []catalog.ToolTemplate{tmpl("node")}}
	entered, release := make(chan struct{}), make(chan struct{})
	d := NewDetector(source, WithLookPath(fakePath("node")), WithRunner(blockingRunner(entered, release)))
	c := dependency.NewCatalog([]dependency.Definition{{ID: "node", Name: "Node.js"}})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := d.Installed(context.Background(), c)
			assert.NoError(t, err)
			assert.True(t, set.Has("node"))
		}()
	}
	<-entered
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestInstalled_DifferentCatalogsAreNotShared(t *testing.T) {
	source := &fakeSource{templates: []catalog.ToolTemplate{tmpl("fish"), tmpl("tmux")}}
	entered, release := make(chan struct{}), make(chan struct{})
	d := NewDetector(source, WithLookPath(fakePath("fish", "tmux")), WithRunner(blockingRunner(entered, release)))

	type outcome struct {
		set dependency.InstalledSet
		err error
	}
	installed := func(id string) <-chan outcome {
		out := make(chan outcome, 1)
		c := dependency.NewCatalog([]dependency.Definition{{ID: id, Name: id}})
		go func() {
			set, err := d.Installed(context.Background(), c)
			out <- outcome{set, err}
		}()
		return out
	}

	fish := installed("fish")
	<-entered
	tmux := installed("tmux")
	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-fish
	require.NoError(t, got.err)
	assert.Equal(t, dependency.NewInstalledSet("fish"), got.set)

	got = <-tmux
	require.NoError(t, got.err)
	assert.Equal(t, dependency.NewInstalledSet("tmux"), got.set)
}

func TestInstalled_CancelledCallerDoesNotFailOthers(t *testing.T) {
	source := &fakeSource{templates: []catalog.ToolTemplate{tmpl("nvim")}}
	entered, release := make(chan struct{}), make(chan struct{})
	d := NewDetector(source, WithLookPath(fakePath("nvim")), WithRunner(blockingRunner(entered, release)))
	c := dependency.NewCatalog([]dependency.Definition{{ID: "nvim", Name: "Neovim"}})

	impatient, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	impatientErr := make(chan error, 1)
	go func() {
		_, err := d.Installed(impatient, c)
		impatientErr <- err
	}()
	<-entered

	patient := make(chan dependency.InstalledSet, 1)
	go func() {
		set, err := d.Installed(context.Background(), c)
		assert.NoError(t, err)
		patient <- set
	}()

	select {
	case err := <-impatientErr:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return while detection was still running")
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	assert.Equal(t, dependency.NewInstalledSet("nvim"), <-patient)
	assert.Equal(t, int32(1), source.calls.Load())
}

func caskTmpl(id, cask string) catalog.ToolTemplate {
	t := tmpl(id)
	t.InstallMethods = []catalog.InstallMethod{{Type: catalog.MethodBrew, BrewCaskName: cask}}
	return t
}

func TestDetect_CaskInstalledWithoutCommandOnPath(t *testing.T) {
	var listed atomic.Int32
	d := NewDetector(nil,
		WithLookPath(fakePath("tmux")),
		WithRunner(fakeRunner),
		WithCaskLister(func(context.Context) ([]string, error) {
			listed.Add(1)
			return []string{"wezterm", "nikitabobko/tap/unused"}, nil
		}),
	)

	results, err := d.Detect(context.Background(), []catalog.ToolTemplate{
		tmpl("tmux"),
		caskTmpl("wezterm", "wezterm"),
		caskTmpl("aerospace", "nikitabobko/tap/aerospace"),
		tmpl("fish"),
	})
	require.NoError(t, err)

	assert.Equal(t, dependency.NewInstalledSet("tmux", "wezterm"), InstalledSet(results))
	assert.Equal(t, int32(1), listed.Load())
	for _, r := range results {
		if r.TemplateID == "wezterm" {
			assert.Empty(t, r.ExecutablePath)
			assert.Empty(t, r.Version)
		}
	}
}

func TestDetect_CasksNotListedWhenNotNeeded(t *testing.T) {
	d := NewDetector(nil,
		WithLookPath(fakePath("wezterm")),
		WithRunner(fakeRunner),
		WithCaskLister(func(context.Context) ([]string, error) {
			t.Error("casks listed although every cask tool is on PATH")
			return nil, nil
		}),
	)

	results, err := d.Detect(context.Background(), []catalog.ToolTemplate{caskTmpl("wezterm", "wezterm"), tmpl("fish")})
	require.NoError(t, err)
	assert.Equal(t, dependency.NewInstalledSet("wezterm"), InstalledSet(results))
}

func TestDetectOne_CaskListerFailureIsIgnored(t *testing.T) {
	d := NewDetector(nil,
		WithLookPath(fakePath()),
		WithCaskLister(func(context.Context) ([]string, error) {
			return nil, errors.New("brew not found")
		}),
	)

	result := d.DetectOne(context.Background(), caskTmpl("wezterm", "wezterm"))
	assert.False(t, result.Installed)
}
