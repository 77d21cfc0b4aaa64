package dependency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolCatalog() *Catalog {
	return NewCatalog([]Definition{
		{ID: "node", Name: "Node.js"},
		{ID: "python", Name: "Python"},
		{ID: "uv", Name: "uv", Dependencies: []string{"python"}},
		{ID: "n", Name: "n", Dependencies: []string{"node"}},
		{ID: "codex", Name: "Codex CLI", Dependencies: []string{"node", "node"}},
	})
}

func TestReverseDependencies(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want []Dependent
	}{
		{
			name: "multiple dependents in catalog order",
			id:   "node",
			want: []Dependent{{ID: "n", Name: "n"}, {ID: "codex", Name: "Codex CLI"}},
		},
		{
			name: "single dependent",
			id:   "python",
			want: []Dependent{{ID: "uv", Name: "uv"}},
		},
		{
			name: "leaf tool",
			id:   "uv",
		},
		{
			name: "unknown tool",
			id:   "ghost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReverseDependencies(tt.id, toolCatalog()))
		})
	}
}

type staticCatalog struct {
	catalog *Catalog
	err     error
}

func (s staticCatalog) Catalog(context.Context) (*Catalog, error) {
	return s.catalog, s.err
}

type recordingInstalled struct {
	set   InstalledSet
	calls int
}

func (r *recordingInstalled) Installed(context.Context, *Catalog) (InstalledSet, error) {
	r.calls++
	return r.set, nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	installed := &recordingInstalled{set: NewInstalledSet("python")}
	svc := NewService(staticCatalog{catalog: toolCatalog()}, installed, 0)

	order, err := svc.ResolveInstallationOrder(ctx, []string{"uv", "python"})
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "uv"}, order)

	tree, err := svc.DependencyTree(ctx, "uv")
	require.NoError(t, err)
	assert.Equal(t, 2, tree.TotalTools)
	assert.Equal(t, 1, tree.InstalledCount)
	assert.Equal(t, 1, installed.calls)

	_, err = svc.DependencyTree(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.Equal(t, 1, installed.calls, "detection must not run for an unknown root")

	dependents, err := svc.ReverseDependencies(ctx, "python")
	require.NoError(t, err)
	assert.Equal(t, []Dependent{{ID: "uv", Name: "uv"}}, dependents)

	plan, _, err := svc.InstallPlan(ctx, "uv")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "uv"}, plan)
}

func TestService_CatalogError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(staticCatalog{err: boom}, &recordingInstalled{}, 10)

	_, err := svc.ResolveInstallationOrder(context.Background(), []string{"uv"})
	assert.ErrorIs(t, err, boom)
	_, err = svc.DependencyTree(context.Background(), "uv")
	assert.ErrorIs(t, err, boom)
	_, err = svc.ReverseDependencies(context.Background(), "uv")
	assert.ErrorIs(t, err, boom)
	_, _, err = svc.InstallPlan(context.Background(), "uv")
	assert.ErrorIs(t, err, boom)
}
