package dependency

import (
	"context"
	"fmt"
)

// CatalogProvider supplies the merged catalog of built-in and custom tools.
type CatalogProvider interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// InstalledProvider reports which catalog tools are present on the host.
type InstalledProvider interface {
	Installed(ctx context.Context, c *Catalog) (InstalledSet, error)
}

// Service exposes the dependency operations on top of live collaborators.
// The catalog is fetched on every call so that custom tools added in the
// meantime are picked up.
type Service struct {
	catalogs  CatalogProvider
	installed InstalledProvider
	maxDepth  int
}

// NewService creates a Service. maxDepth below 1 selects DefaultMaxDepth.
func NewService(catalogs CatalogProvider, installed InstalledProvider, maxDepth int) *Service {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Service{
		catalogs:  catalogs,
		installed: installed,
		maxDepth:  maxDepth,
	}
}

// ResolveInstallationOrder orders ids so that dependencies come first.
func (s *Service) ResolveInstallationOrder(ctx context.Context, ids []string) ([]string, error) {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	return ResolveOrder(ids, c)
}

// DependencyTree builds the annotated dependency tree of id.
func (s *Service) DependencyTree(ctx context.Context, id string) (*Tree, error) {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	// Fail on an unknown root before paying for detection.
	if !c.Has(id) {
		return nil, &UnknownToolError{ID: id}
	}
	installed, err := s.installed.Installed(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to detect installed tools: %w", err)
	}
	return BuildTree(id, installed, c, WithMaxDepth(s.maxDepth))
}

// ReverseDependencies lists the tools that depend directly on id.
func (s *Service) ReverseDependencies(ctx context.Context, id string) ([]Dependent, error) {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	return ReverseDependencies(id, c), nil
}

// InstallPlan returns the installation order for target and all of its
// transitive dependencies.
func (s *Service) InstallPlan(ctx context.Context, target string) ([]string, *Catalog, error) {
	c, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tool catalog: %w", err)
	}
	ids, err := Closure([]string{target}, c)
	if err != nil {
		return nil, nil, err
	}
	order, err := ResolveOrder(ids, c)
	if err != nil {
		return nil, nil, err
	}
	return order, c, nil
}
