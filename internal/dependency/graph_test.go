package dependency

import (
	"errors"
	"reflect"
	"testing"
)

func def(id string, deps ...string) Definition {
	return Definition{ID: id, Name: id, Dependencies: deps}
}

// chainCatalog: d depends on c depends on b depends on a.
func chainCatalog() *Catalog {
	return NewCatalog([]Definition{
		def("a"),
		def("b", "a"),
		def("c", "b"),
		def("d", "c"),
	})
}

// diamondCatalog: d depends on b and c, both depend on a.
func diamondCatalog() *Catalog {
	return NewCatalog([]Definition{
		def("a"),
		def("b", "a"),
		def("c", "a"),
		def("d", "b", "c"),
	})
}

func TestNewGraph(t *testing.T) {
	tests := []struct {
		name         string
		ids          []string
		wantNodes    []string
		wantInDegree map[string]int
	}{
		{
			name:         "empty request",
			ids:          nil,
			wantNodes:    []string{},
			wantInDegree: map[string]int{},
		},
		{
			name:         "full chain",
			ids:          []string{"d", "c", "b", "a"},
			wantNodes:    []string{"d", "c", "b", "a"},
			wantInDegree: map[string]int{"a": 0, "b": 1, "c": 1, "d": 1},
		},
		{
			name:         "dependencies outside the request are ignored",
			ids:          []string{"c"},
			wantNodes:    []string{"c"},
			wantInDegree: map[string]int{"c": 0},
		},
		{
			name:         "duplicates keep the first position",
			ids:          []string{"b", "a", "b"},
			wantNodes:    []string{"b", "a"},
			wantInDegree: map[string]int{"a": 0, "b": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.ids, chainCatalog())
			if err != nil {
				t.Fatalf("NewGraph() error = %v", err)
			}
			if got := g.Nodes(); !reflect.DeepEqual(got, tt.wantNodes) {
				t.Errorf("Nodes() = %v, want %v", got, tt.wantNodes)
			}
			for id, want := range tt.wantInDegree {
				if got := g.InDegree(id); got != want {
					t.Errorf("InDegree(%s) = %d, want %d", id, got, want)
				}
			}
		})
	}
}

func TestNewGraph_UnknownTool(t *testing.T) {
	_, err := NewGraph([]string{"a", "ghost"}, chainCatalog())
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) || unknown.ID != "ghost" {
		t.Fatalf("expected UnknownToolError for ghost, got %v", err)
	}
}

func TestGraph_Dependents(t *testing.T) {
	g, err := NewGraph([]string{"d", "c", "b", "a"}, diamondCatalog())
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}

	tests := []struct {
		id   string
		want []string
	}{
		{id: "a", want: []string{"c", "b"}},
		{id: "b", want: []string{"d"}},
		{id: "c", want: []string{"d"}},
		{id: "d", want: []string{}},
	}
	for _, tt := range tests {
		if got := g.Dependents(tt.id); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Dependents(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}

	// Returned slices must not alias internal state
	deps := g.Dependents("a")
	deps[0] = "modified"
	if g.Dependents("a")[0] == "modified" {
		t.Error("Dependents() returned a slice sharing internal state")
	}
}

func TestGraph_HasCycle(t *testing.T) {
	tests := []struct {
		name    string
		catalog []Definition
		ids     []string
		want    bool
	}{
		{
			name:    "no edges",
			catalog: []Definition{def("a"), def("b")},
			ids:     []string{"a", "b"},
			want:    false,
		},
		{
			name:    "diamond is acyclic",
			catalog: diamondCatalog().Definitions(),
			ids:     []string{"a", "b", "c", "d"},
			want:    false,
		},
		{
			name:    "self dependency",
			catalog: []Definition{def("a", "a")},
			ids:     []string{"a"},
			want:    true,
		},
		{
			name:    "two tools depending on each other",
			catalog: []Definition{def("a", "b"), def("b", "a")},
			ids:     []string{"a", "b"},
			want:    true,
		},
		{
			name:    "three tool loop",
			catalog: []Definition{def("a", "c"), def("b", "a"), def("c", "b")},
			ids:     []string{"a", "b", "c"},
			want:    true,
		},
		{
			name:    "cycle in a disconnected component",
			catalog: []Definition{def("x"), def("y", "x"), def("a", "b"), def("b", "a")},
			ids:     []string{"x", "y", "a", "b"},
			want:    true,
		},
		{
			name:    "cycle partly outside the request",
			catalog: []Definition{def("a", "b"), def("b", "a")},
			ids:     []string{"a"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.ids, NewCatalog(tt.catalog))
			if err != nil {
				t.Fatalf("NewGraph() error = %v", err)
			}
			if got := g.HasCycle(); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Definition{def("a"), def("b", "a"), {ID: "a", Name: "duplicate"}})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	got, err := c.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup(a) error = %v", err)
	}
	if got.Name != "a" {
		t.Errorf("first definition should win, got name %q", got.Name)
	}
	if _, err := c.Lookup("ghost"); !IsUnknownTool(err) {
		t.Errorf("Lookup(ghost) error = %v, want unknown tool", err)
	}

	deps := c.Dependencies("b")
	deps[0] = "modified"
	if c.Dependencies("b")[0] != "a" {
		t.Error("Dependencies() returned a slice sharing internal state")
	}

	var nilCatalog *Catalog
	if nilCatalog.Has("a") || nilCatalog.Len() != 0 || nilCatalog.Definitions() != nil {
		t.Error("nil catalog should behave as empty")
	}
}
