package dependency

// Definition is the part of a tool template the resolver cares about.
type Definition struct {
	ID           string
	Name         string
	Dependencies []string
}

// Catalog is a read-only, ordered set of definitions keyed by id.
//
// Catalog providers guarantee unique ids. If a duplicate slips through anyway
// the first definition wins, matching the builtins-first merge order.
type Catalog struct {
	order []string
	defs  map[string]Definition
}

// NewCatalog copies defs into a new catalog.
func NewCatalog(defs []Definition) *Catalog {
	c := &Catalog{
		order: make([]string, 0, len(defs)),
		defs:  make(map[string]Definition, len(defs)),
	}
	for _, d := range defs {
		if _, exists := c.defs[d.ID]; exists {
			continue
		}
		// Copy to avoid external mutations
		copied := d
		copied.Dependencies = append([]string(nil), d.Dependencies...)
		c.defs[d.ID] = copied
		c.order = append(c.order, d.ID)
	}
	return c
}

// Lookup returns the definition for id, or an *UnknownToolError.
func (c *Catalog) Lookup(id string) (Definition, error) {
	if c != nil {
		if d, ok := c.defs[id]; ok {
			return d, nil
		}
	}
	return Definition{}, &UnknownToolError{ID: id}
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.defs[id]
	return ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Definitions returns all definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return nil
	}
	res := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		res = append(res, c.defs[id])
	}
	return res
}

// Dependencies returns a copy of the direct dependency ids of id.
func (c *Catalog) Dependencies(id string) []string {
	d, err := c.Lookup(id)
	if err != nil {
		return nil
	}
	return append([]string(nil), d.Dependencies...)
}

// InstalledSet is the set of tool ids detected on the host.
type InstalledSet map[string]struct{}

// NewInstalledSet builds a set from ids.
func NewInstalledSet(ids ...string) InstalledSet {
	s := make(InstalledSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is installed. A nil set contains nothing.
func (s InstalledSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
