package filter

import "sort"

// Group is a named set of filters that are toggled together.
type Group struct {
	name    string
	members map[string]struct{}
}

// NewGroup returns a group holding the given filter names. Duplicates are
// collapsed.
func NewGroup(name string, filterNames ...string) *Group {
	g := &Group{name: name, members: make(map[string]struct{}, len(filterNames))}
	for _, n := range filterNames {
		g.members[n] = struct{}{}
	}
	return g
}

func (g *Group) Name() string { return g.name }

// FilterNames returns the member names in sorted order.
func (g *Group) FilterNames() []string {
	names := make([]string, 0, len(g.members))
	for n := range g.members {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether filterName is a member.
func (g *Group) Contains(filterName string) bool {
	_, ok := g.members[filterName]
	return ok
}

func (g *Group) Len() int { return len(g.members) }
