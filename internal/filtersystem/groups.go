package filtersystem

import (
	"fmt"

	"github.com/ivoronin/scenefilter/internal/filter"
)

// AddGroup registers a user filter group.
func (s *System) AddGroup(g *filter.Group) error {
	return s.addGroup(g, false)
}

func (s *System) addGroup(g *filter.Group, readOnly bool) error {
	if _, ok := s.groups.Get(g.Name()); ok {
		return fmt.Errorf("add group %q: %w", g.Name(), filter.ErrNameConflict)
	}
	s.groups.Set(g.Name(), groupEntry{group: g, readOnly: readOnly})
	return nil
}

// Groups returns the filter groups in registration order.
func (s *System) Groups() []*filter.Group {
	out := make([]*filter.Group, 0, s.groups.Len())
	for p := s.groups.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value.group)
	}
	return out
}

// SetGroupState activates or deactivates every registered member of a
// group in one step.
func (s *System) SetGroupState(name string, active bool) error {
	e, ok := s.groups.Get(name)
	if !ok {
		return fmt.Errorf("group %q: %w", name, filter.ErrNotFound)
	}
	for _, member := range e.group.FilterNames() {
		f, ok := s.available.get(member)
		if !ok {
			continue
		}
		if active {
			if !s.active.has(member) {
				s.active.set(member, f)
			}
		} else {
			s.active.delete(member)
		}
	}
	s.configure()
	return nil
}

// GroupState reports whether every registered member of a group is active.
// A group without registered members is inactive.
func (s *System) GroupState(name string) (bool, error) {
	e, ok := s.groups.Get(name)
	if !ok {
		return false, fmt.Errorf("group %q: %w", name, filter.ErrNotFound)
	}
	found := false
	for _, member := range e.group.FilterNames() {
		if !s.available.has(member) {
			continue
		}
		found = true
		if !s.active.has(member) {
			return false, nil
		}
	}
	return found, nil
}

func (s *System) renameGroupMember(oldName, newName string) {
	for p := s.groups.Oldest(); p != nil; p = p.Next() {
		g := p.Value.group
		if !g.Contains(oldName) {
			continue
		}
		names := make([]string, 0, g.Len())
		for _, n := range g.FilterNames() {
			if n == oldName {
				n = newName
			}
			names = append(names, n)
		}
		p.Value = groupEntry{group: filter.NewGroup(g.Name(), names...), readOnly: p.Value.readOnly}
	}
}
