package filtersystem

import (
	"fmt"

	"github.com/ivoronin/scenefilter/internal/filter"
)

// AddFilter creates a user filter holding rules.
func (s *System) AddFilter(name string, rules filter.Rules) error {
	if s.available.has(name) {
		return fmt.Errorf("add filter %q: %w", name, filter.ErrNameConflict)
	}
	f, err := filter.NewWithRules(name, false, rules, filter.WithMatcher(s.matcher))
	if err != nil {
		return err
	}
	s.insert(f)
	s.log.Debug("filter added", "filter", name, "rules", len(rules))
	s.collectionChanged.Emit()
	return nil
}

// Register adds a copy of f, keeping its read-only flag and Matcher. Later
// changes to f do not reach the system.
func (s *System) Register(f *filter.Filter) error {
	if s.available.has(f.Name()) {
		return fmt.Errorf("register filter %q: %w", f.Name(), filter.ErrNameConflict)
	}
	s.insert(f.Clone())
	s.collectionChanged.Emit()
	return nil
}

func (s *System) insert(f *filter.Filter) {
	s.available.set(f.Name(), f)
	a := newEventAdapter(s, f)
	a.register()
	s.adapters[f] = a
}

// RemoveFilter deletes a user filter, deactivating it first.
func (s *System) RemoveFilter(name string) error {
	f, ok := s.available.get(name)
	if !ok {
		return fmt.Errorf("remove filter %q: %w", name, filter.ErrNotFound)
	}
	if f.IsReadOnly() {
		return fmt.Errorf("remove filter %q: %w", name, filter.ErrReadOnly)
	}

	wasActive := s.active.delete(name)
	s.available.delete(name)
	if a, ok := s.adapters[f]; ok {
		a.unregister()
		delete(s.adapters, f)
	}
	s.invalidate()
	s.log.Debug("filter removed", "filter", name, "was_active", wasActive)

	if wasActive {
		s.configChanged.Emit()
		s.Update()
	}
	s.collectionChanged.Emit()
	return nil
}

// RenameFilter renames a user filter. The filter keeps its position in the
// registration and activation order and its commands are rebound to the new
// event name.
func (s *System) RenameFilter(oldName, newName string) error {
	f, ok := s.available.get(oldName)
	if !ok {
		return fmt.Errorf("rename filter %q: %w", oldName, filter.ErrNotFound)
	}
	if f.IsReadOnly() {
		return fmt.Errorf("rename filter %q: %w", oldName, filter.ErrReadOnly)
	}
	if oldName == newName {
		return nil
	}
	if s.available.has(newName) {
		return fmt.Errorf("rename filter %q to %q: %w", oldName, newName, filter.ErrNameConflict)
	}
	if err := f.SetName(newName); err != nil {
		return err
	}

	s.available.rename(oldName, newName)
	s.active.rename(oldName, newName)
	s.renameGroupMember(oldName, newName)
	if a, ok := s.adapters[f]; ok {
		a.rebind()
	}
	s.log.Debug("filter renamed", "from", oldName, "to", newName)
	s.collectionChanged.Emit()
	return nil
}

// Filter returns a snapshot of the filter registered under name. Changes go
// through the System.
func (s *System) Filter(name string) (filter.View, bool) {
	f, ok := s.available.get(name)
	if !ok {
		return nil, false
	}
	return f.Clone(), true
}

// RuleSet returns a copy of the rules of a filter.
func (s *System) RuleSet(name string) (filter.Rules, error) {
	f, ok := s.available.get(name)
	if !ok {
		return nil, fmt.Errorf("rules of %q: %w", name, filter.ErrNotFound)
	}
	return f.Rules(), nil
}

// SetFilterRules replaces the rules of a user filter. ConfigChanged fires on
// success; the scene is only updated when the filter is active.
func (s *System) SetFilterRules(name string, rules filter.Rules) error {
	f, ok := s.available.get(name)
	if !ok {
		return fmt.Errorf("set rules of %q: %w", name, filter.ErrNotFound)
	}
	if err := f.SetRules(rules); err != nil {
		return err
	}
	s.invalidate()
	s.configChanged.Emit()
	if s.active.has(name) {
		s.Update()
	}
	return nil
}

// SetFilterState activates or deactivates a filter. An activated filter is
// evaluated after those already active. Unknown names are logged and
// ignored; ConfigChanged fires in every case.
func (s *System) SetFilterState(name string, active bool) {
	if f, ok := s.available.get(name); !ok {
		s.log.Warn("cannot change state of unknown filter", "filter", name)
	} else if active {
		if !s.active.has(name) {
			s.active.set(name, f)
		}
	} else {
		s.active.delete(name)
	}
	s.log.Debug("filter state set", "filter", name, "active", active)
	s.configure()
}

// SetAllFilterStates activates or deactivates every filter at once.
func (s *System) SetAllFilterStates(active bool) {
	if active {
		for _, f := range s.available.values() {
			if !s.active.has(f.Name()) {
				s.active.set(f.Name(), f)
			}
		}
	} else {
		s.active = newFilterTable()
	}
	s.configure()
}

// FilterState reports whether name is active.
func (s *System) FilterState(name string) bool {
	return s.active.has(name)
}

// FilterEventName returns the event name of a filter, or "" for unknown
// names.
func (s *System) FilterEventName(name string) string {
	if f, ok := s.available.get(name); ok {
		return f.EventName()
	}
	return ""
}

// ForEachFilter calls fn with a snapshot of every filter in registration
// order.
func (s *System) ForEachFilter(fn func(filter.View)) {
	for _, f := range s.available.values() {
		fn(f.Clone())
	}
}

// FilterNames returns all filter names in registration order.
func (s *System) FilterNames() []string { return s.available.names() }

// ActiveFilterNames returns the active filter names in activation order.
func (s *System) ActiveFilterNames() []string { return s.active.names() }
