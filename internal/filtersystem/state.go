package filtersystem

// PushState saves the set of active filters.
func (s *System) PushState() {
	s.states = append(s.states, s.active.clone())
}

// PopState restores the most recently pushed set of active filters.
// Filters removed since the push are not restored. Popping an empty stack
// does nothing; ConfigChanged only fires if the active set changes.
func (s *System) PopState() {
	if len(s.states) == 0 {
		return
	}
	top := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]

	restored := newFilterTable()
	for _, f := range top.values() {
		// keyed by current name so renamed filters survive
		if cur, ok := s.available.get(f.Name()); ok && cur == f {
			restored.set(f.Name(), f)
		}
	}
	if restored.equal(s.active) {
		return
	}
	s.active = restored
	s.configure()
}

// StateDepth returns the number of pushed states.
func (s *System) StateDepth() int { return len(s.states) }

// PushScoped pushes the current state and returns a func that pops it.
// Calling the func more than once pops only once.
//
//	defer sys.PushScoped()()
func (s *System) PushScoped() func() {
	s.PushState()
	popped := false
	return func() {
		if popped {
			return
		}
		popped = true
		s.PopState()
	}
}
