package filtersystem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivoronin/scenefilter/internal/filter"
)

// Command names.
const (
	CmdSelectByFilter   = "SelectObjectsByFilter"
	CmdDeselectByFilter = "DeselectObjectsByFilter"
	CmdResetFilters     = "ResetFilters"
	CmdActivateAll      = "ActivateAllFilters"
)

// eventAdapter binds the per-filter commands: a toggle named after the
// filter's event name, plus select and deselect by filter.
type eventAdapter struct {
	sys        *System
	filter     *filter.Filter
	registered []string
}

func newEventAdapter(s *System, f *filter.Filter) *eventAdapter {
	return &eventAdapter{sys: s, filter: f}
}

func (a *eventAdapter) register() {
	event := a.filter.EventName()
	a.bind(event, a.toggle)
	a.bind(CmdSelectByFilter+event, func([]string) error {
		return a.sys.SetObjectSelectionByFilter(a.filter.Name(), true)
	})
	a.bind(CmdDeselectByFilter+event, func([]string) error {
		return a.sys.SetObjectSelectionByFilter(a.filter.Name(), false)
	})
}

// bind registers one command. A name already taken by another command is
// logged and left alone.
func (a *eventAdapter) bind(name string, fn func([]string) error) {
	if err := a.sys.commands.Register(name, fn); err != nil {
		a.sys.log.Warn("filter command not bound", "filter", a.filter.Name(), "command", name, "error", err)
		return
	}
	a.registered = append(a.registered, name)
}

func (a *eventAdapter) unregister() {
	for _, name := range a.registered {
		a.sys.commands.Unregister(name)
	}
	a.registered = nil
}

// rebind moves the commands to the filter's current event name.
func (a *eventAdapter) rebind() {
	a.unregister()
	a.register()
}

// toggle flips the filter state, or sets it from the first argument.
func (a *eventAdapter) toggle(args []string) error {
	name := a.filter.Name()
	state := !a.sys.FilterState(name)
	if len(args) > 0 {
		v, err := parseState(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", a.filter.EventName(), err)
		}
		state = v
	}
	a.sys.SetFilterState(name, state)
	return nil
}

func parseState(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func (s *System) registerGlobalCommands() {
	global := []struct {
		name string
		fn   func([]string) error
	}{
		{CmdSelectByFilter, func(args []string) error {
			return s.SetObjectSelectionByFilter(strings.Join(args, " "), true)
		}},
		{CmdDeselectByFilter, func(args []string) error {
			return s.SetObjectSelectionByFilter(strings.Join(args, " "), false)
		}},
		{CmdResetFilters, func([]string) error {
			s.SetAllFilterStates(false)
			return nil
		}},
		{CmdActivateAll, func([]string) error {
			s.SetAllFilterStates(true)
			return nil
		}},
	}
	for _, c := range global {
		if err := s.commands.Register(c.name, c.fn); err != nil {
			s.log.Warn("filter command not bound", "command", c.name, "error", err)
		}
	}
}
