// Package command is a registry of named editor commands.
package command

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandExists  = errors.New("command already registered")
)

// Func executes a command with its arguments.
type Func func(args []string) error

// Registry maps command names to their functions.
type Registry struct {
	cmds map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Func)}
}

// Register adds a command. Names are case-sensitive.
func (r *Registry) Register(name string, fn Func) error {
	if _, ok := r.cmds[name]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}
	r.cmds[name] = fn
	return nil
}

// Unregister removes a command. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	delete(r.cmds, name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.cmds[name]
	return ok
}

// Execute runs the named command.
func (r *Registry) Execute(name string, args ...string) error {
	fn, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn(args)
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
