// Package material tracks the filtered state of material shaders.
package material

import "sort"

// Registry maps shader names to their visibility. Unknown shaders are
// visible.
type Registry struct {
	hidden map[string]bool
}

// NewRegistry creates a registry holding names, all visible.
func NewRegistry(names ...string) *Registry {
	r := &Registry{hidden: make(map[string]bool, len(names))}
	for _, n := range names {
		r.Capture(n)
	}
	return r
}

// Capture registers a shader. Registering a known shader is a no-op.
func (r *Registry) Capture(name string) {
	if _, ok := r.hidden[name]; !ok {
		r.hidden[name] = false
	}
}

// Names returns the registered shader names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.hidden))
	for n := range r.hidden {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetVisible sets the visibility of a registered shader. Unknown names are
// ignored.
func (r *Registry) SetVisible(name string, visible bool) {
	if _, ok := r.hidden[name]; ok {
		r.hidden[name] = !visible
	}
}

// IsVisible reports whether name is visible.
func (r *Registry) IsVisible(name string) bool {
	return !r.hidden[name]
}

// Hidden returns the hidden shader names in sorted order.
func (r *Registry) Hidden() []string {
	var names []string
	for n, h := range r.hidden {
		if h {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered shaders.
func (r *Registry) Len() int { return len(r.hidden) }
