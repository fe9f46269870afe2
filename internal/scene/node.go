// Package scene is a minimal in-memory scene graph: entities owning brushes
// and patches, with the filtered/selected flags the filter system drives.
package scene

import "sort"

// Kind is the type of a scene node.
type Kind int

const (
	KindRoot Kind = iota
	KindEntity
	KindBrush
	KindPatch
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindEntity:
		return "entity"
	case KindBrush:
		return "brush"
	case KindPatch:
		return "patch"
	}
	return "unknown"
}

// Node is the view of a scene node used by walkers.
type Node interface {
	Name() string
	Kind() Kind
	Children() []Node
	// Parent returns the owning node, or nil for a root or detached node.
	Parent() Node

	// Visible reports whether the node is shown: neither filtered nor
	// hidden by the user.
	Visible() bool
	Filtered() bool
	SetFiltered(filtered bool)
	// OnFiltersChanged is called after the filter system changed the
	// filtered flag of this node.
	OnFiltersChanged()

	Selected() bool
	SetSelected(selected bool)

	AsEntity() (*Entity, bool)
	AsBrush() (Brush, bool)
	AsPatch() (Patch, bool)
}

// Face is one brush face.
type Face struct {
	Material string
	// Degenerate faces have no area and do not contribute to the brush.
	Degenerate bool
}

// Brush is the capability of a brush node.
type Brush interface {
	Faces() []Face
	HasContributingFaces() bool
}

// Patch is the capability of a patch node.
type Patch interface {
	Material() string
}

// Entity holds an entity's class and spawnargs.
type Entity struct {
	class string
	args  map[string]string
}

// ClassName returns the entity class, e.g. "func_static".
func (e *Entity) ClassName() string { return e.class }

// KeyValue returns the spawnarg value for key, or "" when unset.
func (e *Entity) KeyValue(key string) string { return e.args[key] }

// SetKeyValue sets a spawnarg. An empty value removes it.
func (e *Entity) SetKeyValue(key, value string) {
	if value == "" {
		delete(e.args, key)
		return
	}
	e.args[key] = value
}

// Keys returns the spawnarg keys in sorted order.
func (e *Entity) Keys() []string {
	keys := make([]string, 0, len(e.args))
	for k := range e.args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BaseNode implements Node for every node kind.
type BaseNode struct {
	name     string
	kind     Kind
	parent   *BaseNode
	children []Node

	hidden   bool
	filtered bool
	selected bool

	entity   *Entity
	faces    []Face
	material string

	onChange func(Node)
	changes  int
}

// NewRoot creates an empty root node.
func NewRoot() *BaseNode {
	return &BaseNode{name: "root", kind: KindRoot}
}

// NewEntity creates an entity node.
func NewEntity(name, class string, spawnargs map[string]string) *BaseNode {
	args := make(map[string]string, len(spawnargs))
	for k, v := range spawnargs {
		if v != "" {
			args[k] = v
		}
	}
	return &BaseNode{name: name, kind: KindEntity, entity: &Entity{class: class, args: args}}
}

// NewBrush creates a brush node.
func NewBrush(name string, faces ...Face) *BaseNode {
	return &BaseNode{name: name, kind: KindBrush, faces: append([]Face(nil), faces...)}
}

// NewPatch creates a patch node.
func NewPatch(name, material string) *BaseNode {
	return &BaseNode{name: name, kind: KindPatch, material: material}
}

// AddChild appends child and returns n for chaining.
func (n *BaseNode) AddChild(child Node) *BaseNode {
	if c, ok := child.(*BaseNode); ok {
		c.parent = n
	}
	n.children = append(n.children, child)
	return n
}

// OnChange installs a hook run by OnFiltersChanged.
func (n *BaseNode) OnChange(fn func(Node)) { n.onChange = fn }

// FilterChanges returns how many times OnFiltersChanged was called.
func (n *BaseNode) FilterChanges() int { return n.changes }

// SetHidden hides or shows the node independently of filtering.
func (n *BaseNode) SetHidden(hidden bool) { n.hidden = hidden }

func (n *BaseNode) Name() string     { return n.name }
func (n *BaseNode) Kind() Kind       { return n.kind }
func (n *BaseNode) Children() []Node { return n.children }

func (n *BaseNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *BaseNode) Visible() bool    { return !n.hidden && !n.filtered }
func (n *BaseNode) Filtered() bool   { return n.filtered }
func (n *BaseNode) Selected() bool   { return n.selected }

func (n *BaseNode) SetFiltered(filtered bool) { n.filtered = filtered }
func (n *BaseNode) SetSelected(selected bool) { n.selected = selected }

func (n *BaseNode) OnFiltersChanged() {
	n.changes++
	if n.onChange != nil {
		n.onChange(n)
	}
}

func (n *BaseNode) AsEntity() (*Entity, bool) {
	return n.entity, n.kind == KindEntity
}

func (n *BaseNode) AsBrush() (Brush, bool) {
	if n.kind != KindBrush {
		return nil, false
	}
	return n, true
}

func (n *BaseNode) AsPatch() (Patch, bool) {
	if n.kind != KindPatch {
		return nil, false
	}
	return n, true
}

// Faces returns the brush faces.
func (n *BaseNode) Faces() []Face { return n.faces }

// HasContributingFaces reports whether any face is non-degenerate.
func (n *BaseNode) HasContributingFaces() bool {
	for _, f := range n.faces {
		if !f.Degenerate {
			return true
		}
	}
	return false
}

// Material returns the patch material.
func (n *BaseNode) Material() string { return n.material }
