package filtersystem

import (
	"context"
	"fmt"
	"time"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/scene"
)

// visibility is implemented by both a single filter and the System.
type visibility interface {
	IsVisible(kind filter.Kind, name string) bool
	IsEntityVisible(e filter.Entity) bool
}

// primitiveVisible applies the brush and patch policy: the object type must
// pass, every material must pass, and a brush needs a contributing face.
// Other nodes are always visible on their own.
func primitiveVisible(v visibility, n scene.Node) bool {
	if b, ok := n.AsBrush(); ok {
		if !v.IsVisible(filter.KindObject, filter.ObjectBrush) {
			return false
		}
		for _, f := range b.Faces() {
			if !v.IsVisible(filter.KindTexture, f.Material) {
				return false
			}
		}
		return b.HasContributingFaces()
	}
	if p, ok := n.AsPatch(); ok {
		return v.IsVisible(filter.KindObject, filter.ObjectPatch) &&
			v.IsVisible(filter.KindTexture, p.Material())
	}
	return true
}

// Update recomputes material visibility and the filtered flag of every node
// of the attached scene.
func (s *System) Update() {
	s.updateMaterials()
	if s.root != nil {
		s.updateSubgraph(s.root)
	}
}

// UpdateSubgraph is Update limited to the subtree at root, e.g. for nodes
// just inserted into the scene. A subtree below a filtered entity is
// filtered whole.
func (s *System) UpdateSubgraph(root scene.Node) {
	s.updateMaterials()
	if root != nil {
		s.updateSubgraph(root)
	}
}

func (s *System) updateMaterials() {
	if s.materials == nil {
		return
	}
	for _, name := range s.materials.Names() {
		s.materials.SetVisible(name, s.IsVisible(filter.KindTexture, name))
	}
}

func (s *System) updateSubgraph(root scene.Node) {
	start := time.Now()
	visited := 0

	if s.ancestorFiltered(root) {
		scene.ForEach(root, func(n scene.Node) {
			visited++
			setFiltered(n, true)
		})
		s.metrics.RecordUpdate(context.Background(), visited, time.Since(start))
		s.log.Debug("scene updated below filtered entity", "root", root.Name(), "nodes", visited)
		return
	}

	scene.Walk(root, scene.Visitor{Pre: func(n scene.Node) bool {
		if e, ok := n.AsEntity(); ok && !s.IsEntityVisible(e) {
			// the whole entity is filtered as a unit
			scene.ForEach(n, func(c scene.Node) {
				visited++
				setFiltered(c, true)
			})
			return false
		}
		visited++
		setFiltered(n, !primitiveVisible(s, n))
		return true
	}})

	s.metrics.RecordUpdate(context.Background(), visited, time.Since(start))
	s.log.Debug("scene updated", "root", root.Name(), "nodes", visited, "active", s.active.len())
}

// ancestorFiltered reports whether an entity above n is hidden by the
// active filters.
func (s *System) ancestorFiltered(n scene.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if e, ok := p.AsEntity(); ok && !s.IsEntityVisible(e) {
			return true
		}
	}
	return false
}

func setFiltered(n scene.Node, filtered bool) {
	if n.Filtered() == filtered {
		return
	}
	n.SetFiltered(filtered)
	n.OnFiltersChanged()
}

// SetObjectSelectionByFilter selects (or deselects) every visible object
// that the named filter on its own would hide. Entities hidden by the
// filter are not descended into.
func (s *System) SetObjectSelectionByFilter(name string, selected bool) error {
	f, ok := s.available.get(name)
	if !ok {
		return fmt.Errorf("select by filter %q: %w", name, filter.ErrNotFound)
	}
	if s.root == nil {
		return nil
	}

	count := 0
	scene.Walk(s.root, scene.Visitor{Pre: func(n scene.Node) bool {
		if !n.Visible() {
			return false
		}
		if e, ok := n.AsEntity(); ok {
			visible := f.IsEntityVisible(e)
			if !visible {
				n.SetSelected(selected)
				count++
			}
			return visible
		}
		if !primitiveVisible(f, n) {
			n.SetSelected(selected)
			count++
		}
		return true
	}})
	s.log.Debug("selection by filter", "filter", name, "select", selected, "nodes", count)
	return nil
}
