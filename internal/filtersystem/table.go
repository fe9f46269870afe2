package filtersystem

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ivoronin/scenefilter/internal/filter"
)

// filterTable maps names to filters, iterating in insertion order.
type filterTable struct {
	m *orderedmap.OrderedMap[string, *filter.Filter]
}

func newFilterTable() *filterTable {
	return &filterTable{m: orderedmap.New[string, *filter.Filter]()}
}

func (t *filterTable) get(name string) (*filter.Filter, bool) { return t.m.Get(name) }

func (t *filterTable) has(name string) bool {
	_, ok := t.m.Get(name)
	return ok
}

// set inserts or replaces. A replaced entry keeps its position.
func (t *filterTable) set(name string, f *filter.Filter) { t.m.Set(name, f) }

func (t *filterTable) delete(name string) bool {
	_, ok := t.m.Delete(name)
	return ok
}

func (t *filterTable) len() int { return t.m.Len() }

func (t *filterTable) names() []string {
	names := make([]string, 0, t.m.Len())
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

func (t *filterTable) values() []*filter.Filter {
	out := make([]*filter.Filter, 0, t.m.Len())
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

func (t *filterTable) clone() *filterTable {
	c := newFilterTable()
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		c.m.Set(p.Key, p.Value)
	}
	return c
}

// rename re-keys an entry in place.
func (t *filterTable) rename(oldName, newName string) {
	if !t.has(oldName) {
		return
	}
	next := orderedmap.New[string, *filter.Filter]()
	for p := t.m.Oldest(); p != nil; p = p.Next() {
		key := p.Key
		if key == oldName {
			key = newName
		}
		next.Set(key, p.Value)
	}
	t.m = next
}

// equal compares keys, order and filter identity.
func (t *filterTable) equal(o *filterTable) bool {
	if t.m.Len() != o.m.Len() {
		return false
	}
	a, b := t.m.Oldest(), o.m.Oldest()
	for a != nil && b != nil {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}
