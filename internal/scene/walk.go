package scene

import "sort"

// Visitor receives nodes during a depth-first walk. Pre returning false
// skips the node's children and its Post call. Either func may be nil.
type Visitor struct {
	Pre  func(Node) bool
	Post func(Node)
}

// Walk visits root and its descendants depth first.
func Walk(root Node, v Visitor) {
	if root == nil {
		return
	}
	if v.Pre != nil && !v.Pre(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, v)
	}
	if v.Post != nil {
		v.Post(root)
	}
}

// ForEach calls fn for root and every descendant.
func ForEach(root Node, fn func(Node)) {
	Walk(root, Visitor{Pre: func(n Node) bool {
		fn(n)
		return true
	}})
}

// Count returns the number of nodes under root, root included.
func Count(root Node) int {
	n := 0
	ForEach(root, func(Node) { n++ })
	return n
}

// Materials returns every material referenced by brushes and patches under
// root, sorted and without duplicates.
func Materials(root Node) []string {
	seen := map[string]struct{}{}
	ForEach(root, func(n Node) {
		if b, ok := n.AsBrush(); ok {
			for _, f := range b.Faces() {
				seen[f.Material] = struct{}{}
			}
		}
		if p, ok := n.AsPatch(); ok {
			seen[p.Material()] = struct{}{}
		}
	})
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Find returns the first node named name, or nil.
func Find(root Node, name string) Node {
	var found Node
	Walk(root, Visitor{Pre: func(n Node) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	}})
	return found
}
