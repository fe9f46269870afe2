package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ivoronin/scenefilter/internal/observe"
	"github.com/ivoronin/scenefilter/internal/scene"
)

// NodeEntry is the state of one scene node.
type NodeEntry struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Depth    int    `json:"depth"`
	Filtered bool   `json:"filtered"`
	Selected bool   `json:"selected"`
}

// SceneReport implements Formatter for the outcome of evaluating a scene.
type SceneReport struct {
	Active         []string        `json:"active_filters"`
	Nodes          []NodeEntry     `json:"nodes"`
	HiddenMaterial []string        `json:"hidden_materials"`
	Stats          *observe.Totals `json:"stats,omitempty"`
	// OnlyFiltered limits the text table to filtered nodes.
	OnlyFiltered bool `json:"-"`
}

// NewSceneReport captures the state of every node under root. The root
// itself is left out.
func NewSceneReport(root scene.Node, active, hiddenMaterials []string) *SceneReport {
	r := &SceneReport{
		Active:         nonNil(active),
		HiddenMaterial: nonNil(hiddenMaterials),
		Nodes:          []NodeEntry{},
	}
	depth := -1
	scene.Walk(root, scene.Visitor{
		Pre: func(n scene.Node) bool {
			depth++
			if n != root {
				r.Nodes = append(r.Nodes, NodeEntry{
					Name:     n.Name(),
					Kind:     n.Kind().String(),
					Depth:    depth - 1,
					Filtered: n.Filtered(),
					Selected: n.Selected(),
				})
			}
			return true
		},
		Post: func(scene.Node) { depth-- },
	})
	return r
}

// FilteredCount returns the number of filtered nodes.
func (r *SceneReport) FilteredCount() int {
	n := 0
	for _, e := range r.Nodes {
		if e.Filtered {
			n++
		}
	}
	return n
}

// FormatText returns an indented node table followed by a summary line.
func (r *SceneReport) FormatText() string {
	tw := NewTableWriter()
	tw.Header("NODE", "KIND", "STATE", "SELECTED")
	for _, e := range r.Nodes {
		if r.OnlyFiltered && !e.Filtered {
			continue
		}
		state := "visible"
		if e.Filtered {
			state = "filtered"
		}
		tw.Row(strings.Repeat("  ", e.Depth)+e.Name, e.Kind, state, yesNo(e.Selected))
	}

	var b strings.Builder
	b.WriteString(tw.String())
	fmt.Fprintf(&b, "\n\n%d of %d nodes filtered; active filters: %s",
		r.FilteredCount(), len(r.Nodes), joinNames(r.Active))
	if len(r.HiddenMaterial) > 0 {
		fmt.Fprintf(&b, "\nhidden materials: %s", strings.Join(r.HiddenMaterial, ", "))
	}
	if r.Stats != nil {
		b.WriteString("\n\n")
		b.WriteString(FormatStats(*r.Stats))
	}
	return b.String()
}

// FormatJSON returns the whole report.
func (r *SceneReport) FormatJSON() ([]byte, error) {
	return marshalIndent(r)
}

// FormatStats renders metric totals as a two column table.
func FormatStats(t observe.Totals) string {
	tw := NewTableWriter()
	tw.Header("METRIC", "VALUE")
	tw.Row("visibility queries", fmt.Sprint(t.Queries))
	tw.Row("cache hits", fmt.Sprint(t.CacheHits))
	tw.Row("cache misses", fmt.Sprint(t.CacheMisses))
	tw.Row("scene updates", fmt.Sprint(t.Updates))
	tw.Row("nodes visited", fmt.Sprint(t.NodesVisited))
	tw.Row("update time", fmt.Sprintf("%.3fms", t.UpdateSeconds*1000))
	return tw.String()
}

// QueryResult is the verdict for one item.
type QueryResult struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// QueryResults implements Formatter for visibility queries.
type QueryResults struct {
	Results []QueryResult
}

// FormatText returns a table with TYPE, NAME and VISIBLE columns.
func (q *QueryResults) FormatText() string {
	if len(q.Results) == 0 {
		return ""
	}
	tw := NewTableWriter()
	tw.Header("TYPE", "NAME", "VISIBLE")
	for _, r := range q.Results {
		tw.Row(r.Type, r.Name, yesNo(r.Visible))
	}
	return tw.String()
}

// FormatJSON returns a JSON array.
func (q *QueryResults) FormatJSON() ([]byte, error) {
	return marshalList(q.Results)
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
