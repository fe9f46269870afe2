package output

import (
	"strconv"

	"github.com/ivoronin/scenefilter/internal/filter"
)

// FilterEntry is one row of a filter listing.
type FilterEntry struct {
	Name     string `json:"name"`
	Event    string `json:"event"`
	Active   bool   `json:"active"`
	ReadOnly bool   `json:"read_only"`
	Rules    int    `json:"rules"`
}

// FilterList implements Formatter for filter listings. Entries keep the
// order they were added in.
type FilterList struct {
	Entries []FilterEntry
}

// Add appends f.
func (l *FilterList) Add(f filter.View, active bool) {
	l.Entries = append(l.Entries, FilterEntry{
		Name:     f.Name(),
		Event:    f.EventName(),
		Active:   active,
		ReadOnly: f.IsReadOnly(),
		Rules:    len(f.Rules()),
	})
}

// FormatText returns a table with NAME, ACTIVE, READ-ONLY, RULES and EVENT
// columns.
func (l *FilterList) FormatText() string {
	if len(l.Entries) == 0 {
		return ""
	}
	tw := NewTableWriter()
	tw.Header("NAME", "ACTIVE", "READ-ONLY", "RULES", "EVENT")
	for _, e := range l.Entries {
		tw.Row(e.Name, yesNo(e.Active), yesNo(e.ReadOnly), strconv.Itoa(e.Rules), e.Event)
	}
	return tw.String()
}

// FormatJSON returns a JSON array.
func (l *FilterList) FormatJSON() ([]byte, error) {
	return marshalList(l.Entries)
}

// RuleEntry is one rule of a filter.
type RuleEntry struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Match  string `json:"match"`
}

// RuleList implements Formatter for the rules of one filter.
type RuleList struct {
	Filter string
	Rules  []RuleEntry
}

// NewRuleList converts rules for display.
func NewRuleList(name string, rules filter.Rules) *RuleList {
	l := &RuleList{Filter: name, Rules: make([]RuleEntry, 0, len(rules))}
	for _, r := range rules {
		l.Rules = append(l.Rules, RuleEntry{
			Action: r.Action(),
			Type:   r.TypeString(),
			Key:    r.EntityKey(),
			Match:  r.Match(),
		})
	}
	return l
}

// FormatText returns a numbered table in evaluation order.
func (l *RuleList) FormatText() string {
	if len(l.Rules) == 0 {
		return ""
	}
	tw := NewTableWriter()
	tw.Header("#", "ACTION", "TYPE", "KEY", "MATCH")
	for i, r := range l.Rules {
		tw.Row(strconv.Itoa(i+1), r.Action, r.Type, r.Key, r.Match)
	}
	return tw.String()
}

// FormatJSON returns {"filter": ..., "rules": [...]}.
func (l *RuleList) FormatJSON() ([]byte, error) {
	return marshalIndent(struct {
		Filter string      `json:"filter"`
		Rules  []RuleEntry `json:"rules"`
	}{l.Filter, l.Rules})
}

// GroupEntry is one filter group.
type GroupEntry struct {
	Name    string   `json:"name"`
	Active  bool     `json:"active"`
	Filters []string `json:"filters"`
}

// GroupList implements Formatter for filter groups.
type GroupList struct {
	Entries []GroupEntry
}

// FormatText returns a table with NAME, ACTIVE and FILTERS columns.
func (l *GroupList) FormatText() string {
	if len(l.Entries) == 0 {
		return ""
	}
	tw := NewTableWriter()
	tw.Header("NAME", "ACTIVE", "FILTERS")
	for _, e := range l.Entries {
		tw.Row(e.Name, yesNo(e.Active), joinNames(e.Filters))
	}
	return tw.String()
}

// FormatJSON returns a JSON array.
func (l *GroupList) FormatJSON() ([]byte, error) {
	return marshalList(l.Entries)
}
