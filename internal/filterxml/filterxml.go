// Package filterxml reads and writes filters, filter groups and whole filter
// documents in the editor's XML format.
package filterxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/version"
)

// Element names.
const (
	ElemDocument  = "filtersystem"
	ElemFilter    = "filter"
	ElemCriterion = "filterCriterion"
	ElemGroup     = "filterGroup"
	ElemActive    = "activeFilter"
)

// CriterionElement is one <filterCriterion>.
type CriterionElement struct {
	Type   string `xml:"type,attr"`
	Match  string `xml:"match,attr"`
	Action string `xml:"action,attr"`
	Key    string `xml:"key,attr,omitempty"`
}

// FilterElement is one <filter name="...">.
type FilterElement struct {
	XMLName  xml.Name           `xml:"filter"`
	Name     string             `xml:"name,attr"`
	Criteria []CriterionElement `xml:"filterCriterion"`
}

// GroupElement is one <filterGroup name="...">.
type GroupElement struct {
	XMLName xml.Name `xml:"filterGroup"`
	Name    string   `xml:"name,attr"`
	Filters []string `xml:"filters>filter"`
}

// ActiveElement names a filter that starts out active.
type ActiveElement struct {
	Name string `xml:"name,attr"`
}

// Document is the <filtersystem> root holding a set of filter definitions.
type Document struct {
	XMLName xml.Name        `xml:"filtersystem"`
	Version string          `xml:"version,attr,omitempty"`
	Filters []FilterElement `xml:"filter"`
	Groups  []GroupElement  `xml:"filterGroup"`
	Active  []ActiveElement `xml:"activeFilter"`
}

// ActiveNames returns the names listed in <activeFilter> elements.
func (d *Document) ActiveNames() []string {
	names := make([]string, 0, len(d.Active))
	for _, a := range d.Active {
		names = append(names, a.Name)
	}
	return names
}

// FilterFromElement builds a filter from its XML element. Any bad criterion
// fails the whole filter.
func FilterFromElement(el FilterElement, readOnly bool, opts ...filter.Option) (*filter.Filter, error) {
	rules := make(filter.Rules, 0, len(el.Criteria))
	for i, c := range el.Criteria {
		r, err := ruleFromCriterion(c)
		if err != nil {
			return nil, fmt.Errorf("filter %q criterion %d: %w", el.Name, i+1, err)
		}
		rules = append(rules, r)
	}
	f, err := filter.NewWithRules(el.Name, readOnly, rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", el.Name, err)
	}
	return f, nil
}

func ruleFromCriterion(c CriterionElement) (filter.Rule, error) {
	kind, err := filter.ParseKind(c.Type)
	if err != nil {
		return filter.Rule{}, err
	}
	show, err := filter.ParseAction(strings.ToLower(c.Action))
	if err != nil {
		return filter.Rule{}, err
	}
	return filter.RuleFor(kind, c.Match, c.Key, show)
}

// ElementFromFilter converts a filter to its XML element.
func ElementFromFilter(f *filter.Filter) FilterElement {
	rules := f.Rules()
	el := FilterElement{Name: f.Name(), Criteria: make([]CriterionElement, 0, len(rules))}
	for _, r := range rules {
		el.Criteria = append(el.Criteria, CriterionElement{
			Type:   r.TypeString(),
			Match:  r.Match(),
			Action: r.Action(),
			Key:    r.EntityKey(),
		})
	}
	return el
}

// GroupFromElement builds a group from its XML element.
func GroupFromElement(el GroupElement) (*filter.Group, error) {
	if el.Name == "" {
		return nil, fmt.Errorf("%w: filter group without a name", filter.ErrMalformed)
	}
	return filter.NewGroup(el.Name, el.Filters...), nil
}

// ElementFromGroup converts a group to its XML element.
func ElementFromGroup(g *filter.Group) GroupElement {
	return GroupElement{Name: g.Name(), Filters: g.FilterNames()}
}

// DecodeFilter reads a single <filter> element.
func DecodeFilter(r io.Reader, readOnly bool, opts ...filter.Option) (*filter.Filter, error) {
	var el FilterElement
	if err := decodeRoot(r, ElemFilter, &el); err != nil {
		return nil, err
	}
	return FilterFromElement(el, readOnly, opts...)
}

// EncodeFilter writes f as a single indented <filter> element.
func EncodeFilter(w io.Writer, f *filter.Filter) error {
	return encode(w, ElementFromFilter(f))
}

// DecodeGroup reads a single <filterGroup> element. Any other root element
// is reported as ErrMalformed.
func DecodeGroup(r io.Reader) (*filter.Group, error) {
	var el GroupElement
	if err := decodeRoot(r, ElemGroup, &el); err != nil {
		return nil, err
	}
	return GroupFromElement(el)
}

// EncodeGroup writes g as a single indented <filterGroup> element.
func EncodeGroup(w io.Writer, g *filter.Group) error {
	return encode(w, ElementFromGroup(g))
}

// ReadDocument reads a <filtersystem> document and checks its version.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := decodeRoot(r, ElemDocument, &doc); err != nil {
		return nil, err
	}
	if err := version.Check(doc.Version); err != nil {
		return nil, fmt.Errorf("%w: %w", filter.ErrMalformed, err)
	}
	return &doc, nil
}

// WriteDocument writes doc with an XML header, stamping the current format
// version.
func WriteDocument(w io.Writer, doc *Document) error {
	doc.Version = version.Current
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return encode(w, doc)
}

func encode(w io.Writer, v any) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// decodeRoot checks the name of the first element before decoding it into v
// so a mismatched root reports ErrMalformed instead of a generic error.
func decodeRoot(r io.Reader, want string, v any) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("%w: no <%s> element", filter.ErrMalformed, want)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", filter.ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != want {
			return fmt.Errorf("%w: root element is <%s>, want <%s>", filter.ErrMalformed, start.Name.Local, want)
		}
		if err := dec.DecodeElement(v, &start); err != nil {
			return fmt.Errorf("%w: %w", filter.ErrMalformed, err)
		}
		return nil
	}
}
