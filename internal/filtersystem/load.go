package filtersystem

import (
	"errors"
	"fmt"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/filterxml"
	"github.com/ivoronin/scenefilter/internal/version"
)

// Load registers the filters and groups of doc and activates its active
// filters. Invalid or conflicting definitions are skipped and reported in
// the returned error; everything else is still loaded.
func (s *System) Load(doc *filterxml.Document, readOnly bool) error {
	if version.Newer(doc.Version) {
		s.log.Info("filter document uses a newer format; unknown content is ignored", "version", doc.Version)
	}
	var errs []error
	added := 0
	for _, el := range doc.Filters {
		f, err := filterxml.FilterFromElement(el, readOnly, filter.WithMatcher(s.matcher))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s.available.has(f.Name()) {
			errs = append(errs, fmt.Errorf("filter %q: %w", f.Name(), filter.ErrNameConflict))
			continue
		}
		s.insert(f)
		added++
	}
	for _, el := range doc.Groups {
		g, err := filterxml.GroupFromElement(el)
		if err == nil {
			err = s.addGroup(g, readOnly)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if added > 0 {
		s.collectionChanged.Emit()
	}

	activated := 0
	for _, name := range doc.ActiveNames() {
		f, ok := s.available.get(name)
		if !ok {
			errs = append(errs, fmt.Errorf("active filter %q: %w", name, filter.ErrNotFound))
			continue
		}
		if !s.active.has(name) {
			s.active.set(name, f)
			activated++
		}
	}
	s.log.Debug("filters loaded", "filters", added, "groups", len(doc.Groups), "activated", activated, "read_only", readOnly)
	if activated > 0 {
		s.configure()
	}
	return errors.Join(errs...)
}

// Export returns a document holding the user filters and groups and the
// names of all active filters.
func (s *System) Export() *filterxml.Document {
	doc := &filterxml.Document{}
	for _, f := range s.available.values() {
		if !f.IsReadOnly() {
			doc.Filters = append(doc.Filters, filterxml.ElementFromFilter(f))
		}
	}
	for p := s.groups.Oldest(); p != nil; p = p.Next() {
		if !p.Value.readOnly {
			doc.Groups = append(doc.Groups, filterxml.ElementFromGroup(p.Value.group))
		}
	}
	for _, name := range s.active.names() {
		doc.Active = append(doc.Active, filterxml.ActiveElement{Name: name})
	}
	return doc
}
