package filter

// Verdict tests a named item of the given kind. matched is false when no
// rule of that kind matched, in which case visible is the default (true).
// All rules are scanned: a later match overrides an earlier one, so "show"
// rules can re-reveal items hidden further up the list.
func (f *Filter) Verdict(kind Kind, name string) (visible, matched bool) {
	visible = true
	for _, r := range f.rules {
		if r.kind != kind {
			continue
		}
		if f.matcher.Match(r.match, name) {
			visible = r.show
			matched = true
		}
	}
	return visible, matched
}

// EntityVerdict tests an entity against the entity class and spawnarg
// rules. Other rule kinds do not take part.
func (f *Filter) EntityVerdict(e Entity) (visible, matched bool) {
	visible = true
	for _, r := range f.rules {
		var subject string
		switch r.kind {
		case KindEntityClass:
			subject = e.ClassName()
		case KindSpawnarg:
			subject = e.KeyValue(r.entityKey)
		default:
			continue
		}
		if f.matcher.Match(r.match, subject) {
			visible = r.show
			matched = true
		}
	}
	return visible, matched
}

// IsVisible reports whether a named item of the given kind passes this
// filter. Items are visible unless a rule says otherwise.
func (f *Filter) IsVisible(kind Kind, name string) bool {
	visible, _ := f.Verdict(kind, name)
	return visible
}

// IsEntityVisible reports whether e passes this filter.
func (f *Filter) IsEntityVisible(e Entity) bool {
	visible, _ := f.EntityVerdict(e)
	return visible
}
