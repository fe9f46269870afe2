package filter

import "fmt"

// Rule is a single show/hide test. Rules are immutable values; use NewRule
// or RuleFor to build one.
type Rule struct {
	kind      Kind
	match     string
	entityKey string // only set for KindSpawnarg
	show      bool
}

// Rules is an ordered rule list. Order is significant: the last matching
// rule decides.
type Rules []Rule

// NewRule builds a rule executing query. show selects whether matches are
// revealed (true) or hidden (false).
func NewRule(query Query, show bool) (Rule, error) {
	switch q := query.(type) {
	case TextureQuery:
		return RuleFor(KindTexture, q.Match, "", show)
	case EntityClassQuery:
		return RuleFor(KindEntityClass, q.Match, "", show)
	case PrimitiveQuery:
		return RuleFor(KindObject, q.Type.String(), "", show)
	case SpawnArgQuery:
		return RuleFor(KindSpawnarg, q.ValueMatch, q.Key, show)
	case nil:
		return Rule{}, fmt.Errorf("%w: nil query", ErrInvalidRule)
	}
	return Rule{}, fmt.Errorf("%w: unsupported query %T", ErrInvalidRule, query)
}

// MustRule is like NewRule but panics on error. Intended for fixed rule
// tables and tests.
func MustRule(query Query, show bool) Rule {
	r, err := NewRule(query, show)
	if err != nil {
		panic(err)
	}
	return r
}

// RuleFor builds a rule from its persisted fields. key must be set for
// KindSpawnarg rules and is ignored otherwise.
func RuleFor(kind Kind, match, key string, show bool) (Rule, error) {
	switch kind {
	case KindTexture, KindEntityClass, KindObject:
		key = ""
	case KindSpawnarg:
		if key == "" {
			return Rule{}, fmt.Errorf("%w: %s rule requires a key", ErrInvalidRule, TypeSpawnarg)
		}
	default:
		return Rule{}, fmt.Errorf("%w: unknown kind %v", ErrInvalidRule, kind)
	}
	if err := ValidatePattern(match); err != nil {
		return Rule{}, err
	}
	return Rule{kind: kind, match: match, entityKey: key, show: show}, nil
}

func (r Rule) Kind() Kind { return r.kind }

// TypeString returns the persisted type name, e.g. "entityclass".
func (r Rule) TypeString() string { return r.kind.String() }

// Match returns the regular expression source.
func (r Rule) Match() string { return r.match }

// EntityKey returns the spawnarg key of a KindSpawnarg rule.
func (r Rule) EntityKey() string { return r.entityKey }

// Show reports whether the rule reveals its matches.
func (r Rule) Show() bool { return r.show }

// Action returns "show" or "hide".
func (r Rule) Action() string {
	if r.show {
		return ActionShow
	}
	return ActionHide
}

// Equal compares rules structurally. The entity key only takes part for
// spawnarg rules.
func (r Rule) Equal(o Rule) bool {
	return r.kind == o.kind && r.match == o.match && r.show == o.show &&
		(r.kind != KindSpawnarg || r.entityKey == o.entityKey)
}

// Validate checks a rule value that did not come from RuleFor, such as the
// zero Rule.
func (r Rule) Validate() error {
	_, err := RuleFor(r.kind, r.match, r.entityKey, r.show)
	return err
}

// Equal reports whether both lists hold equal rules in the same order.
func (rs Rules) Equal(o Rules) bool {
	if len(rs) != len(o) {
		return false
	}
	for i := range rs {
		if !rs[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Actions as persisted in filter definitions.
const (
	ActionShow = "show"
	ActionHide = "hide"
)

// ParseAction converts "show"/"hide" into a show flag.
func ParseAction(s string) (bool, error) {
	switch s {
	case ActionShow:
		return true, nil
	case ActionHide:
		return false, nil
	}
	return false, fmt.Errorf("%w: unknown action %q", ErrInvalidRule, s)
}
