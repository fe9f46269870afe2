package filter

import (
	"fmt"
	"strings"
)

// EventPrefix is prepended to a filter's name to form its event name.
const EventPrefix = "Filter"

// Filter is a named, ordered list of rules. It corresponds to one entry of
// the editor's Filters menu and evaluates visibility without any knowledge
// of the scene.
type Filter struct {
	name      string
	eventName string
	rules     Rules
	readOnly  bool
	matcher   *Matcher
}

// View is the read-only side of a Filter.
type View interface {
	Name() string
	EventName() string
	IsReadOnly() bool
	Rules() Rules
	IsVisible(kind Kind, name string) bool
	IsEntityVisible(e Entity) bool
}

// Option configures a Filter at construction.
type Option func(*Filter)

// WithMatcher evaluates the filter's patterns with m, sharing its cache.
func WithMatcher(m *Matcher) Option {
	return func(f *Filter) {
		if m != nil {
			f.matcher = m
		}
	}
}

// New returns an empty filter. Stock filters loaded from game definitions
// are read-only; user filters are not. Without WithMatcher the filter gets
// a private Matcher with default limits.
func New(name string, readOnly bool, opts ...Option) *Filter {
	f := &Filter{
		name:      name,
		eventName: EventName(name),
		readOnly:  readOnly,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.matcher == nil {
		f.matcher = NewMatcher(0, 0, nil)
	}
	return f
}

// NewWithRules returns a filter holding a copy of rules. It is how both
// read-only and user filters are built from persisted definitions.
func NewWithRules(name string, readOnly bool, rules Rules, opts ...Option) (*Filter, error) {
	if err := validateRules(rules); err != nil {
		return nil, fmt.Errorf("filter %q: %w", name, err)
	}
	f := New(name, readOnly, opts...)
	f.rules = append(Rules(nil), rules...)
	return f, nil
}

// EventName derives the toggle event name for a filter name: all spaces are
// removed and EventPrefix is prepended ("Hide Lights" -> "FilterHideLights").
func EventName(name string) string {
	return EventPrefix + strings.ReplaceAll(name, " ", "")
}

func (f *Filter) Name() string { return f.name }

// EventName returns the name of the toggle event bound to this filter.
func (f *Filter) EventName() string { return f.eventName }

func (f *Filter) IsReadOnly() bool { return f.readOnly }

// Rules returns a copy of the rule list.
func (f *Filter) Rules() Rules { return append(Rules(nil), f.rules...) }

// Clone returns an independent copy. Only the Matcher is shared.
func (f *Filter) Clone() *Filter {
	c := *f
	c.rules = f.Rules()
	return &c
}

// SetName renames the filter and recomputes its event name.
func (f *Filter) SetName(name string) error {
	if f.readOnly {
		return fmt.Errorf("rename %q: %w", f.name, ErrReadOnly)
	}
	f.name = name
	f.eventName = EventName(name)
	return nil
}

// AddRule appends a rule built from query.
func (f *Filter) AddRule(query Query, show bool) error {
	if f.readOnly {
		return fmt.Errorf("add rule to %q: %w", f.name, ErrReadOnly)
	}
	r, err := NewRule(query, show)
	if err != nil {
		return err
	}
	f.rules = append(f.rules, r)
	return nil
}

// SetRules replaces the whole rule list. Nothing changes if any rule is
// invalid.
func (f *Filter) SetRules(rules Rules) error {
	if f.readOnly {
		return fmt.Errorf("set rules of %q: %w", f.name, ErrReadOnly)
	}
	if err := validateRules(rules); err != nil {
		return err
	}
	f.rules = append(Rules(nil), rules...)
	return nil
}

func validateRules(rules Rules) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	return nil
}
