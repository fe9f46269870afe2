package filter

import (
	"errors"
	"testing"
)

func TestNewFilter(t *testing.T) {
	f := New("StuffToHide", false)
	if f.Name() != "StuffToHide" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.EventName() != "FilterStuffToHide" {
		t.Errorf("EventName() = %q", f.EventName())
	}
	if f.IsReadOnly() {
		t.Error("filter should not be read-only")
	}
	if len(f.Rules()) != 0 {
		t.Errorf("rules = %d, want 0", len(f.Rules()))
	}

	if !New("ROFilter", true).IsReadOnly() {
		t.Error("filter should be read-only")
	}
}

func TestEventName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Hide Lights", "FilterHideLights"},
		{"My Filter", "FilterMyFilter"},
		{"collisions", "Filtercollisions"},
		{"  spaced  out ", "Filterspacedout"},
		{"", "Filter"},
	}
	for _, tt := range tests {
		if got := EventName(tt.name); got != tt.want {
			t.Errorf("EventName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenameFilter(t *testing.T) {
	f := New("OriginalName", false)
	if err := f.SetName("Adjusted Name"); err != nil {
		t.Fatal(err)
	}
	if f.Name() != "Adjusted Name" {
		t.Errorf("Name() = %q", f.Name())
	}
	if f.EventName() != "FilterAdjustedName" {
		t.Errorf("EventName() = %q", f.EventName())
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	f := New("Copy", false)
	_ = f.AddRule(TextureQuery{"a"}, false)

	rules := f.Rules()
	rules[0] = MustRule(TextureQuery{"b"}, true)

	if f.Rules()[0].Match() != "a" {
		t.Error("mutating the returned slice changed the filter")
	}
}

func TestSetRulesIsAtomic(t *testing.T) {
	f := New("Atomic", false)
	_ = f.AddRule(TextureQuery{"keep"}, false)

	bad := Rules{MustRule(TextureQuery{"new"}, false), {kind: KindSpawnarg, match: "1"}}
	if err := f.SetRules(bad); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("SetRules error = %v, want ErrInvalidRule", err)
	}
	if got := f.Rules(); len(got) != 1 || got[0].Match() != "keep" {
		t.Errorf("rules changed after failed SetRules: %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New("Orig", false)
	_ = f.AddRule(TextureQuery{"a"}, false)

	c := f.Clone()
	if err := c.SetName("Other"); err != nil {
		t.Fatal(err)
	}
	_ = c.AddRule(TextureQuery{"b"}, false)

	if f.Name() != "Orig" || f.EventName() != "FilterOrig" {
		t.Errorf("original renamed: %q / %q", f.Name(), f.EventName())
	}
	if len(f.Rules()) != 1 {
		t.Errorf("original rules = %d, want 1", len(f.Rules()))
	}
}

func TestWithMatcherSharesCache(t *testing.T) {
	m := NewMatcher(8, 0, nil)
	a := New("A", false, WithMatcher(m))
	b, err := NewWithRules("B", false, Rules{MustRule(TextureQuery{"x"}, false)}, WithMatcher(m))
	if err != nil {
		t.Fatal(err)
	}
	_ = a.AddRule(TextureQuery{"x"}, false)

	a.IsVisible(KindTexture, "x")
	b.IsVisible(KindTexture, "x")
	if m.Cached() != 1 {
		t.Errorf("Cached() = %d, want 1 shared entry", m.Cached())
	}

	// nil leaves the private default in place
	if New("C", false, WithMatcher(nil)).matcher == nil {
		t.Error("filter without matcher")
	}
}

func TestNewWithRulesValidates(t *testing.T) {
	_, err := NewWithRules("Bad", true, Rules{{kind: KindTexture, match: "[z-a]"}})
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *PatternError", err)
	}
}

func TestGroup(t *testing.T) {
	g := NewGroup("testGroup", "Lights", "Brushes", "Lights")
	if g.Name() != "testGroup" {
		t.Errorf("Name() = %q", g.Name())
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if !g.Contains("Lights") || !g.Contains("Brushes") || g.Contains("NotIncluded") {
		t.Error("unexpected membership")
	}
	names := g.FilterNames()
	if names[0] != "Brushes" || names[1] != "Lights" {
		t.Errorf("FilterNames() = %v, want sorted", names)
	}
}
