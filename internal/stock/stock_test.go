package stock

import (
	"testing"

	"github.com/ivoronin/scenefilter/internal/filterxml"
)

var expectedFilters = []string{
	"All entities",
	"Brushes",
	"Caulk",
	"Clip Textures",
	"Collision surfaces",
	"Decals",
	"Func_static Entities",
	"Lights",
	"Location Entities",
	"Nodraw Textures",
	"Patches",
	"Paths",
	"Player Start Entity",
	"Shadow Textures",
	"Sky Portals",
	"Trigger Textures",
	"Visportals",
	"Weather Textures",
	"World geometry",
}

func TestStockFiltersParse(t *testing.T) {
	doc := Document()
	names := make(map[string]bool)
	for _, el := range doc.Filters {
		f, err := filterxml.FilterFromElement(el, true)
		if err != nil {
			t.Errorf("filter %q: %v", el.Name, err)
			continue
		}
		if names[f.Name()] {
			t.Errorf("duplicate stock filter %q", f.Name())
		}
		names[f.Name()] = true
	}

	if len(names) != len(expectedFilters) {
		t.Errorf("got %d stock filters, want %d", len(names), len(expectedFilters))
	}
	for _, n := range expectedFilters {
		if !names[n] {
			t.Errorf("missing stock filter %q", n)
		}
	}
}

func TestStockGroupsReferenceStockFilters(t *testing.T) {
	known := make(map[string]bool)
	for _, el := range Document().Filters {
		known[el.Name] = true
	}
	for _, g := range Document().Groups {
		for _, member := range g.Filters {
			if !known[member] {
				t.Errorf("group %q references unknown filter %q", g.Name, member)
			}
		}
	}
}

func TestDocumentReturnsCopy(t *testing.T) {
	a := Document()
	a.Filters[0].Name = "changed"
	if Document().Filters[0].Name == "changed" {
		t.Error("Document shares its filter slice")
	}
}
