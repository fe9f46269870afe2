package material

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry("textures/b", "textures/a")
	r.Capture("textures/a")

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if got := r.Names(); got[0] != "textures/a" || got[1] != "textures/b" {
		t.Errorf("Names() = %v", got)
	}

	r.SetVisible("textures/a", false)
	r.SetVisible("textures/unknown", false)

	if r.IsVisible("textures/a") {
		t.Error("textures/a should be hidden")
	}
	if !r.IsVisible("textures/b") || !r.IsVisible("textures/unknown") {
		t.Error("other shaders should stay visible")
	}
	if got := r.Hidden(); len(got) != 1 || got[0] != "textures/a" {
		t.Errorf("Hidden() = %v", got)
	}
	if r.Len() != 2 {
		t.Error("SetVisible must not register unknown shaders")
	}
}
