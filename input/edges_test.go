package input

import "testing"

func held(actions ...Action) func(Action) bool {
	return func(a Action) bool {
		for _, h := range actions {
			if h == a {
				return true
			}
		}
		return false
	}
}

func TestJustPressedFiresOnce(t *testing.T) {
	var e Edges

	frames := []struct {
		down    bool
		pressed bool
	}{
		{false, false},
		{true, true},
		{true, false},
		{true, false},
		{false, false},
		{true, true},
	}

	for i, f := range frames {
		if f.down {
			e.Update(held(ToggleBloom))
		} else {
			e.Update(held())
		}
		if got := e.JustPressed(ToggleBloom); got != f.pressed {
			t.Errorf("frame %d: expected JustPressed=%v, got %v", i, f.pressed, got)
		}
		if e.Down(ToggleBloom) != f.down {
			t.Errorf("frame %d: expected Down=%v", i, f.down)
		}
	}
}

func TestToggleLatch(t *testing.T) {
	var e Edges
	bloom := true

	// Holding for many frames toggles exactly once
	for i := 0; i < 30; i++ {
		e.Update(held(ToggleBloom))
		if e.JustPressed(ToggleBloom) {
			bloom = !bloom
		}
	}
	if bloom {
		t.Error("expected bloom toggled off once")
	}

	e.Update(held())
	if e.Down(ToggleBloom) || e.JustPressed(ToggleBloom) {
		t.Error("released key should be neither down nor pressed")
	}
	e.Update(held(ToggleBloom))
	if e.JustPressed(ToggleBloom) {
		bloom = !bloom
	}
	if !bloom {
		t.Error("expected bloom toggled back on")
	}
}

func TestActionsIndependent(t *testing.T) {
	var e Edges
	e.Update(held(ToggleHDR))
	e.Update(held(ToggleHDR, ToggleBloom))

	if e.JustPressed(ToggleHDR) {
		t.Error("HDR was already held")
	}
	if !e.JustPressed(ToggleBloom) {
		t.Error("bloom just went down")
	}
}

func TestClear(t *testing.T) {
	var e Edges
	e.Update(held(Quit))
	e.Clear()
	if e.Down(Quit) || e.JustPressed(Quit) {
		t.Error("expected no state after Clear")
	}
}

func TestActionNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Actions() {
		name := a.String()
		if name == "" || name == "unknown" {
			t.Errorf("action %d has no name", a)
		}
		if seen[name] {
			t.Errorf("duplicate action name %q", name)
		}
		seen[name] = true
	}
	if Action(200).String() != "unknown" {
		t.Error("out of range action should be unknown")
	}
}
