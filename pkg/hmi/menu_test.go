package hmi

import "testing"

func TestMenu_AdvanceWrapsAfterEightItems(t *testing.T) {
	var m Menu
	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		seen[m.Current().label] = true
		m.Advance()
	}
	if len(seen) != 8 {
		t.Fatalf("saw %d distinct items, want 8", len(seen))
	}
	if m.Current().label != menuItems[0].label {
		t.Fatalf("after 8 advances cursor should wrap to item 0, got %q", m.Current().label)
	}
}

func TestMenu_LastItemIsExit(t *testing.T) {
	var m Menu
	for i := 0; i < 7; i++ {
		m.Advance()
	}
	if !m.IsExit() {
		t.Fatal("the 8th menu item must be Exit")
	}
}

func TestMenu_Reset(t *testing.T) {
	var m Menu
	m.Advance()
	m.Advance()
	m.Reset()
	if m.Current().label != menuItems[0].label {
		t.Fatal("Reset should return the cursor to item 0")
	}
}
