package navigation

import "testing"

func TestSequencer_Clamps(t *testing.T) {
	s := NewSequencer(3)
	if s.Prev() || s.Index() != 0 {
		t.Fatalf("prev at 0 must stay at 0, got %d", s.Index())
	}
	s.Next()
	s.Next()
	if s.Index() != 2 || !s.AtEnd() {
		t.Fatalf("expected last index 2, got %d", s.Index())
	}
	if s.Next() || s.Index() != 2 {
		t.Fatalf("next at end must stay, got %d", s.Index())
	}
	if !s.Prev() || s.Index() != 1 {
		t.Fatalf("expected 1, got %d", s.Index())
	}
}

func TestSequencer_Select(t *testing.T) {
	s := NewSequencer(4)
	if !s.Select(9) || s.Index() != 3 {
		t.Fatalf("select beyond end must clamp, got %d", s.Index())
	}
	if !s.Select(-2) || s.Index() != 0 {
		t.Fatalf("select below zero must clamp, got %d", s.Index())
	}
	empty := NewSequencer(0)
	if empty.Next() || empty.Select(1) || empty.Index() != 0 {
		t.Fatalf("empty sequencer must not move")
	}
}
