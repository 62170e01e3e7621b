package model

import "testing"

func TestParseZoomPercent(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"150", 150, true},
		{" 75% ", 75, true},
		{"120.6\n", 121, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseZoomPercent(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseZoomPercent(%q) = %d,%v want %d,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
