package randutil

import "testing"

// scriptedSource replays a fixed sequence of draws.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestChooseThresholds(t *testing.T) {
	options := []Weighted[string]{
		{Option: "a", Weight: 20},
		{Option: "b", Weight: 80},
	}

	cases := []struct {
		draw int
		want string
	}{
		{0, "a"},
		{19, "a"},
		{20, "b"},
		{99, "b"},
	}
	for _, tc := range cases {
		got, ok := Choose(options, &scriptedSource{ints: []int{tc.draw}})
		if !ok || got != tc.want {
			t.Errorf("draw %d: got %q ok=%v, want %q", tc.draw, got, ok, tc.want)
		}
	}
}

func TestChooseSkipsNonPositiveWeights(t *testing.T) {
	options := []Weighted[string]{
		{Option: "dead", Weight: 0},
		{Option: "neg", Weight: -5},
		{Option: "live", Weight: 1},
	}
	got, ok := Choose(options, &scriptedSource{ints: []int{0}})
	if !ok || got != "live" {
		t.Fatalf("got %q ok=%v, want live", got, ok)
	}
}

func TestChooseAllZeroWeights(t *testing.T) {
	options := []Weighted[string]{{Option: "a", Weight: 0}}
	if _, ok := Choose(options, &scriptedSource{}); ok {
		t.Fatal("zero total weight must report no choice")
	}
}

func TestPick(t *testing.T) {
	items := []int{10, 20, 30}
	got, ok := Pick(items, &scriptedSource{ints: []int{2}})
	if !ok || got != 30 {
		t.Fatalf("got %d ok=%v, want 30", got, ok)
	}
	if _, ok := Pick([]int{}, &scriptedSource{}); ok {
		t.Fatal("empty slice must report no pick")
	}
}
