package arith

import (
	"slices"
	"testing"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{12, 8, 4},
		{8, 12, 4},
		{7, 3, 1},
		{-12, 8, 4},
		{12, -8, 4},
		{0, 5, 5},
		{5, 0, 5},
		{18, 18, 18},
	}

	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLCM(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{4, 10, 20},
		{6, 10, 30},
		{6, 8, 24},
		{8, 12, 24},
		{9, 6, 18},
		{10, 12, 60},
		{5, 5, 5},
		{2, 8, 8},
		{-4, 6, 12},
	}

	for _, tt := range tests {
		if got := LCM(tt.a, tt.b); got != tt.want {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		n, d int
		want Fraction
	}{
		{6, 8, Fraction{3, 4}},
		{2, 4, Fraction{1, 2}},
		{3, 5, Fraction{3, 5}},
		{10, 5, Fraction{2, 1}},
		{0, 7, Fraction{0, 1}},
	}

	for _, tt := range tests {
		got := Simplify(tt.n, tt.d)
		if got != tt.want {
			t.Errorf("Simplify(%d, %d) = %v, want %v", tt.n, tt.d, got, tt.want)
		}
		if !got.IsReduced() {
			t.Errorf("Simplify(%d, %d) = %v is not reduced", tt.n, tt.d, got)
		}
	}
}

func TestFractionHelpers(t *testing.T) {
	f := Fraction{N: 3, D: 4}
	if f.String() != "3/4" {
		t.Errorf("String() = %q, want %q", f.String(), "3/4")
	}
	if f.Value() != 0.75 {
		t.Errorf("Value() = %v, want 0.75", f.Value())
	}
	if got := f.Scale(3); got != (Fraction{9, 12}) {
		t.Errorf("Scale(3) = %v, want 9/12", got)
	}
	if (Fraction{9, 12}).IsReduced() {
		t.Error("9/12 should not be reduced")
	}
}

func TestRandIntBounds(t *testing.T) {
	src := NewSource(42)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := RandInt(src, -3, 3)
		if n < -3 || n > 3 {
			t.Fatalf("RandInt(-3, 3) = %d, out of range", n)
		}
		seen[n] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 values to appear, saw %d", len(seen))
	}

	if got := RandInt(src, 5, 5); got != 5 {
		t.Errorf("RandInt(5, 5) = %d, want 5", got)
	}
}

func TestNewSourceDeterministic(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for i := 0; i < 50; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	src := NewSource(3)
	items := []int{1, 2, 3, 4, 5, 6}
	Shuffle(src, items)

	sorted := slices.Clone(items)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Shuffle lost or duplicated elements: %v", items)
	}
}

func TestPick(t *testing.T) {
	src := NewSource(11)
	pool := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		if got := Pick(src, pool); !slices.Contains(pool, got) {
			t.Fatalf("Pick returned %q, not in pool", got)
		}
	}
}
