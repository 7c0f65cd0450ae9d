package retsu

import (
	"errors"
	"slices"
	"testing"
)

// go test -run ^TestCombinations2$ . -count 1
func TestCombinations2(t *testing.T) {
	left, right, err := Combinations2([]*Indices{NewIndices(5, 6, 7), NewIndices(0, 1, 2)})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2][]uint32{
		{{5, 5, 6}, {6, 7, 7}},
		{{0, 0, 1}, {1, 2, 2}},
	}
	for k := range want {
		l, _ := left[k].Slots()
		r, _ := right[k].Slots()
		if !slices.Equal(l, want[k][0]) || !slices.Equal(r, want[k][1]) {
			t.Errorf("row %d: got %v / %v", k, l, r)
		}
	}

	t.Run("fewer than two rows", func(t *testing.T) {
		left, right, err := Combinations2([]*Indices{NewIndices(3)})
		if err != nil {
			t.Fatal(err)
		}
		if n, _ := left[0].Len(); n != 0 {
			t.Errorf("expected no pairs, got %d", n)
		}
		if n, _ := right[0].Len(); n != 0 {
			t.Errorf("expected no pairs, got %d", n)
		}
	})

	t.Run("misaligned", func(t *testing.T) {
		if _, _, err := Combinations2([]*Indices{NewIndices(1, 2), NewIndices(1)}); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("expected ErrShapeMismatch, got %v", err)
		}
	})
}
