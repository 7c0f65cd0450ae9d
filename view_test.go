package retsu

import (
	"errors"
	"slices"
	"testing"
)

// go test -run ^TestViewGet$ . -count 1
func TestViewGet(t *testing.T) {
	c := FromBuffer([]int32{10, 20, 30})
	v := c.ViewOf(NewIndices(2, 0))
	if n, _ := v.Len(); n != 2 {
		t.Fatalf("expected length 2, got %d", n)
	}
	if got, err := v.Get(0); err != nil || got != 30 {
		t.Errorf("expected 30, got %d (%v)", got, err)
	}
	if _, err := v.Get(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	stale := c.ViewOf(NewIndices(5))
	if _, err := stale.Get(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for a slot past capacity, got %v", err)
	}
}

// go test -run ^TestViewSharedIndices$ . -count 1
func TestViewSharedIndices(t *testing.T) {
	c := FromBuffer([]float64{1, 2, 3, 4})
	x := seqIndices(0, 2, 4)
	a := c.ViewOf(x)
	b := c.ViewOf(x)
	if err := x.extend(2, 1); err != nil {
		t.Fatal(err)
	}
	na, _ := a.Len()
	nb, _ := b.Len()
	if na != 3 || nb != 3 {
		t.Errorf("expected both views to see 3 positions, got %d and %d", na, nb)
	}
	if err := a.Fill(Scalar(9.0)); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Values()
	if !slices.Equal(got, []float64{9, 9, 9}) {
		t.Errorf("unexpected values %v", got)
	}
}

// go test -run ^TestViewMaskAssign$ . -count 1
func TestViewMaskAssign(t *testing.T) {
	v := FromBuffer([]float32{1, 2, 3, 4}).View()
	lt, err := Lt(v, Scalar[float32](3))
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Assign(Where(lt), Scalar[float32](0)); err != nil {
		t.Fatal(err)
	}
	got, _ := v.Values()
	if !slices.Equal(got, []float32{0, 0, 3, 4}) {
		t.Errorf("expected [0 0 3 4], got %v", got)
	}
}

// go test -run ^TestViewAliasedAssign$ . -count 1
func TestViewAliasedAssign(t *testing.T) {
	t.Run("reverse over forward", func(t *testing.T) {
		v := FromBuffer([]int32{1, 2, 3, 4}).View()
		rev, _ := v.Slice(Reversed())
		fwd, _ := v.Slice(All())
		if err := rev.Fill(fwd); err != nil {
			t.Fatal(err)
		}
		got, _ := v.Values()
		if !slices.Equal(got, []int32{4, 3, 2, 1}) {
			t.Errorf("expected [4 3 2 1], got %v", got)
		}
	})

	t.Run("shifted overlap", func(t *testing.T) {
		v := FromBuffer([]int32{1, 2, 3, 4}).View()
		if err := v.Assign(Span(1, 4), v.Column().ViewOf(NewIndices(0, 1, 2))); err != nil {
			t.Fatal(err)
		}
		got, _ := v.Values()
		if !slices.Equal(got, []int32{1, 1, 2, 3}) {
			t.Errorf("expected [1 1 2 3], got %v", got)
		}
	})

	t.Run("aliased arithmetic", func(t *testing.T) {
		v := FromBuffer([]int32{1, 2, 3, 4}).View()
		rev, _ := v.Slice(Reversed())
		if err := IAdd(v, Operand[int32](rev)); err != nil {
			t.Fatal(err)
		}
		got, _ := v.Values()
		if !slices.Equal(got, []int32{5, 5, 5, 5}) {
			t.Errorf("expected [5 5 5 5], got %v", got)
		}
	})
}

// go test -run ^TestViewShapeMismatch$ . -count 1
func TestViewShapeMismatch(t *testing.T) {
	v := FromBuffer([]int32{1, 2, 3}).View()
	if err := v.Fill(Buffer[int32]{1, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	other := FromBuffer([]int32{1, 2, 3, 4}).View()
	if err := v.Fill(other); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	got, _ := v.Values()
	if !slices.Equal(got, []int32{1, 2, 3}) {
		t.Errorf("a rejected assignment must not write, got %v", got)
	}
}

// go test -run ^TestViewAssignFrom$ . -count 1
func TestViewAssignFrom(t *testing.T) {
	v := NewColumn[int8](4).View()
	if err := AssignFrom[int8, float64](v, All(), Buffer[float64]{300.7, -1e9, 3.9, -3.9}); err != nil {
		t.Fatal(err)
	}
	got, _ := v.Values()
	if !slices.Equal(got, []int8{127, -128, 3, -3}) {
		t.Errorf("expected saturating truncation, got %v", got)
	}
}

// go test -run ^TestViewObjects$ . -count 1
func TestViewObjects(t *testing.T) {
	c := NewColumn[Object](3)
	v := c.View()
	if _, err := v.Get(0); !errors.Is(err, ErrInvalidObject) {
		t.Errorf("expected ErrInvalidObject, got %v", err)
	}
	name := "agent"
	if err := c.Write(1, NewObject(&name)); err != nil {
		t.Fatal(err)
	}
	one, _ := v.Slice(Positions{1})
	got, err := one.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if ref, ok := got.Value(); !ok || ref.(*string) != &name {
		t.Errorf("unexpected object %v", ref)
	}
	if _, err := v.Values(); !errors.Is(err, ErrInvalidObject) {
		t.Errorf("expected ErrInvalidObject, got %v", err)
	}
}
