package buffer

import "testing"

func TestNew(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}

	if New(-1).Len() != 0 {
		t.Fatal("negative length should give an empty buffer")
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSlice(s)
	b.Samples()[0] = 99
	if s[0] != 99 {
		t.Fatal("FromSlice should share underlying memory")
	}
}

func TestResize(t *testing.T) {
	b := New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(2)
	if b.Len() != 2 || b.Cap() != 4 {
		t.Fatalf("shrink: len=%d cap=%d", b.Len(), b.Cap())
	}

	// Stale data in reused capacity must not reappear.
	b.Resize(4)
	want := []float64{1, 2, 0, 0}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("Samples()[%d] = %v, want %v", i, v, want[i])
		}
	}

	b.Resize(10)
	if b.Len() != 10 || b.Samples()[1] != 2 || b.Samples()[9] != 0 {
		t.Fatalf("grow: %v", b.Samples())
	}

	b.Resize(-3)
	if b.Len() != 0 {
		t.Fatalf("Resize(-3) len = %d", b.Len())
	}
}

func TestLoadAndZero(t *testing.T) {
	b := New(16)
	b.Load([]float64{5, 6, 7})
	if b.Len() != 3 || b.Samples()[2] != 7 {
		t.Fatalf("Load: %v", b.Samples())
	}
	if b.Cap() != 16 {
		t.Fatalf("Load should reuse capacity, cap=%d", b.Cap())
	}

	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v after Zero", i, v)
		}
	}
}
