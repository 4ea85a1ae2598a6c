package buffer

import "testing"

func TestPoolGetReturnsZeroed(t *testing.T) {
	p := NewPool()

	b := p.Get(4)
	copy(b.Samples(), []float64{42, 43, 44, 45})
	p.Put(b)

	b2 := p.Get(4)
	if b2.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b2.Len())
	}
	for i, v := range b2.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(b2)
}

func TestPoolPutNil(_ *testing.T) {
	NewPool().Put(nil)
}
