package entropy

import "testing"

func TestSeededDeterminism(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %v", i, va)
		}
	}
}

func TestCryptoRange(t *testing.T) {
	src := NewCrypto()
	for i := 0; i < 100; i++ {
		v := src.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
}

func TestFixedReplay(t *testing.T) {
	src := NewFixed(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := src.Float(); got != w {
			t.Errorf("draw %d: got %v, want %v", i, got, w)
		}
	}
}
