package mathx

import "testing"

func TestBetween(t *testing.T) {
	for _, c := range []struct {
		v, lo, hi int
		want      bool
	}{
		{0, 0, 7, true},
		{7, 0, 7, true},
		{8, 0, 7, false},
		{-1, 0, 7, false},
		{3, 7, 0, true}, // swapped bounds
	} {
		if got := Between(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Between(%d,%d,%d)=%v want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestBitAndSetBit(t *testing.T) {
	var v uint8
	for n := uint(0); n < 8; n++ {
		v = SetBit(v, n, true)
		if !Bit(v, n) {
			t.Fatalf("bit %d not set in %08b", n, v)
		}
	}
	if v != 0xFF {
		t.Fatalf("all bits set: got %#x", v)
	}
	v = SetBit(v, 3, false)
	if v != 0xF7 || Bit(v, 3) {
		t.Fatalf("clear bit 3: got %08b", v)
	}
}
