package mathutil

import "testing"

func TestBLCIC(t *testing.T) {
	tests := []struct {
		x, want uint64
	}{
		{0b101111, 0b010000},
		{0, 1},
		{^uint64(0), 0},
	}
	for _, tt := range tests {
		if got := BLCIC(tt.x); got != tt.want {
			t.Errorf("BLCIC(%b) = %b, want %b", tt.x, got, tt.want)
		}
	}
}

func TestTZMsk(t *testing.T) {
	tests := []struct {
		x, want uint64
	}{
		{0b010000, 0b001111},
		{0, ^uint64(0)},
	}
	for _, tt := range tests {
		if got := TZMsk(tt.x); got != tt.want {
			t.Errorf("TZMsk(%b) = %b, want %b", tt.x, got, tt.want)
		}
	}
}

func TestBitSmear(t *testing.T) {
	tests := []struct {
		x, want uint64
	}{
		{0x80, 0xFF},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := BitSmear(tt.x); got != tt.want {
			t.Errorf("BitSmear(%#x) = %#x, want %#x", tt.x, got, tt.want)
		}
	}
}

func TestBitSmearInvariant(t *testing.T) {
	for _, x := range []uint64{1, 2, 3, 7, 0x123, 0xFFFFFFFF, 1 << 40} {
		s := BitSmear(x)
		if s+1 <= x || (s+1)&s != 0 {
			t.Errorf("BitSmear(%#x) = %#x: s+1 must be a power of two strictly greater than x", x, s)
		}
	}
}

func TestGCDLCM(t *testing.T) {
	tests := []struct {
		m, n, wantGCD, wantLCM uint64
	}{
		{12, 18, 6, 36},
		{0, 5, 5, 0},
		{7, 7, 7, 7},
		{1, 1000000, 1, 1000000},
	}
	for _, tt := range tests {
		gcd, lcm := GCDLCM(tt.m, tt.n)
		if gcd != tt.wantGCD || lcm != tt.wantLCM {
			t.Errorf("GCDLCM(%d,%d) = (%d,%d), want (%d,%d)", tt.m, tt.n, gcd, lcm, tt.wantGCD, tt.wantLCM)
		}
	}
}

func TestMultiplicativeInverse(t *testing.T) {
	tests := []struct {
		a, n   uint64
		wantT  uint64
		wantOK bool
	}{
		{3, 11, 4, true},
		{6, 9, 0, false},
		{5, 0, 0, false},
		{10, 5, 0, false}, // a mod n == 0
	}
	for _, tt := range tests {
		t_, ok := MultiplicativeInverse(tt.a, tt.n)
		if ok != tt.wantOK {
			t.Fatalf("MultiplicativeInverse(%d,%d) ok = %v, want %v", tt.a, tt.n, ok, tt.wantOK)
		}
		if ok && t_ != tt.wantT {
			t.Errorf("MultiplicativeInverse(%d,%d) = %d, want %d", tt.a, tt.n, t_, tt.wantT)
		}
	}
}

func TestMultiplicativeInverseRoundTrip(t *testing.T) {
	for n := uint64(2); n < 30; n++ {
		for a := uint64(1); a < n; a++ {
			t_, ok := MultiplicativeInverse(a, n)
			if !ok {
				continue
			}
			if (a*t_)%n != 1 {
				t.Errorf("MultiplicativeInverse(%d,%d) = %d, but (a*t) mod n = %d", a, n, t_, (a*t_)%n)
			}
		}
	}
}
