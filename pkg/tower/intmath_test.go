package tower

import (
	"math"
	"testing"
)

func TestIntegerSqrt_ExactSquares(t *testing.T) {
	cases := []uint64{0, 1, 4, 9, 16, 10000, 1 << 30}
	for _, c := range cases {
		root := IntegerSqrt(c * c)
		if root != uint32(c) {
			t.Errorf("IntegerSqrt(%d^2) = %d, want %d", c, root, c)
		}
	}
}

func TestIntegerSqrt_RoundsDown(t *testing.T) {
	cases := []struct{ y uint64; want uint32 }{
		{2, 1},
		{3, 1},
		{8, 2},
		{15, 3},
		{99, 9},
	}
	for _, c := range cases {
		if got := IntegerSqrt(c.y); got != c.want {
			t.Errorf("IntegerSqrt(%d) = %d, want %d", c.y, got, c.want)
		}
	}
}

func TestIntegerSqrt_MaxValue(t *testing.T) {
	if got := IntegerSqrt(math.MaxUint64); got != math.MaxUint32 {
		t.Errorf("IntegerSqrt(MaxUint64) = %d, want %d", got, uint32(math.MaxUint32))
	}
}

func TestIntegerSqrt_Monotonic(t *testing.T) {
	prev := IntegerSqrt(0)
	for y := uint64(1); y <= 100000; y++ {
		got := IntegerSqrt(y)
		if got < prev {
			t.Fatalf("IntegerSqrt(%d) = %d, less than IntegerSqrt(%d) = %d", y, got, y-1, prev)
		}
		prev = got
	}
}
