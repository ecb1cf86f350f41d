package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	// Monas to Kota Tua in Jakarta, roughly 4.4 km.
	got := DistanceMeters(-6.175392, 106.827153, -6.137654, 106.817125)
	if got < 4200 || got > 4600 {
		t.Errorf("DistanceMeters = %.0f m, want roughly 4400 m", got)
	}
}

func TestDistanceMetersZero(t *testing.T) {
	if d := DistanceMeters(-6.2, 106.8, -6.2, 106.8); d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	a := DistanceMeters(-6.2, 106.8, -7.8, 110.4)
	b := DistanceMeters(-7.8, 110.4, -6.2, 106.8)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
