package matching

import (
	"math"
	"testing"
)

func TestMonthFit(t *testing.T) {
	cases := []struct {
		month, start, end int
		want              float64
	}{
		{5, 5, 8, 1},
		{8, 5, 8, 0.25},
		{9, 5, 8, 0},
		{10, 5, 8, 0},
		{12, 5, 8, 0},
		{1, 5, 8, 0},
		{2, 5, 8, 1},
		{4, 5, 8, 1},
		{10, 12, 2, 1},
		{3, 12, 2, 0},
		{7, 1, 5, 0},
		{12, 12, 2, 1},
		{2, 12, 2, 1.0 / 3},
		{3, 1, 5, 0.6},
	}
	for _, tc := range cases {
		if got := monthFit(tc.month, tc.start, tc.end); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("monthFit(%d, %d, %d) = %v, want %v", tc.month, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestHoursFit(t *testing.T) {
	cases := []struct {
		h, lo, hi int
		want      float64
	}{
		{20, 10, 30, 1},
		{5, 10, 30, 0.5},
		{60, 10, 30, 0.5},
		{60, 10, 0, 1},
		{5, 0, 30, 1},
	}
	for _, tc := range cases {
		if got := hoursFit(tc.h, tc.lo, tc.hi); got != tc.want {
			t.Errorf("hoursFit(%d, %d, %d) = %v, want %v", tc.h, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestHaversine(t *testing.T) {
	// Dallas to Austin is roughly 290 km in a straight line.
	d := haversineKm(32.7767, -96.7970, 30.2672, -97.7431)
	if d < 280 || d > 300 {
		t.Errorf("haversineKm = %v", d)
	}
	if haversineKm(10, 10, 10, 10) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestEverySignalIsBound(t *testing.T) {
	for _, s := range AllSignals {
		if s.evaluator() == nil || s.ReasonKey() == "" || s.DefaultDescription() == "" || s.defaultWeight() <= 0 {
			t.Errorf("signal %s is not fully declared", s)
		}
	}
	if SignalPreferredSkills.CanGap() {
		t.Error("preferred skills never produce a gap")
	}
}

func TestTitleWords(t *testing.T) {
	if got := titleWords("san josé"); got != "San José" {
		t.Errorf("titleWords = %q", got)
	}
}
