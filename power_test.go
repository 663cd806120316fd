package emfield

import (
	"math"
	"testing"
)

func TestPowerDensityWPerM2DecreasesWithDistance(t *testing.T) {
	near := PowerDensityWPerM2(50, 0, 0, 1)
	far := PowerDensityWPerM2(50, 0, 0, 10)
	if far >= near {
		t.Errorf("power density should fall off with distance: near=%v far=%v", near, far)
	}
}

func TestPowerDensityWPerM2ScalesWithLoss(t *testing.T) {
	noLoss := PowerDensityWPerM2(50, 0, 0, 10)
	withLoss := PowerDensityWPerM2(50, 0, 10, 10)
	ratio := noLoss / withLoss
	if math.Abs(ratio-10) > 1e-6 {
		t.Errorf("10 dB of extra loss should divide power density by 10, got ratio %v", ratio)
	}
}

func TestFieldStrengthDBuVPerMMonotonic(t *testing.T) {
	low := FieldStrengthDBuVPerM(1e-6)
	high := FieldStrengthDBuVPerM(1e-3)
	if high <= low {
		t.Errorf("field strength should increase with power density: low=%v high=%v", low, high)
	}
}

func TestFieldStrengthDBuVPerMZeroPowerIsFinite(t *testing.T) {
	got := FieldStrengthDBuVPerM(0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("zero power density should not produce NaN/Inf, got %v", got)
	}
}
