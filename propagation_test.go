package emfield

import (
	"math"
	"testing"
)

func TestFreeSpacePathLossDBDoublingDistance(t *testing.T) {
	f := 3000.0
	l1 := FreeSpacePathLossDB(f, 10)
	l2 := FreeSpacePathLossDB(f, 20)
	if diff := l2 - l1; math.Abs(diff-6.02) > 0.01 {
		t.Errorf("doubling distance should add 6.02 dB, got %v", diff)
	}
}

func TestFreeSpacePathLossDBDoublingFrequency(t *testing.T) {
	l1 := FreeSpacePathLossDB(1000, 50)
	l2 := FreeSpacePathLossDB(2000, 50)
	if diff := l2 - l1; math.Abs(diff-6.02) > 0.01 {
		t.Errorf("doubling frequency should add 6.02 dB, got %v", diff)
	}
}

func TestFreeSpacePathLossDBS1(t *testing.T) {
	// S1: band center 3000 MHz, 100 km -> FSPL = 32.45 + 69.54 + 40 ~= 142.0 dB.
	got := FreeSpacePathLossDB(3000, 100)
	if math.Abs(got-142.0) > 0.1 {
		t.Errorf("got %v, want ~142.0", got)
	}
}

func TestTwoRayAdditionalLossDBNearFieldClamp(t *testing.T) {
	// S6: receiver at r = 2*lambda is within the near-field guard (10*lambda),
	// so the additional loss must be exactly 0 dB.
	freqMHz := 1000.0
	lambdaM := wavelengthM(freqMHz)
	distKm := 2 * lambdaM / 1000
	got := TwoRayAdditionalLossDB(freqMHz, distKm, 10, 10)
	if got != 0 {
		t.Errorf("near-field two-ray loss should be exactly 0, got %v", got)
	}
}

func TestTwoRayAdditionalLossDBClampedRange(t *testing.T) {
	got := TwoRayAdditionalLossDB(3000, 50, 10, 1000)
	if got < -twoRayClampDB-1e-9 || got > twoRayClampDB+1e-9 {
		t.Errorf("two-ray loss %v exceeds the +-%v dB clamp", got, twoRayClampDB)
	}
}

func TestGasLossDBPerKmFixedValue(t *testing.T) {
	atm := Atmosphere{GasLossDBPerKm: 0.5}
	if got := GasLossDBPerKm(atm, 3000); got != 0.5 {
		t.Errorf("fixed gas loss should pass through unchanged, got %v", got)
	}
}

func TestGasLossDBPerKmAutoPeaksNearOxygenLine(t *testing.T) {
	atm := Atmosphere{GasLossAuto: true}
	at60 := GasLossDBPerKm(atm, 60000)
	at30 := GasLossDBPerKm(atm, 30000)
	if at60 <= at30 {
		t.Errorf("gas loss should peak near the 60GHz oxygen line: at60=%v at30=%v", at60, at30)
	}
}

func TestRainLossDBPerKmMonotonic(t *testing.T) {
	low := RainLossDBPerKm(1, 10000)
	high := RainLossDBPerKm(10, 10000)
	if high <= low {
		t.Errorf("rain loss should increase with rain rate: low=%v high=%v", low, high)
	}
	if RainLossDBPerKm(0, 10000) != 0 {
		t.Error("zero rain rate should give zero rain loss")
	}
}

func TestFogLossDBPerKmMonotonic(t *testing.T) {
	low := FogLossDBPerKm(0.1, 30000)
	high := FogLossDBPerKm(1.0, 30000)
	if high <= low {
		t.Errorf("fog loss should increase with liquid water content: low=%v high=%v", low, high)
	}
}

func TestTotalExtraLossDBFreeSpaceHasNoTwoRayTerm(t *testing.T) {
	atm := Atmosphere{GasLossDBPerKm: 1}
	freeSpace := TotalExtraLossDB(Environment{Model: FreeSpace, Atmosphere: atm}, 1000, 50, 10, 1000)
	atmOnly := AtmosphericLossDB(atm, 1000, 50)
	if freeSpace != atmOnly {
		t.Errorf("free_space total extra loss should equal atmospheric loss alone: got %v, want %v", freeSpace, atmOnly)
	}

	twoRay := TotalExtraLossDB(Environment{Model: TwoRayFlat, Atmosphere: atm}, 1000, 50, 10, 1000)
	if twoRay == atmOnly {
		t.Error("two_ray_flat total extra loss should include the geometric two-ray term on top of the atmospheric loss")
	}
}
