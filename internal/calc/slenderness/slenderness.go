package slenderness

import (
	"fmt"

	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
)

// Lateral torsional buckling reduction against effective length. Piecewise
// linear, non-increasing, 1.0 up to the fully restrained plateau and a floor
// beyond the last point. Effective lengths in metres.
var reductionCurve = []struct {
	EffectiveLengthM float64
	Factor           float64
}{
	{0, 1.0},
	{4, 1.0},
	{8, 0.95},
	{12, 0.88},
	{16, 0.81},
	{20, 0.74},
	{25, 0.66},
	{30, 0.60},
	{40, 0.52},
}

type Result struct {
	EffectiveLengthM float64 `json:"effective_length_m"`
	ReductionFactor  float64 `json:"reduction_factor"`
}

// Resolve computes the effective length k1*k2*span and the buckling reduction
// factor. k1 covers support rotational restraint, k2 load application height;
// either defaults to 1.0 when zero. Materials other than steel do not buckle
// laterally in this model and get the identity factor.
func Resolve(spanM, k1, k2 float64, kind materials.Kind) (Result, error) {
	if spanM <= 0 {
		return Result{}, fmt.Errorf("span must be positive, got %g", spanM)
	}
	if k1 == 0 {
		k1 = 1.0
	}
	if k2 == 0 {
		k2 = 1.0
	}
	if k1 < 0 || k2 < 0 {
		return Result{}, fmt.Errorf("restraint factors must be positive, got k1=%g k2=%g", k1, k2)
	}

	effective := k1 * k2 * spanM
	if kind != materials.KindSteel {
		return Result{EffectiveLengthM: effective, ReductionFactor: 1.0}, nil
	}
	return Result{EffectiveLengthM: effective, ReductionFactor: factorAt(effective)}, nil
}

func factorAt(effectiveLengthM float64) float64 {
	curve := reductionCurve
	if effectiveLengthM <= curve[0].EffectiveLengthM {
		return curve[0].Factor
	}
	for i := 1; i < len(curve); i++ {
		if effectiveLengthM <= curve[i].EffectiveLengthM {
			lower, upper := curve[i-1], curve[i]
			span := upper.EffectiveLengthM - lower.EffectiveLengthM
			frac := (effectiveLengthM - lower.EffectiveLengthM) / span
			return lower.Factor + frac*(upper.Factor-lower.Factor)
		}
	}
	return curve[len(curve)-1].Factor
}
