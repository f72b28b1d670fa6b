package slenderness

import (
	"math"
	"testing"

	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
)

func TestResolveEffectiveLength(t *testing.T) {
	res, err := Resolve(20, 1.2, 1.1, materials.KindSteel)
	if err != nil {
		t.Fatal(err)
	}
	if want := 20 * 1.2 * 1.1; math.Abs(res.EffectiveLengthM-want) > 1e-9 {
		t.Errorf("effective length = %g, want %g", res.EffectiveLengthM, want)
	}
}

func TestResolveDefaultsRestraintFactors(t *testing.T) {
	res, err := Resolve(12, 0, 0, materials.KindSteel)
	if err != nil {
		t.Fatal(err)
	}
	if res.EffectiveLengthM != 12 {
		t.Errorf("effective length = %g, want 12", res.EffectiveLengthM)
	}
}

func TestNonSteelIdentity(t *testing.T) {
	for _, kind := range []materials.Kind{materials.KindConcrete, materials.KindTimber} {
		res, err := Resolve(35, 1.5, 1.5, kind)
		if err != nil {
			t.Fatal(err)
		}
		if res.ReductionFactor != 1.0 {
			t.Errorf("%s reduction = %g, want 1.0", kind, res.ReductionFactor)
		}
	}
}

func TestReductionFactorShortPlateau(t *testing.T) {
	res, err := Resolve(3, 1, 1, materials.KindSteel)
	if err != nil {
		t.Fatal(err)
	}
	if res.ReductionFactor != 1.0 {
		t.Errorf("short span reduction = %g, want 1.0", res.ReductionFactor)
	}
}

func TestReductionFactorNonIncreasing(t *testing.T) {
	prev := 2.0
	for span := 1.0; span <= 60; span += 0.5 {
		res, err := Resolve(span, 1, 1, materials.KindSteel)
		if err != nil {
			t.Fatal(err)
		}
		if res.ReductionFactor > prev {
			t.Fatalf("reduction increased at span %g: %g > %g", span, res.ReductionFactor, prev)
		}
		if res.ReductionFactor <= 0 || res.ReductionFactor > 1 {
			t.Fatalf("reduction out of range at span %g: %g", span, res.ReductionFactor)
		}
		prev = res.ReductionFactor
	}
}

func TestReductionFactorInterpolates(t *testing.T) {
	// Midway between the 16 m and 20 m curve points.
	res, err := Resolve(18, 1, 1, materials.KindSteel)
	if err != nil {
		t.Fatal(err)
	}
	if want := (0.81 + 0.74) / 2; math.Abs(res.ReductionFactor-want) > 1e-9 {
		t.Errorf("reduction at 18 m = %g, want %g", res.ReductionFactor, want)
	}
}

func TestResolveInvalid(t *testing.T) {
	if _, err := Resolve(0, 1, 1, materials.KindSteel); err == nil {
		t.Error("expected error for zero span")
	}
	if _, err := Resolve(10, -1, 1, materials.KindSteel); err == nil {
		t.Error("expected error for negative restraint factor")
	}
}
