package capacity

import (
	"errors"
	"math"
	"testing"

	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
	"github.com/Davidson1997/bridge-calculator/internal/calc/section"
)

func steelInput(t *testing.T) Input {
	t.Helper()
	mat, err := materials.Resolve("steel", "S355")
	if err != nil {
		t.Fatal(err)
	}
	props, err := section.DeriveSteel(section.SteelDims{
		FlangeWidthMM: 300, FlangeThicknessMM: 20, WebThicknessMM: 10, DepthMM: 600,
	})
	if err != nil {
		t.Fatal(err)
	}
	return Input{Material: mat, Section: props, ConditionFactor: 1, SlendernessFactor: 1}
}

func TestSteelCapacity(t *testing.T) {
	in := steelInput(t)
	res, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	wantMoment := in.Section.PlasticModulusMM3 * 355 / DefaultGammaSteel / 1e6
	if math.Abs(res.MomentCapacityKNM-wantMoment) > 1e-6 {
		t.Errorf("moment capacity = %g, want %g", res.MomentCapacityKNM, wantMoment)
	}
	wantShear := 355 * 6000 / (math.Sqrt(3) * DefaultGammaSteel) / 1e3
	if math.Abs(res.ShearCapacityKN-wantShear) > 1e-6 {
		t.Errorf("shear capacity = %g, want %g", res.ShearCapacityKN, wantShear)
	}
}

func TestSteelSlendernessReducesMoment(t *testing.T) {
	in := steelInput(t)
	full, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	in.SlendernessFactor = 0.74
	reduced, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(reduced.MomentCapacityKNM-0.74*full.MomentCapacityKNM) > 1e-6 {
		t.Errorf("reduced = %g, want %g", reduced.MomentCapacityKNM, 0.74*full.MomentCapacityKNM)
	}
	if reduced.ShearCapacityKN != full.ShearCapacityKN {
		t.Error("slenderness must not reduce shear capacity")
	}
}

func TestConcreteCapacity(t *testing.T) {
	mat, err := materials.Resolve("concrete", "C32/40")
	if err != nil {
		t.Fatal(err)
	}
	props, err := section.DeriveConcrete(section.ConcreteDims{
		WidthMM: 300, DepthMM: 600,
		Layers: []section.RebarLayer{{Count: 4, DiameterMM: 25, CoverMM: 50}},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Compute(Input{Material: mat, Section: props, ConditionFactor: 1, SlendernessFactor: 1})
	if err != nil {
		t.Fatal(err)
	}

	// Force equilibrium by hand.
	fyd := DefaultRebarYieldMPa / DefaultGammaRebar
	tensile := props.SteelAreaMM2 * fyd
	fcd := 32 / DefaultGammaConcrete
	blockDepth := tensile / (concreteBlockCoeff * fcd * 300)
	leverArm := props.EffectiveDepthMM - blockDepth/2
	want := tensile * leverArm / 1e6
	if math.Abs(res.MomentCapacityKNM-want) > 1e-6 {
		t.Errorf("moment capacity = %g, want %g", res.MomentCapacityKNM, want)
	}
	if res.ShearCapacityKN <= 0 {
		t.Errorf("shear capacity = %g", res.ShearCapacityKN)
	}
}

func TestTimberCapacity(t *testing.T) {
	mat, err := materials.Resolve("timber", "C24")
	if err != nil {
		t.Fatal(err)
	}
	props, err := section.DeriveTimber(section.TimberDims{WidthMM: 200, DepthMM: 400})
	if err != nil {
		t.Fatal(err)
	}
	res, err := Compute(Input{
		Material: mat, Section: props,
		ConditionFactor: 1, SlendernessFactor: 1,
		TimberK2: 0.8, TimberK3: 1.25,
	})
	if err != nil {
		t.Fatal(err)
	}
	wantMoment := 7.5 * 0.8 * 1.25 * props.ElasticModulusMM3 / DefaultGammaTimber / 1e6
	if math.Abs(res.MomentCapacityKNM-wantMoment) > 1e-6 {
		t.Errorf("moment capacity = %g, want %g", res.MomentCapacityKNM, wantMoment)
	}
	wantShear := 0.71 * 0.8 * 1.25 * 80000 / (timberShearDistribution * DefaultGammaTimber) / 1e3
	if math.Abs(res.ShearCapacityKN-wantShear) > 1e-6 {
		t.Errorf("shear capacity = %g, want %g", res.ShearCapacityKN, wantShear)
	}
}

func TestConditionFactorScalesBoth(t *testing.T) {
	in := steelInput(t)
	full, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	in.ConditionFactor = 0.85
	worn, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(worn.MomentCapacityKNM-0.85*full.MomentCapacityKNM) > 1e-6 ||
		math.Abs(worn.ShearCapacityKN-0.85*full.ShearCapacityKN) > 1e-6 {
		t.Errorf("condition factor not applied to both: %+v vs %+v", worn, full)
	}
}

func TestCapacitiesNonNegative(t *testing.T) {
	in := steelInput(t)
	res, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.MomentCapacityKNM < 0 || res.ShearCapacityKN < 0 {
		t.Errorf("negative capacity: %+v", res)
	}
}

func TestUnsupportedMaterial(t *testing.T) {
	_, err := Compute(Input{
		Material:        materials.Spec{Kind: "masonry"},
		ConditionFactor: 1, SlendernessFactor: 1,
	})
	var unsupported *UnsupportedMaterialError
	if !errors.As(err, &unsupported) {
		t.Errorf("err = %v, want UnsupportedMaterialError", err)
	}
}

func TestInvalidFactors(t *testing.T) {
	in := steelInput(t)
	in.ConditionFactor = 1.2
	if _, err := Compute(in); err == nil {
		t.Error("expected error for condition factor above 1")
	}
	in = steelInput(t)
	in.SlendernessFactor = 0
	if _, err := Compute(in); err == nil {
		t.Error("expected error for zero slenderness factor")
	}
}
