package section

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDeriveSteelIBeam(t *testing.T) {
	props, err := DeriveSteel(SteelDims{
		FlangeWidthMM:     300,
		FlangeThicknessMM: 20,
		WebThicknessMM:    10,
		DepthMM:           600,
	})
	if err != nil {
		t.Fatal(err)
	}
	// 2*300*20 + 10*560
	if !almostEqual(props.AreaMM2, 17600, 1e-6) {
		t.Errorf("area = %g", props.AreaMM2)
	}
	// B*T*(D-T) + tw*hw^2/4
	if !almostEqual(props.PlasticModulusMM3, 4264000, 1e-3) {
		t.Errorf("plastic modulus = %g", props.PlasticModulusMM3)
	}
	if !almostEqual(props.WebAreaMM2, 6000, 1e-6) {
		t.Errorf("web area = %g", props.WebAreaMM2)
	}
	wantInertia := 300*math.Pow(600, 3)/12 - 290*math.Pow(560, 3)/12
	if !almostEqual(props.InertiaMM4, wantInertia, 1) {
		t.Errorf("inertia = %g, want %g", props.InertiaMM4, wantInertia)
	}
	if !almostEqual(props.ElasticModulusMM3, 2*wantInertia/600, 1) {
		t.Errorf("elastic modulus = %g", props.ElasticModulusMM3)
	}
}

func TestDeriveSteelBoxDoublesWebs(t *testing.T) {
	dims := SteelDims{FlangeWidthMM: 300, FlangeThicknessMM: 20, WebThicknessMM: 10, DepthMM: 600}
	ibeam, err := DeriveSteel(dims)
	if err != nil {
		t.Fatal(err)
	}
	dims.Shape = ShapeBox
	box, err := DeriveSteel(dims)
	if err != nil {
		t.Fatal(err)
	}
	if box.WebAreaMM2 != 2*ibeam.WebAreaMM2 {
		t.Errorf("box web area = %g, want %g", box.WebAreaMM2, 2*ibeam.WebAreaMM2)
	}
	if box.AreaMM2 <= ibeam.AreaMM2 || box.PlasticModulusMM3 <= ibeam.PlasticModulusMM3 {
		t.Errorf("box should exceed i-beam: %+v vs %+v", box, ibeam)
	}
}

func TestDeriveSteelInvalid(t *testing.T) {
	tests := []SteelDims{
		{FlangeWidthMM: 0, FlangeThicknessMM: 20, WebThicknessMM: 10, DepthMM: 600},
		{FlangeWidthMM: 300, FlangeThicknessMM: -1, WebThicknessMM: 10, DepthMM: 600},
		{FlangeWidthMM: 300, FlangeThicknessMM: 20, WebThicknessMM: 10, DepthMM: 30}, // depth under 2T
		{Shape: "channel", FlangeWidthMM: 300, FlangeThicknessMM: 20, WebThicknessMM: 10, DepthMM: 600},
	}
	for i, dims := range tests {
		_, err := DeriveSteel(dims)
		var invalid *InvalidGeometryError
		if !errors.As(err, &invalid) {
			t.Errorf("case %d: err = %v, want InvalidGeometryError", i, err)
		}
	}
}

func TestDeriveConcrete(t *testing.T) {
	props, err := DeriveConcrete(ConcreteDims{
		WidthMM: 300,
		DepthMM: 600,
		Layers:  []RebarLayer{{Count: 4, DiameterMM: 25, CoverMM: 50}},
	})
	if err != nil {
		t.Fatal(err)
	}
	wantAs := 4 * math.Pi * 25 * 25 / 4
	if !almostEqual(props.SteelAreaMM2, wantAs, 1e-6) {
		t.Errorf("steel area = %g, want %g", props.SteelAreaMM2, wantAs)
	}
	if !almostEqual(props.EffectiveDepthMM, 550, 1e-9) {
		t.Errorf("effective depth = %g, want 550", props.EffectiveDepthMM)
	}
}

func TestDeriveConcreteLayerOrderIrrelevant(t *testing.T) {
	layers := []RebarLayer{
		{Count: 3, DiameterMM: 25, CoverMM: 50},
		{Count: 2, DiameterMM: 16, CoverMM: 110},
	}
	forward, err := DeriveConcrete(ConcreteDims{WidthMM: 300, DepthMM: 600, Layers: layers})
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := DeriveConcrete(ConcreteDims{WidthMM: 300, DepthMM: 600, Layers: []RebarLayer{layers[1], layers[0]}})
	if err != nil {
		t.Fatal(err)
	}
	if forward.EffectiveDepthMM != reversed.EffectiveDepthMM || forward.SteelAreaMM2 != reversed.SteelAreaMM2 {
		t.Errorf("layer order changed the derivation: %+v vs %+v", forward, reversed)
	}
}

func TestDeriveConcreteInvalid(t *testing.T) {
	tests := []ConcreteDims{
		{WidthMM: 300, DepthMM: 600},
		{WidthMM: -300, DepthMM: 600, Layers: []RebarLayer{{Count: 4, DiameterMM: 25, CoverMM: 50}}},
		{WidthMM: 300, DepthMM: 600, Layers: []RebarLayer{{Count: 0, DiameterMM: 25, CoverMM: 50}}},
		{WidthMM: 300, DepthMM: 600, Layers: []RebarLayer{{Count: 4, DiameterMM: 25, CoverMM: 700}}},
	}
	for i, dims := range tests {
		_, err := DeriveConcrete(dims)
		var invalid *InvalidGeometryError
		if !errors.As(err, &invalid) {
			t.Errorf("case %d: err = %v, want InvalidGeometryError", i, err)
		}
	}
}

func TestDeriveTimber(t *testing.T) {
	props, err := DeriveTimber(TimberDims{WidthMM: 200, DepthMM: 400})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(props.ElasticModulusMM3, 200*400*400/6, 1e-6) {
		t.Errorf("section modulus = %g", props.ElasticModulusMM3)
	}
	if !almostEqual(props.AreaMM2, 80000, 1e-9) {
		t.Errorf("area = %g", props.AreaMM2)
	}

	if _, err := DeriveTimber(TimberDims{WidthMM: 0, DepthMM: 400}); err == nil {
		t.Error("expected error for zero width")
	}
}
