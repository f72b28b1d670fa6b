package section

import (
	"fmt"
	"math"
)

type Shape string

const (
	ShapeIBeam Shape = "i-beam"
	ShapeBox   Shape = "box"
)

// SteelDims describes an I or box girder. All dimensions in mm.
type SteelDims struct {
	Shape             Shape   `json:"shape"`
	FlangeWidthMM     float64 `json:"flange_width_mm"`
	FlangeThicknessMM float64 `json:"flange_thickness_mm"`
	WebThicknessMM    float64 `json:"web_thickness_mm"`
	DepthMM           float64 `json:"depth_mm"`
}

// RebarLayer is one row of tension reinforcement, cover measured to the bar
// centroid from the tension face.
type RebarLayer struct {
	Count      int     `json:"count"`
	DiameterMM float64 `json:"diameter_mm"`
	CoverMM    float64 `json:"cover_mm"`
}

type ConcreteDims struct {
	WidthMM float64      `json:"width_mm"`
	DepthMM float64      `json:"depth_mm"`
	Layers  []RebarLayer `json:"layers"`
}

type TimberDims struct {
	WidthMM float64 `json:"width_mm"`
	DepthMM float64 `json:"depth_mm"`
}

// Properties are the derived geometric quantities one assessment needs.
// Fields not meaningful for the material are left zero: WebAreaMM2 and
// PlasticModulusMM3 for steel, EffectiveDepthMM and SteelAreaMM2 for concrete.
type Properties struct {
	AreaMM2           float64 `json:"area_mm2"`
	ElasticModulusMM3 float64 `json:"elastic_modulus_mm3"`
	PlasticModulusMM3 float64 `json:"plastic_modulus_mm3,omitempty"`
	InertiaMM4        float64 `json:"inertia_mm4"`
	WebAreaMM2        float64 `json:"web_area_mm2,omitempty"`
	EffectiveDepthMM  float64 `json:"effective_depth_mm,omitempty"`
	SteelAreaMM2      float64 `json:"steel_area_mm2,omitempty"`
	WidthMM           float64 `json:"width_mm"`
	DepthMM           float64 `json:"depth_mm"`
}

type InvalidGeometryError struct {
	Field  string
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid section geometry: %s %s", e.Field, e.Reason)
}

func requirePositive(field string, v float64) error {
	if v <= 0 {
		return &InvalidGeometryError{Field: field, Reason: "must be positive"}
	}
	return nil
}

// DeriveSteel computes thin-walled I/box girder properties. An empty shape is
// taken as an I-beam.
func DeriveSteel(d SteelDims) (Properties, error) {
	for _, check := range []struct {
		field string
		value float64
	}{
		{"flange_width_mm", d.FlangeWidthMM},
		{"flange_thickness_mm", d.FlangeThicknessMM},
		{"web_thickness_mm", d.WebThicknessMM},
		{"depth_mm", d.DepthMM},
	} {
		if err := requirePositive(check.field, check.value); err != nil {
			return Properties{}, err
		}
	}
	if d.DepthMM <= 2*d.FlangeThicknessMM {
		return Properties{}, &InvalidGeometryError{Field: "depth_mm", Reason: "must exceed twice the flange thickness"}
	}

	webs := 1.0
	switch d.Shape {
	case ShapeIBeam, "":
	case ShapeBox:
		webs = 2.0
	default:
		return Properties{}, &InvalidGeometryError{Field: "shape", Reason: fmt.Sprintf("%q not recognised", d.Shape)}
	}

	b := d.FlangeWidthMM
	t := d.FlangeThicknessMM
	tw := d.WebThicknessMM
	depth := d.DepthMM
	hw := depth - 2*t

	area := 2*b*t + webs*tw*hw
	inertia := b*math.Pow(depth, 3)/12 - (b-webs*tw)*math.Pow(hw, 3)/12
	elastic := 2 * inertia / depth
	plastic := b*t*(depth-t) + webs*tw*hw*hw/4

	return Properties{
		AreaMM2:           area,
		ElasticModulusMM3: elastic,
		PlasticModulusMM3: plastic,
		InertiaMM4:        inertia,
		WebAreaMM2:        webs * tw * depth,
		WidthMM:           b,
		DepthMM:           depth,
	}, nil
}

// DeriveConcrete computes the gross rectangle plus the reinforcement totals:
// steel area summed over layers and effective depth from the area-weighted
// mean cover, so layer order never matters.
func DeriveConcrete(d ConcreteDims) (Properties, error) {
	if err := requirePositive("width_mm", d.WidthMM); err != nil {
		return Properties{}, err
	}
	if err := requirePositive("depth_mm", d.DepthMM); err != nil {
		return Properties{}, err
	}
	if len(d.Layers) == 0 {
		return Properties{}, &InvalidGeometryError{Field: "layers", Reason: "at least one reinforcement layer required"}
	}

	var steelArea, weightedCover float64
	for i, layer := range d.Layers {
		if layer.Count <= 0 {
			return Properties{}, &InvalidGeometryError{Field: fmt.Sprintf("layers[%d].count", i), Reason: "must be positive"}
		}
		if err := requirePositive(fmt.Sprintf("layers[%d].diameter_mm", i), layer.DiameterMM); err != nil {
			return Properties{}, err
		}
		if layer.CoverMM <= 0 || layer.CoverMM >= d.DepthMM {
			return Properties{}, &InvalidGeometryError{Field: fmt.Sprintf("layers[%d].cover_mm", i), Reason: "must lie inside the section"}
		}
		layerArea := float64(layer.Count) * math.Pi * layer.DiameterMM * layer.DiameterMM / 4
		steelArea += layerArea
		weightedCover += layerArea * layer.CoverMM
	}
	effectiveDepth := d.DepthMM - weightedCover/steelArea

	return Properties{
		AreaMM2:           d.WidthMM * d.DepthMM,
		ElasticModulusMM3: d.WidthMM * d.DepthMM * d.DepthMM / 6,
		InertiaMM4:        d.WidthMM * math.Pow(d.DepthMM, 3) / 12,
		EffectiveDepthMM:  effectiveDepth,
		SteelAreaMM2:      steelArea,
		WidthMM:           d.WidthMM,
		DepthMM:           d.DepthMM,
	}, nil
}

// DeriveTimber computes rectangular section properties.
func DeriveTimber(d TimberDims) (Properties, error) {
	if err := requirePositive("width_mm", d.WidthMM); err != nil {
		return Properties{}, err
	}
	if err := requirePositive("depth_mm", d.DepthMM); err != nil {
		return Properties{}, err
	}
	return Properties{
		AreaMM2:           d.WidthMM * d.DepthMM,
		ElasticModulusMM3: d.WidthMM * d.DepthMM * d.DepthMM / 6,
		InertiaMM4:        d.WidthMM * math.Pow(d.DepthMM, 3) / 12,
		WidthMM:           d.WidthMM,
		DepthMM:           d.DepthMM,
	}, nil
}
