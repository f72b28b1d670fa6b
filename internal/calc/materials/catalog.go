package materials

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindSteel    Kind = "steel"
	KindConcrete Kind = "concrete"
	KindTimber   Kind = "timber"
)

// Spec holds the characteristic properties of one catalogued grade. Only the
// fields relevant to the kind are set: YieldMPa for steel, CylinderMPa for
// concrete, BendingMPa/ShearMPa for timber grade stresses.
type Spec struct {
	Kind           Kind    `json:"kind"`
	Grade          string  `json:"grade"`
	YieldMPa       float64 `json:"yield_mpa,omitempty"`
	CylinderMPa    float64 `json:"cylinder_mpa,omitempty"`
	BendingMPa     float64 `json:"bending_mpa,omitempty"`
	ShearMPa       float64 `json:"shear_mpa,omitempty"`
	ModulusGPa     float64 `json:"modulus_gpa"`
	UnitWeightKNM3 float64 `json:"unit_weight_kn_m3"`
}

type UnknownMaterialError struct {
	Kind  string
	Grade string
}

func (e *UnknownMaterialError) Error() string {
	if e.Grade == "" {
		return fmt.Sprintf("unknown material kind %q", e.Kind)
	}
	return fmt.Sprintf("unknown %s grade %q", e.Kind, e.Grade)
}

var catalog = map[Kind]map[string]Spec{
	KindSteel: {
		"S235": {Kind: KindSteel, Grade: "S235", YieldMPa: 235, ModulusGPa: 205, UnitWeightKNM3: 77},
		"S275": {Kind: KindSteel, Grade: "S275", YieldMPa: 275, ModulusGPa: 205, UnitWeightKNM3: 77},
		"S355": {Kind: KindSteel, Grade: "S355", YieldMPa: 355, ModulusGPa: 205, UnitWeightKNM3: 77},
	},
	KindConcrete: {
		"C25/30": {Kind: KindConcrete, Grade: "C25/30", CylinderMPa: 25, ModulusGPa: 31, UnitWeightKNM3: 25},
		"C32/40": {Kind: KindConcrete, Grade: "C32/40", CylinderMPa: 32, ModulusGPa: 33, UnitWeightKNM3: 25},
		"C40/50": {Kind: KindConcrete, Grade: "C40/50", CylinderMPa: 40, ModulusGPa: 35, UnitWeightKNM3: 25},
	},
	KindTimber: {
		"C16": {Kind: KindTimber, Grade: "C16", BendingMPa: 5.3, ShearMPa: 0.67, ModulusGPa: 5.8, UnitWeightKNM3: 3.7},
		"C24": {Kind: KindTimber, Grade: "C24", BendingMPa: 7.5, ShearMPa: 0.71, ModulusGPa: 7.2, UnitWeightKNM3: 4.1},
		"D40": {Kind: KindTimber, Grade: "D40", BendingMPa: 12.5, ShearMPa: 2.0, ModulusGPa: 10.9, UnitWeightKNM3: 6.9},
	},
}

// Resolve looks up the characteristic properties for a kind/grade pair. The
// catalog is read-only; the returned Spec is a copy.
func Resolve(kind, grade string) (Spec, error) {
	grades, ok := catalog[Kind(strings.ToLower(strings.TrimSpace(kind)))]
	if !ok {
		return Spec{}, &UnknownMaterialError{Kind: kind}
	}
	spec, ok := grades[strings.ToUpper(strings.TrimSpace(grade))]
	if !ok {
		return Spec{}, &UnknownMaterialError{Kind: kind, Grade: grade}
	}
	return spec, nil
}

// Grades lists the catalogued grade names for a kind, for form population.
func Grades(kind string) []string {
	grades, ok := catalog[Kind(strings.ToLower(strings.TrimSpace(kind)))]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(grades))
	for name := range grades {
		names = append(names, name)
	}
	return names
}
