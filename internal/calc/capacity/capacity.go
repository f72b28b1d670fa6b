package capacity

import (
	"fmt"
	"math"

	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
	"github.com/Davidson1997/bridge-calculator/internal/calc/section"
)

// Partial safety factor defaults per material, and the reinforcement defaults.
// The concrete shear stress coefficient follows the legacy assessment method
// and should be re-verified against the governing code before relying on it.
const (
	DefaultGammaSteel    = 1.05
	DefaultGammaConcrete = 1.5
	DefaultGammaTimber   = 1.3
	DefaultGammaRebar    = 1.15
	DefaultRebarYieldMPa = 500

	concreteBlockCoeff      = 0.85
	concreteShearCoeff      = 0.6
	timberShearDistribution = 1.5
)

type Input struct {
	Material materials.Spec
	Section  section.Properties

	ConditionFactor   float64 // capacity multiplier <= 1 for deterioration
	SlendernessFactor float64 // lateral torsional reduction, steel only

	GammaMaterial float64 // partial safety factor on material strength
	GammaRebar    float64 // partial safety factor on reinforcement
	RebarYieldMPa float64 // reinforcement characteristic strength

	TimberK2 float64 // exposure modification factor
	TimberK3 float64 // load duration modification factor
}

type Result struct {
	MomentCapacityKNM float64 `json:"moment_capacity_knm"`
	ShearCapacityKN   float64 `json:"shear_capacity_kn"`
}

type UnsupportedMaterialError struct {
	Kind materials.Kind
}

func (e *UnsupportedMaterialError) Error() string {
	return fmt.Sprintf("no capacity method for material kind %q", e.Kind)
}

// Compute resolves the design moment and shear capacity using the material's
// code method, then scales both by the condition factor.
func Compute(in Input) (Result, error) {
	if in.ConditionFactor <= 0 || in.ConditionFactor > 1 {
		return Result{}, fmt.Errorf("condition factor must be in (0,1], got %g", in.ConditionFactor)
	}
	if in.SlendernessFactor <= 0 || in.SlendernessFactor > 1 {
		return Result{}, fmt.Errorf("slenderness factor must be in (0,1], got %g", in.SlendernessFactor)
	}

	var res Result
	var err error
	switch in.Material.Kind {
	case materials.KindSteel:
		res, err = steel(in)
	case materials.KindConcrete:
		res, err = concrete(in)
	case materials.KindTimber:
		res, err = timber(in)
	default:
		return Result{}, &UnsupportedMaterialError{Kind: in.Material.Kind}
	}
	if err != nil {
		return Result{}, err
	}

	res.MomentCapacityKNM *= in.ConditionFactor
	res.ShearCapacityKN *= in.ConditionFactor
	return res, nil
}

func steel(in Input) (Result, error) {
	gamma := in.GammaMaterial
	if gamma == 0 {
		gamma = DefaultGammaSteel
	}
	if in.Section.PlasticModulusMM3 <= 0 || in.Section.WebAreaMM2 <= 0 {
		return Result{}, fmt.Errorf("steel capacity requires plastic modulus and web area")
	}
	fy := in.Material.YieldMPa
	moment := in.Section.PlasticModulusMM3 * fy * in.SlendernessFactor / gamma / 1e6
	shear := fy * in.Section.WebAreaMM2 / (math.Sqrt(3) * gamma) / 1e3
	return Result{MomentCapacityKNM: moment, ShearCapacityKN: shear}, nil
}

// concrete follows ultimate flexural theory for a singly reinforced rectangle:
// compression block depth from force equilibrium, lever arm capped at 0.95d.
func concrete(in Input) (Result, error) {
	gammaC := in.GammaMaterial
	if gammaC == 0 {
		gammaC = DefaultGammaConcrete
	}
	gammaS := in.GammaRebar
	if gammaS == 0 {
		gammaS = DefaultGammaRebar
	}
	fyk := in.RebarYieldMPa
	if fyk == 0 {
		fyk = DefaultRebarYieldMPa
	}
	d := in.Section.EffectiveDepthMM
	as := in.Section.SteelAreaMM2
	b := in.Section.WidthMM
	if d <= 0 || as <= 0 || b <= 0 {
		return Result{}, fmt.Errorf("concrete capacity requires reinforcement and effective depth")
	}

	fcd := in.Material.CylinderMPa / gammaC
	fyd := fyk / gammaS
	tensile := as * fyd // N
	blockDepth := tensile / (concreteBlockCoeff * fcd * b)
	leverArm := d - blockDepth/2
	if leverArm > 0.95*d {
		leverArm = 0.95 * d
	}
	if leverArm <= 0 {
		return Result{}, fmt.Errorf("reinforcement exceeds the section's compression capacity")
	}
	moment := tensile * leverArm / 1e6
	shear := concreteShearCoeff * in.Material.CylinderMPa * b * d / gammaC / 1e3
	return Result{MomentCapacityKNM: moment, ShearCapacityKN: shear}, nil
}

func timber(in Input) (Result, error) {
	gamma := in.GammaMaterial
	if gamma == 0 {
		gamma = DefaultGammaTimber
	}
	k2 := in.TimberK2
	if k2 == 0 {
		k2 = 1.0
	}
	k3 := in.TimberK3
	if k3 == 0 {
		k3 = 1.0
	}
	if in.Section.ElasticModulusMM3 <= 0 || in.Section.AreaMM2 <= 0 {
		return Result{}, fmt.Errorf("timber capacity requires a rectangular section")
	}
	moment := in.Material.BendingMPa * k2 * k3 * in.Section.ElasticModulusMM3 / gamma / 1e6
	shear := in.Material.ShearMPa * k2 * k3 * in.Section.AreaMM2 / (timberShearDistribution * gamma) / 1e3
	return Result{MomentCapacityKNM: moment, ShearCapacityKN: shear}, nil
}
