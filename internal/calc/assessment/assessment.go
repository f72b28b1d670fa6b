package assessment

import (
	"fmt"
	"strings"

	"github.com/Davidson1997/bridge-calculator/internal/calc/capacity"
	"github.com/Davidson1997/bridge-calculator/internal/calc/combine"
	"github.com/Davidson1997/bridge-calculator/internal/calc/highway"
	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
	"github.com/Davidson1997/bridge-calculator/internal/calc/section"
	"github.com/Davidson1997/bridge-calculator/internal/calc/slenderness"
	"github.com/Davidson1997/bridge-calculator/internal/calc/vehicle"
)

// Input is the flat parameter set one assessment consumes. It is read once
// and never mutated; only the dimension group matching Material is required.
type Input struct {
	BridgeType string  `json:"bridge_type"` // simply-supported | cantilever
	SpanM      float64 `json:"span_m"`
	Material   string  `json:"material"` // steel | concrete | timber
	Grade      string  `json:"grade"`

	// EffectiveLengthM overrides the k1*k2*span effective length when set.
	EffectiveLengthM float64 `json:"effective_length_m,omitempty"`

	// Steel girder dimensions.
	SectionShape      string  `json:"section_shape,omitempty"` // i-beam | box
	FlangeWidthMM     float64 `json:"flange_width_mm,omitempty"`
	FlangeThicknessMM float64 `json:"flange_thickness_mm,omitempty"`
	WebThicknessMM    float64 `json:"web_thickness_mm,omitempty"`
	SectionDepthMM    float64 `json:"section_depth_mm,omitempty"`

	// Concrete / timber rectangle.
	WidthMM             float64              `json:"width_mm,omitempty"`
	DepthMM             float64              `json:"depth_mm,omitempty"`
	ReinforcementLayers []section.RebarLayer `json:"reinforcement_layers,omitempty"`
	RebarYieldMPa       float64              `json:"rebar_yield_mpa,omitempty"` // default 500

	// Effective length restraint factors (steel); both default to 1.0.
	K1 float64 `json:"k1,omitempty"`
	K2 float64 `json:"k2,omitempty"`

	LoadingType  string  `json:"loading_type"` // HA | HB
	LoadedWidthM float64 `json:"loaded_width_m"`
	LaneWidthM   float64 `json:"lane_width_m"`
	AccessType   string  `json:"access_type,omitempty"` // company | public | private
	HBUnits      float64 `json:"hb_units,omitempty"`

	ConditionFactor float64 `json:"condition_factor"`
	GammaMaterial   float64 `json:"gamma_material,omitempty"`
	GammaRebar      float64 `json:"gamma_rebar,omitempty"`
	TimberK2        float64 `json:"timber_k2,omitempty"`
	TimberK3        float64 `json:"timber_k3,omitempty"`

	IncludeSelfWeight bool               `json:"include_self_weight,omitempty"`
	AdditionalLoads   []combine.LoadCase `json:"additional_loads,omitempty"`

	// Vehicle check, optional. VehicleType names a catalogued vehicle or
	// "custom" with explicit axle loads; empty or "none" skips the check.
	VehicleType        string  `json:"vehicle_type,omitempty"`
	VehicleFrontKN     float64 `json:"vehicle_front_kn,omitempty"`
	VehicleRearKN      float64 `json:"vehicle_rear_kn,omitempty"`
	AxleSpacingM       float64 `json:"axle_spacing_m,omitempty"`
	ImpactFactor       float64 `json:"impact_factor,omitempty"`
	DispersionPct      float64 `json:"dispersion_pct,omitempty"`
	VehicleSharing     string  `json:"vehicle_sharing,omitempty"` // full | per-beam
}

// Step is one line of the calculation narrative.
type Step struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Result carries every numeric output the presentation layers consume.
type Result struct {
	MomentCapacityKNM float64 `json:"moment_capacity_knm"`
	ShearCapacityKN   float64 `json:"shear_capacity_kn"`

	DeadMomentKNM       float64  `json:"applied_dead_moment_knm"`
	LiveMomentKNM       float64  `json:"applied_live_moment_knm"`
	DeadShearKN         float64  `json:"applied_dead_shear_kn"`
	LiveShearKN         float64  `json:"applied_live_shear_kn"`
	SelfWeightMomentKNM *float64 `json:"self_weight_moment_knm,omitempty"`

	VehicleMomentKNM *float64 `json:"vehicle_max_moment_knm,omitempty"`
	VehicleShearKN   *float64 `json:"vehicle_max_shear_kn,omitempty"`

	SpanM            float64 `json:"span_m"`
	EffectiveLengthM float64 `json:"effective_length_m"`
	ReductionFactor  float64 `json:"reduction_factor"`
	LoadingType      string  `json:"loading_type"`
	LoadingUDLKNPerM float64 `json:"loading_udl_kn_per_m"`
	NotionalLanes    int     `json:"notional_lanes"`

	AdditionalLoads []combine.LoadCase `json:"additional_loads"`
	Steps           []Step             `json:"calculation_process"`
	Pass            bool               `json:"pass"`
}

// Outcome is either a complete Result or an error message, never both.
type Outcome struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type state string

const (
	stateValidating state = "validating"
	stateResolving  state = "resolving"
	stateCombining  state = "combining"
	stateComparing  state = "comparing"
	stateDone       state = "done"
	stateFailed     state = "failed"
)

// run holds the working values of one assessment. Discarded on return, so
// concurrent assessments share nothing.
type run struct {
	in    Input
	state state
	steps []Step

	material materials.Spec
	props    section.Properties
	slender  slenderness.Result
	hw       highway.Result
	env      vehicle.Envelope
	hasVeh   bool
	selfW    float64 // self weight UDL, kN/m
	totals   combine.Totals
	cap      capacity.Result
}

func (r *run) log(label string, value float64, unit string) {
	r.steps = append(r.steps, Step{Label: label, Value: value, Unit: unit})
}

// Run executes the assessment state machine over an immutable input snapshot.
// Any stage error aborts the machine: the outcome then carries the message
// only, never partial numbers.
func Run(in Input) Outcome {
	r := &run{in: in, state: stateValidating}
	for _, stage := range []func() error{r.validate, r.resolve, r.combineLoads, r.compare} {
		if err := stage(); err != nil {
			r.state = stateFailed
			return Outcome{Error: err.Error()}
		}
	}
	r.state = stateDone
	return Outcome{Result: r.result()}
}

func (r *run) validate() error {
	r.state = stateValidating
	in := r.in
	switch combine.BridgeType(in.BridgeType) {
	case combine.BridgeSimplySupported, combine.BridgeCantilever:
	default:
		return &ValidationError{Field: "bridge_type", Reason: fmt.Sprintf("%q not recognised", in.BridgeType)}
	}
	if in.SpanM <= 0 {
		return &ValidationError{Field: "span_m", Reason: "must be positive"}
	}
	if in.Material == "" {
		return &ValidationError{Field: "material", Reason: "required"}
	}
	if in.Grade == "" {
		return &ValidationError{Field: "grade", Reason: "required"}
	}
	if in.ConditionFactor <= 0 || in.ConditionFactor > 1 {
		return &ValidationError{Field: "condition_factor", Reason: "must be in (0,1]"}
	}
	switch highway.LoadingType(in.LoadingType) {
	case highway.LoadingHA, highway.LoadingHB:
	default:
		return &ValidationError{Field: "loading_type", Reason: fmt.Sprintf("%q not recognised", in.LoadingType)}
	}
	if r.vehicleRequested() && combine.BridgeType(in.BridgeType) != combine.BridgeSimplySupported {
		return &ValidationError{Field: "vehicle_type", Reason: "vehicle envelope requires a simply supported span"}
	}
	return nil
}

func (r *run) vehicleRequested() bool {
	vt := strings.ToLower(strings.TrimSpace(r.in.VehicleType))
	return vt != "" && vt != "none"
}

func (r *run) resolve() error {
	r.state = stateResolving
	in := r.in

	mat, err := materials.Resolve(in.Material, in.Grade)
	if err != nil {
		return err
	}
	r.material = mat

	switch mat.Kind {
	case materials.KindSteel:
		r.props, err = section.DeriveSteel(section.SteelDims{
			Shape:             section.Shape(in.SectionShape),
			FlangeWidthMM:     in.FlangeWidthMM,
			FlangeThicknessMM: in.FlangeThicknessMM,
			WebThicknessMM:    in.WebThicknessMM,
			DepthMM:           in.SectionDepthMM,
		})
	case materials.KindConcrete:
		r.props, err = section.DeriveConcrete(section.ConcreteDims{
			WidthMM: in.WidthMM,
			DepthMM: in.DepthMM,
			Layers:  in.ReinforcementLayers,
		})
	case materials.KindTimber:
		r.props, err = section.DeriveTimber(section.TimberDims{
			WidthMM: in.WidthMM,
			DepthMM: in.DepthMM,
		})
	}
	if err != nil {
		return err
	}

	if in.EffectiveLengthM > 0 {
		r.slender, err = slenderness.Resolve(in.EffectiveLengthM, 1, 1, mat.Kind)
	} else {
		r.slender, err = slenderness.Resolve(in.SpanM, in.K1, in.K2, mat.Kind)
	}
	if err != nil {
		return err
	}

	r.log("Span length", in.SpanM, "m")
	r.log("Effective member length", r.slender.EffectiveLengthM, "m")
	r.log("Slenderness reduction factor", r.slender.ReductionFactor, "")
	r.log("Section area", r.props.AreaMM2, "mm2")
	if mat.Kind == materials.KindConcrete {
		r.log("Effective depth", r.props.EffectiveDepthMM, "mm")
		r.log("Reinforcement area", r.props.SteelAreaMM2, "mm2")
	} else {
		r.log("Elastic section modulus", r.props.ElasticModulusMM3, "mm3")
	}
	if mat.Kind == materials.KindSteel {
		r.log("Plastic section modulus", r.props.PlasticModulusMM3, "mm3")
	}
	return nil
}

func (r *run) combineLoads() error {
	r.state = stateCombining
	in := r.in

	hw, err := highway.Compute(highway.Input{
		LoadingType:  highway.LoadingType(in.LoadingType),
		SpanM:        in.SpanM,
		LoadedWidthM: in.LoadedWidthM,
		LaneWidthM:   in.LaneWidthM,
		AccessType:   in.AccessType,
		HBUnits:      in.HBUnits,
	})
	if err != nil {
		return err
	}
	r.hw = hw
	r.log("Notional lanes", float64(hw.NotionalLanes), "")
	r.log(in.LoadingType+" UDL", hw.UDLKNPerM, "kN/m")
	if hw.KELKN > 0 {
		r.log(in.LoadingType+" KEL", hw.KELKN, "kN")
	}

	if r.vehicleRequested() {
		spec, err := r.vehicleSpec()
		if err != nil {
			return err
		}
		env, err := vehicle.MaxEnvelope(in.SpanM, spec)
		if err != nil {
			return err
		}
		r.env = env
		r.hasVeh = true
		r.log("Vehicle critical position", env.CriticalPositionM, "m")
		r.log("Vehicle maximum moment", env.MaxMomentKNM, "kNm")
		r.log("Vehicle maximum shear", env.MaxShearKN, "kN")
	}

	cases := in.AdditionalLoads
	if in.IncludeSelfWeight {
		// Self weight as a dead UDL from the gross area and unit weight.
		r.selfW = r.props.AreaMM2 / 1e6 * r.material.UnitWeightKNM3
		cases = append(append([]combine.LoadCase{}, cases...), combine.LoadCase{
			Description:  "Self weight",
			MagnitudeKN:  r.selfW,
			Type:         combine.LoadDead,
			Material:     string(r.material.Kind),
			Distribution: combine.DistUniform,
		})
		r.log("Self weight", r.selfW, "kN/m")
	}

	totals, err := combine.Combine(combine.BridgeType(in.BridgeType), in.SpanM, cases, hw, r.env)
	if err != nil {
		return err
	}
	r.totals = totals
	r.log("Applied dead load moment", totals.DeadMomentKNM, "kNm")
	r.log("Applied live load moment", totals.LiveMomentKNM, "kNm")
	r.log("Applied dead load shear", totals.DeadShearKN, "kN")
	r.log("Applied live load shear", totals.LiveShearKN, "kN")
	return nil
}

func (r *run) vehicleSpec() (vehicle.Spec, error) {
	in := r.in
	front, rear := in.VehicleFrontKN, in.VehicleRearKN
	if vt := strings.ToLower(strings.TrimSpace(in.VehicleType)); vt != "custom" {
		var ok bool
		front, rear, ok = vehicle.Lookup(vt)
		if !ok {
			return vehicle.Spec{}, &ValidationError{Field: "vehicle_type", Reason: fmt.Sprintf("%q not recognised", in.VehicleType)}
		}
	} else if front <= 0 || rear <= 0 {
		return vehicle.Spec{}, &ValidationError{Field: "vehicle_front_kn", Reason: "custom vehicles need both axle loads"}
	}
	sharing := vehicle.Sharing(in.VehicleSharing)
	if sharing == "" {
		sharing = vehicle.SharingFull
	}
	if sharing != vehicle.SharingFull && sharing != vehicle.SharingPerBeam {
		return vehicle.Spec{}, &ValidationError{Field: "vehicle_sharing", Reason: fmt.Sprintf("%q not recognised", in.VehicleSharing)}
	}
	return vehicle.Spec{
		FrontAxleKN:   front,
		RearAxleKN:    rear,
		AxleSpacingM:  in.AxleSpacingM,
		ImpactFactor:  in.ImpactFactor,
		DispersionPct: in.DispersionPct,
		Sharing:       sharing,
	}, nil
}

func (r *run) compare() error {
	r.state = stateComparing
	capRes, err := capacity.Compute(capacity.Input{
		Material:          r.material,
		Section:           r.props,
		ConditionFactor:   r.in.ConditionFactor,
		SlendernessFactor: r.slender.ReductionFactor,
		GammaMaterial:     r.in.GammaMaterial,
		GammaRebar:        r.in.GammaRebar,
		RebarYieldMPa:     r.in.RebarYieldMPa,
		TimberK2:          r.in.TimberK2,
		TimberK3:          r.in.TimberK3,
	})
	if err != nil {
		return err
	}
	r.cap = capRes
	r.log("Moment capacity", capRes.MomentCapacityKNM, "kNm")
	r.log("Shear capacity", capRes.ShearCapacityKN, "kN")
	r.log("Total moment demand", r.totals.MomentDemandKNM(), "kNm")
	r.log("Total shear demand", r.totals.ShearDemandKN(), "kN")
	return nil
}

func (r *run) result() *Result {
	res := &Result{
		MomentCapacityKNM: r.cap.MomentCapacityKNM,
		ShearCapacityKN:   r.cap.ShearCapacityKN,
		DeadMomentKNM:     r.totals.DeadMomentKNM,
		LiveMomentKNM:     r.totals.LiveMomentKNM,
		DeadShearKN:       r.totals.DeadShearKN,
		LiveShearKN:       r.totals.LiveShearKN,
		SpanM:             r.in.SpanM,
		EffectiveLengthM:  r.slender.EffectiveLengthM,
		ReductionFactor:   r.slender.ReductionFactor,
		LoadingType:       r.in.LoadingType,
		LoadingUDLKNPerM:  r.hw.UDLKNPerM,
		NotionalLanes:     r.hw.NotionalLanes,
		AdditionalLoads:   r.in.AdditionalLoads,
		Steps:             r.steps,
		Pass: r.cap.MomentCapacityKNM >= r.totals.MomentDemandKNM() &&
			r.cap.ShearCapacityKN >= r.totals.ShearDemandKN(),
	}
	if r.in.IncludeSelfWeight {
		m, _ := selfWeightEffects(combine.BridgeType(r.in.BridgeType), r.in.SpanM, r.selfW)
		res.SelfWeightMomentKNM = &m
	}
	if r.hasVeh {
		vm, vs := r.env.MaxMomentKNM, r.env.MaxShearKN
		res.VehicleMomentKNM = &vm
		res.VehicleShearKN = &vs
	}
	return res
}

func selfWeightEffects(bt combine.BridgeType, spanM, wKNPerM float64) (moment, shear float64) {
	if bt == combine.BridgeCantilever {
		return wKNPerM * spanM * spanM / 2, wKNPerM * spanM
	}
	return wKNPerM * spanM * spanM / 8, wKNPerM * spanM / 2
}
