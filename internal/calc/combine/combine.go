package combine

import (
	"fmt"

	"github.com/Davidson1997/bridge-calculator/internal/calc/highway"
	"github.com/Davidson1997/bridge-calculator/internal/calc/vehicle"
)

type BridgeType string

const (
	BridgeSimplySupported BridgeType = "simply-supported"
	BridgeCantilever      BridgeType = "cantilever"
)

type LoadType string

const (
	LoadDead LoadType = "dead"
	LoadLive LoadType = "live"
)

type Distribution string

const (
	DistUniform Distribution = "uniform" // magnitude in kN/m over the span
	DistPoint   Distribution = "point"   // magnitude in kN at midspan (tip for cantilevers)
)

// LoadCase is one additional applied load. Order in the sequence affects only
// how the assessment narrates it, never the combined totals.
type LoadCase struct {
	Description  string       `json:"description"`
	MagnitudeKN  float64      `json:"magnitude_kn"`
	Type         LoadType     `json:"type"`
	Material     string       `json:"load_material,omitempty"`
	Distribution Distribution `json:"load_distribution"`
}

type Totals struct {
	DeadMomentKNM    float64 `json:"dead_moment_knm"`
	LiveMomentKNM    float64 `json:"live_moment_knm"`
	DeadShearKN      float64 `json:"dead_shear_kn"`
	LiveShearKN      float64 `json:"live_shear_kn"`
	VehicleMomentKNM float64 `json:"vehicle_moment_knm"`
	VehicleShearKN   float64 `json:"vehicle_shear_kn"`
}

// MomentDemandKNM is the total demand moment across all buckets.
func (t Totals) MomentDemandKNM() float64 {
	return t.DeadMomentKNM + t.LiveMomentKNM
}

// ShearDemandKN is the total demand shear across all buckets.
func (t Totals) ShearDemandKN() float64 {
	return t.DeadShearKN + t.LiveShearKN
}

// Combine folds the load case sequence, the highway loading and the vehicle
// envelope into dead/live demand buckets. Highway and vehicle effects go to
// the live bucket; the vehicle contribution is also reported separately.
func Combine(bridgeType BridgeType, spanM float64, cases []LoadCase, hw highway.Result, env vehicle.Envelope) (Totals, error) {
	if spanM <= 0 {
		return Totals{}, fmt.Errorf("span must be positive, got %g", spanM)
	}
	if bridgeType != BridgeSimplySupported && bridgeType != BridgeCantilever {
		return Totals{}, fmt.Errorf("bridge type %q not recognised", bridgeType)
	}

	var t Totals
	for i, lc := range cases {
		moment, shear, err := caseEffects(bridgeType, spanM, lc)
		if err != nil {
			return Totals{}, fmt.Errorf("load case %d (%s): %w", i+1, lc.Description, err)
		}
		switch lc.Type {
		case LoadDead:
			t.DeadMomentKNM += moment
			t.DeadShearKN += shear
		case LoadLive:
			t.LiveMomentKNM += moment
			t.LiveShearKN += shear
		default:
			return Totals{}, fmt.Errorf("load case %d (%s): type %q not recognised", i+1, lc.Description, lc.Type)
		}
	}

	udlMoment, udlShear := uniformEffects(bridgeType, spanM, hw.UDLKNPerM)
	kelMoment, kelShear := pointEffects(bridgeType, spanM, hw.KELKN)
	t.LiveMomentKNM += udlMoment + kelMoment
	t.LiveShearKN += udlShear + kelShear

	t.VehicleMomentKNM = env.MaxMomentKNM
	t.VehicleShearKN = env.MaxShearKN
	t.LiveMomentKNM += env.MaxMomentKNM
	t.LiveShearKN += env.MaxShearKN

	return t, nil
}

func caseEffects(bridgeType BridgeType, spanM float64, lc LoadCase) (moment, shear float64, err error) {
	if lc.MagnitudeKN < 0 {
		return 0, 0, fmt.Errorf("magnitude must not be negative, got %g", lc.MagnitudeKN)
	}
	switch lc.Distribution {
	case DistUniform:
		moment, shear = uniformEffects(bridgeType, spanM, lc.MagnitudeKN)
	case DistPoint:
		moment, shear = pointEffects(bridgeType, spanM, lc.MagnitudeKN)
	default:
		return 0, 0, fmt.Errorf("distribution %q not recognised", lc.Distribution)
	}
	return moment, shear, nil
}

func uniformEffects(bridgeType BridgeType, spanM, wKNPerM float64) (moment, shear float64) {
	if bridgeType == BridgeCantilever {
		return wKNPerM * spanM * spanM / 2, wKNPerM * spanM
	}
	return wKNPerM * spanM * spanM / 8, wKNPerM * spanM / 2
}

// pointEffects places a point load at midspan for simply supported members and
// at the tip for cantilevers; the knife edge load takes its code position the
// same way.
func pointEffects(bridgeType BridgeType, spanM, pKN float64) (moment, shear float64) {
	if bridgeType == BridgeCantilever {
		return pKN * spanM, pKN
	}
	return pKN * spanM / 4, pKN
}
