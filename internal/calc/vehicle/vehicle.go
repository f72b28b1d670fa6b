package vehicle

import (
	"fmt"
	"strings"
)

type Sharing string

const (
	SharingFull    Sharing = "full"     // whole axle on the assessed beam
	SharingPerBeam Sharing = "per-beam" // half axle per beam line
)

// Spec is a two-axle assessment vehicle. Axle loads are nominal; impact,
// dispersion and load sharing are applied by MaxEnvelope.
type Spec struct {
	FrontAxleKN   float64 `json:"front_axle_kn"`
	RearAxleKN    float64 `json:"rear_axle_kn"`
	AxleSpacingM  float64 `json:"axle_spacing_m"`
	ImpactFactor  float64 `json:"impact_factor"`
	DispersionPct float64 `json:"dispersion_pct"`
	Sharing       Sharing `json:"sharing"`
}

type Envelope struct {
	MaxMomentKNM      float64 `json:"max_moment_knm"`
	MaxShearKN        float64 `json:"max_shear_kn"`
	CriticalPositionM float64 `json:"critical_position_m"`
}

type InvalidVehicleSpacingError struct {
	SpacingM float64
	SpanM    float64
}

func (e *InvalidVehicleSpacingError) Error() string {
	return fmt.Sprintf("axle spacing %.2f m does not fit on span %.2f m", e.SpacingM, e.SpanM)
}

// Nominal axle loads for the standard restricted vehicles. The gross weight
// splits front/rear roughly 1:2 except the 18 tonne rigid which carries the
// statutory 64/113 kN split.
var axleCatalog = map[string][2]float64{
	"7.5 tonne": {25, 48.6},
	"18 tonne":  {64, 113},
	"26 tonne":  {92, 163},
	"33 tonne":  {115, 208.7},
}

// Lookup returns the catalogued nominal front/rear axle loads for a vehicle
// type name.
func Lookup(vehicleType string) (frontKN, rearKN float64, ok bool) {
	axles, ok := axleCatalog[strings.ToLower(strings.TrimSpace(vehicleType))]
	if !ok {
		return 0, 0, false
	}
	return axles[0], axles[1], true
}

// MaxEnvelope places the axle pair on a simply supported span at the classical
// two-moving-load critical position and evaluates the governing moment and
// shear from statics.
//
// With R the scaled resultant and e = s*Plight/(2R), the heavier axle sits e
// inboard of the centerline with the resultant mirrored about it, giving
// M = R*L/4 - Plight*s/4. Shear governs with the heavier axle over a support
// and the other axle s inside the span.
func MaxEnvelope(spanM float64, s Spec) (Envelope, error) {
	if spanM <= 0 {
		return Envelope{}, fmt.Errorf("span must be positive, got %g", spanM)
	}
	if s.AxleSpacingM <= 0 {
		return Envelope{}, fmt.Errorf("axle spacing must be positive, got %g", s.AxleSpacingM)
	}
	if s.AxleSpacingM >= spanM {
		return Envelope{}, &InvalidVehicleSpacingError{SpacingM: s.AxleSpacingM, SpanM: spanM}
	}
	if s.FrontAxleKN <= 0 || s.RearAxleKN <= 0 {
		return Envelope{}, fmt.Errorf("axle loads must be positive, got front=%g rear=%g", s.FrontAxleKN, s.RearAxleKN)
	}
	if s.DispersionPct < 0 || s.DispersionPct >= 100 {
		return Envelope{}, fmt.Errorf("dispersion must be in [0,100), got %g", s.DispersionPct)
	}

	impact := s.ImpactFactor
	if impact == 0 {
		impact = 1.0
	}
	share := 1.0
	if s.Sharing == SharingPerBeam {
		share = 0.5
	}
	scale := impact * (1 - s.DispersionPct/100) * share

	front := s.FrontAxleKN * scale
	rear := s.RearAxleKN * scale
	heavy, light := front, rear
	if rear > front {
		heavy, light = rear, front
	}
	resultant := front + rear

	offset := s.AxleSpacingM * light / (2 * resultant)
	moment := resultant*spanM/4 - light*s.AxleSpacingM/4
	shear := heavy + light*(spanM-s.AxleSpacingM)/spanM

	return Envelope{
		MaxMomentKNM:      moment,
		MaxShearKN:        shear,
		CriticalPositionM: spanM/2 - offset,
	}, nil
}
