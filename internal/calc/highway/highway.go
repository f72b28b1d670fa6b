package highway

import (
	"fmt"
	"math"
	"strings"
)

type LoadingType string

const (
	LoadingHA LoadingType = "HA"
	LoadingHB LoadingType = "HB"
)

// HA UDL curve per notional lane, BD 37 form: W = a*(1/L)^n up to the long
// span break, then the shallow tail. Coefficients kept as constants so they
// can be re-verified against the governing code of practice.
const (
	haShortSpanCoeff    = 336.0
	haShortSpanExponent = 0.67
	haLongSpanCoeff     = 36.0
	haLongSpanExponent  = 0.1
	haSpanBreakM        = 50.0

	kelPerLaneKN = 120.0

	// One HB unit is 10 kN per axle by convention.
	hbUnitAxleKN = 10.0
)

// Access multipliers on the resulting intensity.
const (
	accessCompanyFactor = 1.3
	accessPublicFactor  = 1.5
)

type Input struct {
	LoadingType  LoadingType `json:"loading_type"`
	SpanM        float64     `json:"span_m"`
	LoadedWidthM float64     `json:"loaded_width_m"`
	LaneWidthM   float64     `json:"lane_width_m"`
	AccessType   string      `json:"access_type"`
	HBUnits      float64     `json:"hb_units"`
}

type Result struct {
	UDLKNPerM     float64 `json:"udl_kn_per_m"`
	KELKN         float64 `json:"kel_kn"`
	NotionalLanes int     `json:"notional_lanes"`
	AccessFactor  float64 `json:"access_factor"`
}

type InvalidLoadingParametersError struct {
	Field  string
	Reason string
}

func (e *InvalidLoadingParametersError) Error() string {
	return fmt.Sprintf("invalid loading parameters: %s %s", e.Field, e.Reason)
}

// Compute resolves the highway loading intensities for the loaded carriageway.
// HA follows the span-decay curve per notional lane with a fixed knife edge
// load; HB is the unit-scaled intensity shared across the notional lanes with
// no span decay.
func Compute(in Input) (Result, error) {
	if in.SpanM <= 0 {
		return Result{}, &InvalidLoadingParametersError{Field: "span_m", Reason: "must be positive"}
	}
	if in.LaneWidthM <= 0 {
		return Result{}, &InvalidLoadingParametersError{Field: "lane_width_m", Reason: "must be positive"}
	}
	if in.LoadedWidthM < in.LaneWidthM {
		return Result{}, &InvalidLoadingParametersError{Field: "loaded_width_m", Reason: "must be at least one lane width"}
	}

	lanes := int(math.Floor(in.LoadedWidthM / in.LaneWidthM))
	if lanes < 1 {
		lanes = 1
	}

	access, err := accessFactor(in.AccessType)
	if err != nil {
		return Result{}, err
	}

	res := Result{NotionalLanes: lanes, AccessFactor: access}
	switch in.LoadingType {
	case LoadingHA:
		res.UDLKNPerM = haLaneUDL(in.SpanM) * float64(lanes) * access
		res.KELKN = kelPerLaneKN * float64(lanes) * access
	case LoadingHB:
		if in.HBUnits <= 0 {
			return Result{}, &InvalidLoadingParametersError{Field: "hb_units", Reason: "must be positive for HB loading"}
		}
		res.UDLKNPerM = in.HBUnits * hbUnitAxleKN / float64(lanes) * access
	default:
		return Result{}, &InvalidLoadingParametersError{Field: "loading_type", Reason: fmt.Sprintf("%q not recognised", in.LoadingType)}
	}
	return res, nil
}

func haLaneUDL(spanM float64) float64 {
	if spanM <= haSpanBreakM {
		return haShortSpanCoeff * math.Pow(1/spanM, haShortSpanExponent)
	}
	return haLongSpanCoeff * math.Pow(1/spanM, haLongSpanExponent)
}

func accessFactor(accessType string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(accessType)) {
	case "company":
		return accessCompanyFactor, nil
	case "public":
		return accessPublicFactor, nil
	case "", "private":
		return 1.0, nil
	}
	return 0, &InvalidLoadingParametersError{Field: "access_type", Reason: fmt.Sprintf("%q not recognised", accessType)}
}
