package utils

import "math"

const (
	cmPerInch        = 2.54
	devineBaseInches = 60
	devineKgPerInch  = 2.3
	maleDevineBase   = 50.0
	femaleDevineBase = 45.5
)

type IBWResult struct {
	IdealWeightKg  float64     `json:"ideal_weight_kg"`
	HealthyRangeKg WeightRange `json:"healthy_range_kg"`
}

// ComputeIBW applies the Devine formula. Heights at or below 60 inches get
// the base weight; no reduction is applied for shorter stature.
func ComputeIBW(g Gender, heightCm float64) (IBWResult, error) {
	ve := &ValidationError{}
	if _, ok := ParseGender(string(g)); !ok {
		ve.Add("gender", "gender must be male or female")
	}
	if math.IsNaN(heightCm) || math.IsInf(heightCm, 0) || heightCm <= 0 {
		return IBWResult{}, computationErr("height %v cm must be a positive finite number", heightCm)
	}
	checkRange(ve, "height", heightCm, HeightCmRange, " cm")
	if err := ve.errOrNil(); err != nil {
		return IBWResult{}, err
	}

	base := femaleDevineBase
	if g == Male {
		base = maleDevineBase
	}
	ibw := base
	if over := heightCm/cmPerInch - devineBaseInches; over > 0 {
		ibw = base + devineKgPerInch*over
	}
	ibw = Round1(ibw)

	return IBWResult{
		IdealWeightKg: ibw,
		HealthyRangeKg: WeightRange{
			Min: Round1(ibw * 0.9),
			Max: Round1(ibw * 1.1),
		},
	}, nil
}
