package utils

import "math"

type BMICategory string

const (
	Underweight  BMICategory = "Underweight"
	NormalWeight BMICategory = "Normal Weight"
	Overweight   BMICategory = "Overweight"
	Obese        BMICategory = "Obese"
)

const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
	obeseBMI      = 29.9
	bmiPrimeBase  = 25.0
)

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type BMIResult struct {
	BMI                  float64     `json:"bmi"`
	Category             BMICategory `json:"category"`
	HealthyWeightRangeKg WeightRange `json:"healthy_weight_range_kg"`
	BMIPrime             float64     `json:"bmi_prime"`
	PonderalIndex        float64     `json:"ponderal_index"`
}

// CalculateBMI expects height in centimeters and weight in kilograms.
// It performs no range checks beyond what keeps the arithmetic defined.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	h, err := heightMeters(heightCm)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, computationErr("weight %v is not a finite number", weightKg)
	}
	return weightKg / (h * h), nil
}

// ClassifyBMI buckets a BMI with lower bounds inclusive. 24.9 itself is
// Overweight and 29.9 itself is Obese.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < healthyBMIMin:
		return Underweight
	case bmi < healthyBMIMax:
		return NormalWeight
	case bmi < obeseBMI:
		return Overweight
	default:
		return Obese
	}
}

func ComputeBMI(m PersonMetrics) (BMIResult, error) {
	if err := m.Validate(CalculatorAgeRange); err != nil {
		return BMIResult{}, err
	}
	bmi, err := CalculateBMI(m.HeightCm, m.WeightKg)
	if err != nil {
		return BMIResult{}, err
	}

	h := m.HeightCm / 100
	return BMIResult{
		BMI:      bmi,
		Category: ClassifyBMI(bmi),
		HealthyWeightRangeKg: WeightRange{
			Min: Round1(healthyBMIMin * h * h),
			Max: Round1(healthyBMIMax * h * h),
		},
		BMIPrime:      Round1(bmi / bmiPrimeBase),
		PonderalIndex: Round1(m.WeightKg / (h * h * h)),
	}, nil
}

func heightMeters(heightCm float64) (float64, error) {
	if math.IsNaN(heightCm) || math.IsInf(heightCm, 0) || heightCm <= 0 {
		return 0, computationErr("height %v cm must be a positive finite number", heightCm)
	}
	return heightCm / 100, nil
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }
