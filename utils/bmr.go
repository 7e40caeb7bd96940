package utils

import "math"

const (
	halfKgWeeklyDeficit = 500
	oneKgWeeklyDeficit  = 1000
)

// CalorieTargets are daily kcal figures derived from a person's BMR.
type CalorieTargets struct {
	BMR         int `json:"bmr"`
	Maintenance int `json:"maintenance"`
	LoseHalfKg  int `json:"lose_half_kg"`
	LoseOneKg   int `json:"lose_one_kg"`
}

// CalculateBMR uses the revised Harris-Benedict coefficients.
func CalculateBMR(m PersonMetrics) float64 {
	age := float64(m.Age)
	if m.Gender == Male {
		return 88.362 + 13.397*m.WeightKg + 4.799*m.HeightCm - 5.677*age
	}
	return 447.593 + 9.247*m.WeightKg + 3.098*m.HeightCm - 4.33*age
}

// ComputeCalorieTargets returns maintenance calories for the activity level
// and the intakes for losing 0.5 kg and 1 kg per week.
func ComputeCalorieTargets(m PersonMetrics, level ActivityLevel) (CalorieTargets, error) {
	ve, ok := AsValidationError(m.Validate(CalculatorAgeRange))
	if !ok {
		ve = &ValidationError{}
	}
	multiplier, ok := level.Multiplier()
	if !ok {
		ve.Add("activity_level", "activity_level must be one of lightly_active, moderately_active, very_active")
	}
	if err := ve.errOrNil(); err != nil {
		return CalorieTargets{}, err
	}

	bmr := CalculateBMR(m)
	maintenance := int(math.Round(bmr * multiplier))
	return CalorieTargets{
		BMR:         int(math.Round(bmr)),
		Maintenance: maintenance,
		LoseHalfKg:  maintenance - halfKgWeeklyDeficit,
		LoseOneKg:   maintenance - oneKgWeeklyDeficit,
	}, nil
}
