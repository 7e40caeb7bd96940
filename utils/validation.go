package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a raw numeric input as submitted by a form or JSON body. It
// decodes from either a JSON number or a JSON string so that "25" and 25 are
// both accepted; the value is parsed and range-checked by the Validate*
// functions.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(str))
		return nil
	}
	*n = Number(s)
	return nil
}

// NumberOf formats v as a Number.
func NumberOf(v float64) Number {
	return Number(strconv.FormatFloat(v, 'f', -1, 64))
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	CalculatorAgeRange    = Range{Min: 15, Max: 80}
	IBWAgeRange           = Range{Min: 15, Max: 100}
	HeightCmRange         = Range{Min: 100, Max: 250}
	WeightKgRange         = Range{Min: 30, Max: 300}
	CaloriesConsumedRange = Range{Min: 500, Max: 3500}
	CaloriesBurntRange    = Range{Min: 0, Max: 5000}

	// DailyIntakeRange bounds a logged day's total intake; a day with no
	// meals is a legitimate 0.
	DailyIntakeRange = Range{Min: 0, Max: 10000}
	DailyGoalRange   = Range{Min: 500, Max: 10000}
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case Male, Female:
		return Gender(s), true
	}
	return "", false
}

type ActivityLevel string

const (
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
)

// activityMultipliers is the closed set of supported activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
}

// ActivityLevels returns the supported levels in ascending order.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{LightlyActive, ModeratelyActive, VeryActive}
}

func (a ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[a]
	return m, ok
}

// ParseActivityLevel accepts a level label or its multiplier literal ("1.55").
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	s = strings.TrimSpace(s)
	if _, ok := activityMultipliers[ActivityLevel(s)]; ok {
		return ActivityLevel(s), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	for level, m := range activityMultipliers {
		if m == v {
			return level, true
		}
	}
	return "", false
}

// ActivityInput is a submitted activity level. It holds either a label such
// as "moderately_active" or a multiplier such as 1.55, and decodes from a
// JSON string or number. ParseActivityLevel resolves it.
type ActivityInput string

func (a *ActivityInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*a = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = ActivityInput(strings.TrimSpace(str))
	default:
		var f json.Number
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("activity_level must be a label or a multiplier: %w", err)
		}
		*a = ActivityInput(f)
	}
	return nil
}

// PersonMetrics is a validated body-measurement record.
type PersonMetrics struct {
	Age      int     `json:"age"`
	Gender   Gender  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// Validate re-checks a typed record against the calculator ranges, with age
// bounded by ageRange.
func (m PersonMetrics) Validate(ageRange Range) error {
	ve := &ValidationError{}
	checkRange(ve, "age", float64(m.Age), ageRange, " years")
	if _, ok := ParseGender(string(m.Gender)); !ok {
		ve.Add("gender", "gender must be male or female")
	}
	checkRange(ve, "height", m.HeightCm, HeightCmRange, " cm")
	checkRange(ve, "weight", m.WeightKg, WeightKgRange, " kg")
	return ve.errOrNil()
}

type MetricsInput struct {
	Age    Number `json:"age"`
	Gender string `json:"gender"`
	Height Number `json:"height"`
	Weight Number `json:"weight"`
}

type IBWInput struct {
	Age    Number `json:"age"`
	Gender string `json:"gender"`
	Height Number `json:"height"`
}

type EnergyInput struct {
	CaloriesConsumed Number `json:"calories_consumed"`
	CaloriesBurnt    Number `json:"calories_burnt"`
}

// ValidateMetrics validates the calorie and BMI calculator form.
func ValidateMetrics(in MetricsInput) (PersonMetrics, error) {
	ve := &ValidationError{}
	age, ageOK := parseAge(ve, in.Age, CalculatorAgeRange)
	gender, genderOK := parseGenderField(ve, in.Gender)
	height, heightOK := parseInRange(ve, "height", in.Height, HeightCmRange, " cm")
	weight, weightOK := parseInRange(ve, "weight", in.Weight, WeightKgRange, " kg")
	if !(ageOK && genderOK && heightOK && weightOK) {
		return PersonMetrics{}, ve
	}
	return PersonMetrics{Age: age, Gender: gender, HeightCm: height, WeightKg: weight}, nil
}

// ValidateIBWInput validates the ideal-body-weight form. Age is checked but
// the Devine formula does not use it.
func ValidateIBWInput(in IBWInput) (Gender, float64, error) {
	ve := &ValidationError{}
	_, ageOK := parseAge(ve, in.Age, IBWAgeRange)
	gender, genderOK := parseGenderField(ve, in.Gender)
	height, heightOK := parseInRange(ve, "height", in.Height, HeightCmRange, " cm")
	if !(ageOK && genderOK && heightOK) {
		return "", 0, ve
	}
	return gender, height, nil
}

// ValidateEnergyInput validates the calories-burnt form.
func ValidateEnergyInput(in EnergyInput) (consumed, burnt float64, err error) {
	ve := &ValidationError{}
	consumed, cOK := parseInRange(ve, "calories_consumed", in.CaloriesConsumed, CaloriesConsumedRange, " kcal")
	burnt, bOK := parseInRange(ve, "calories_burnt", in.CaloriesBurnt, CaloriesBurntRange, " kcal")
	if !(cOK && bOK) {
		return 0, 0, ve
	}
	return consumed, burnt, nil
}

// ValidateDailyTotals validates a logged day's intake and expenditure.
func ValidateDailyTotals(in EnergyInput) (consumed, burnt float64, err error) {
	ve := &ValidationError{}
	consumed, cOK := parseInRange(ve, "calories_consumed", in.CaloriesConsumed, DailyIntakeRange, " kcal")
	burnt, bOK := parseInRange(ve, "calories_burnt", in.CaloriesBurnt, CaloriesBurntRange, " kcal")
	if !(cOK && bOK) {
		return 0, 0, ve
	}
	return consumed, burnt, nil
}

// ValidateGoal validates a daily calorie goal.
func ValidateGoal(raw Number) (float64, error) {
	ve := &ValidationError{}
	v, ok := parseInRange(ve, "calories", raw, DailyGoalRange, " kcal")
	if !ok {
		return 0, ve
	}
	return v, nil
}

func parseNumber(ve *ValidationError, field string, raw Number) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		ve.Add(field, "%s is required", field)
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		ve.Add(field, "%s must be a number", field)
		return 0, false
	}
	return v, true
}

func parseInRange(ve *ValidationError, field string, raw Number, r Range, unit string) (float64, bool) {
	v, ok := parseNumber(ve, field, raw)
	if !ok {
		return 0, false
	}
	return v, checkRange(ve, field, v, r, unit)
}

func parseAge(ve *ValidationError, raw Number, r Range) (int, bool) {
	v, ok := parseNumber(ve, "age", raw)
	if !ok {
		return 0, false
	}
	if v != math.Trunc(v) {
		ve.Add("age", "age must be a whole number")
		return 0, false
	}
	if !checkRange(ve, "age", v, r, " years") {
		return 0, false
	}
	return int(v), true
}

func parseGenderField(ve *ValidationError, raw string) (Gender, bool) {
	if raw == "" {
		ve.Add("gender", "gender is required")
		return "", false
	}
	g, ok := ParseGender(raw)
	if !ok {
		ve.Add("gender", "gender must be male or female")
	}
	return g, ok
}

func checkRange(ve *ValidationError, field string, v float64, r Range, unit string) bool {
	if !r.Contains(v) {
		ve.Add(field, "%s must be between %g and %g%s", field, r.Min, r.Max, unit)
		return false
	}
	return true
}
