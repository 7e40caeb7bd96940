package utils

// EnergyBalance is consumed minus burnt kcal. A positive delta is a surplus,
// a negative one a deficit.
type EnergyBalance struct {
	ConsumedKcal float64 `json:"calories_consumed"`
	BurntKcal    float64 `json:"calories_burnt"`
	DeltaKcal    float64 `json:"delta_kcal"`
}

// NewEnergyBalance does no range checking; dashboard history uses it for
// logged days that fall outside the calculator's intake range.
func NewEnergyBalance(consumed, burnt float64) EnergyBalance {
	return EnergyBalance{ConsumedKcal: consumed, BurntKcal: burnt, DeltaKcal: consumed - burnt}
}

func ComputeEnergyBalance(consumed, burnt float64) (EnergyBalance, error) {
	ve := &ValidationError{}
	checkRange(ve, "calories_consumed", consumed, CaloriesConsumedRange, " kcal")
	checkRange(ve, "calories_burnt", burnt, CaloriesBurntRange, " kcal")
	if err := ve.errOrNil(); err != nil {
		return EnergyBalance{}, err
	}
	return NewEnergyBalance(consumed, burnt), nil
}
