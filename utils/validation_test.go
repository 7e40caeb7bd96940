package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMetricsInput() MetricsInput {
	return MetricsInput{Age: "25", Gender: "male", Height: "180", Weight: "75"}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	var in MetricsInput
	err := json.Unmarshal([]byte(`{"age":25,"gender":"female","height":" 165.5 ","weight":null}`), &in)
	require.NoError(t, err)

	assert.Equal(t, Number("25"), in.Age)
	assert.Equal(t, Number("165.5"), in.Height)
	assert.Equal(t, Number(""), in.Weight)
}

func TestValidateMetrics(t *testing.T) {
	t.Run("valid input is coerced to numbers", func(t *testing.T) {
		m, err := ValidateMetrics(validMetricsInput())
		require.NoError(t, err)
		assert.Equal(t, PersonMetrics{Age: 25, Gender: Male, HeightCm: 180, WeightKg: 75}, m)
	})

	t.Run("age below range", func(t *testing.T) {
		in := validMetricsInput()
		in.Age = "10"
		_, err := ValidateMetrics(in)

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, ve.Has("age"))
		assert.Contains(t, ve.Error(), "age")
		assert.Len(t, ve.Fields, 1)
	})

	t.Run("weight above range", func(t *testing.T) {
		in := validMetricsInput()
		in.Weight = NumberOf(500)
		_, err := ValidateMetrics(in)

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, ve.Has("weight"))
		assert.Contains(t, ve.ByField()["weight"][0], "weight")
	})

	t.Run("reports every failing field", func(t *testing.T) {
		_, err := ValidateMetrics(MetricsInput{Age: "abc", Gender: "other", Height: "", Weight: "29.9"})

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		fields := ve.ByField()
		assert.Equal(t, []string{"age must be a number"}, fields["age"])
		assert.Equal(t, []string{"gender must be male or female"}, fields["gender"])
		assert.Equal(t, []string{"height is required"}, fields["height"])
		assert.Equal(t, []string{"weight must be between 30 and 300 kg"}, fields["weight"])
	})

	t.Run("fractional age rejected", func(t *testing.T) {
		in := validMetricsInput()
		in.Age = "25.5"
		_, err := ValidateMetrics(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"age must be a whole number"}, ve.ByField()["age"])
	})

	t.Run("calculator age cap is 80", func(t *testing.T) {
		in := validMetricsInput()
		in.Age = "81"
		_, err := ValidateMetrics(in)
		require.Error(t, err)

		in.Age = "80"
		_, err = ValidateMetrics(in)
		require.NoError(t, err)
	})

	t.Run("gender is case sensitive", func(t *testing.T) {
		in := validMetricsInput()
		in.Gender = "Male"
		_, err := ValidateMetrics(in)
		require.Error(t, err)
	})

	t.Run("non-finite rejected", func(t *testing.T) {
		in := validMetricsInput()
		in.Height = "NaN"
		in.Weight = "Inf"
		_, err := ValidateMetrics(in)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, ve.Has("height"))
		assert.True(t, ve.Has("weight"))
	})
}

func TestValidateIBWInput(t *testing.T) {
	g, h, err := ValidateIBWInput(IBWInput{Age: "95", Gender: "female", Height: "160"})
	require.NoError(t, err)
	assert.Equal(t, Female, g)
	assert.Equal(t, 160.0, h)

	_, _, err = ValidateIBWInput(IBWInput{Age: "101", Gender: "female", Height: "99"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.True(t, ve.Has("age"))
	assert.True(t, ve.Has("height"))
	assert.False(t, ve.Has("gender"))
}

func TestValidateEnergyInput(t *testing.T) {
	c, b, err := ValidateEnergyInput(EnergyInput{CaloriesConsumed: "2000", CaloriesBurnt: "0"})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, c)
	assert.Equal(t, 0.0, b)

	_, _, err = ValidateEnergyInput(EnergyInput{CaloriesConsumed: "499", CaloriesBurnt: "5001"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.True(t, ve.Has("calories_consumed"))
	assert.True(t, ve.Has("calories_burnt"))
}

func TestValidateDailyTotals(t *testing.T) {
	c, _, err := ValidateDailyTotals(EnergyInput{CaloriesConsumed: "0", CaloriesBurnt: "300"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)

	_, _, err = ValidateDailyTotals(EnergyInput{CaloriesConsumed: "-1", CaloriesBurnt: "300"})
	require.Error(t, err)
}

func TestParseActivityLevel(t *testing.T) {
	cases := []struct {
		in   string
		want ActivityLevel
		ok   bool
	}{
		{"lightly_active", LightlyActive, true},
		{"1.55", ModeratelyActive, true},
		{" 1.725 ", VeryActive, true},
		{"1.2", "", false},
		{"couch", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseActivityLevel(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestActivityInput_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want ActivityLevel
	}{
		{`"moderately_active"`, ModeratelyActive},
		{`" very_active "`, VeryActive},
		{`1.375`, LightlyActive},
		{`"1.55"`, ModeratelyActive},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var in ActivityInput
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &in))
			level, ok := ParseActivityLevel(string(in))
			require.True(t, ok)
			assert.Equal(t, tc.want, level)
		})
	}

	var in ActivityInput
	require.NoError(t, json.Unmarshal([]byte(`null`), &in))
	assert.Empty(t, in)
	assert.Error(t, json.Unmarshal([]byte(`true`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"level":"very_active"}`), &in))
}
