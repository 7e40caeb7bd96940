package main

import (
	"encoding/json"
	"io"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/services"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCalcCmd() *cobra.Command {
	calc := &cobra.Command{
		Use:   "calc",
		Short: "Run a health calculator and print the result as JSON",
	}
	svc := services.NewCalculatorService(zap.NewNop())

	var (
		age, gender, height, weight, activity string
		consumed, burnt                       string
	)
	metricsFlags := func(cmd *cobra.Command, withWeight bool) {
		cmd.Flags().StringVar(&age, "age", "", "Age in years")
		cmd.Flags().StringVar(&gender, "gender", "", "male or female")
		cmd.Flags().StringVar(&height, "height", "", "Height in cm")
		if withWeight {
			cmd.Flags().StringVar(&weight, "weight", "", "Weight in kg")
		}
	}
	metricsInput := func() utils.MetricsInput {
		return utils.MetricsInput{
			Age:    utils.Number(age),
			Gender: gender,
			Height: utils.Number(height),
			Weight: utils.Number(weight),
		}
	}

	caloriesCmd := &cobra.Command{
		Use:   "calories",
		Short: "Maintenance and weight-loss calorie targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc.CalorieTargets(metricsInput(), activity)
			return printResult(cmd, out, err)
		},
	}
	metricsFlags(caloriesCmd, true)
	caloriesCmd.Flags().StringVar(&activity, "activity", "", "lightly_active, moderately_active, very_active (or 1.375, 1.55, 1.725)")

	bmiCmd := &cobra.Command{
		Use:   "bmi",
		Short: "Body mass index, category and healthy weight range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc.BMI(metricsInput())
			return printResult(cmd, out, err)
		},
	}
	metricsFlags(bmiCmd, true)

	ibwCmd := &cobra.Command{
		Use:   "ibw",
		Short: "Ideal body weight (Devine formula)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc.IBW(utils.IBWInput{
				Age:    utils.Number(age),
				Gender: gender,
				Height: utils.Number(height),
			})
			return printResult(cmd, out, err)
		},
	}
	metricsFlags(ibwCmd, false)

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Calories consumed minus calories burnt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc.EnergyBalance(utils.EnergyInput{
				CaloriesConsumed: utils.Number(consumed),
				CaloriesBurnt:    utils.Number(burnt),
			})
			return printResult(cmd, out, err)
		},
	}
	balanceCmd.Flags().StringVar(&consumed, "consumed", "", "Calories consumed (kcal)")
	balanceCmd.Flags().StringVar(&burnt, "burnt", "", "Calories burnt (kcal)")

	calc.AddCommand(caloriesCmd, bmiCmd, ibwCmd, balanceCmd)
	return calc
}

// printResult writes v to stdout, or the field-keyed errors to stderr.
func printResult(cmd *cobra.Command, v any, err error) error {
	if err != nil {
		if ve, ok := utils.AsValidationError(err); ok {
			_ = writeJSON(cmd.ErrOrStderr(), map[string]any{"error": "validation failed", "fields": ve.ByField()})
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
