package services

import (
	"errors"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"go.uber.org/zap"
)

const (
	EngineCalories = "calories"
	EngineBMI      = "bmi"
	EngineIBW      = "ibw"
	EngineEnergy   = "energy_balance"
)

// CalculatorService validates raw form input and runs exactly one engine per
// call. It holds no per-request state and is safe for concurrent use.
type CalculatorService struct {
	log *zap.Logger
}

func NewCalculatorService(log *zap.Logger) *CalculatorService {
	return &CalculatorService{log: log}
}

func (s *CalculatorService) CalorieTargets(in utils.MetricsInput, activity string) (utils.CalorieTargets, error) {
	metrics, err := utils.ValidateMetrics(in)
	ve, _ := utils.AsValidationError(err)
	level, ok := utils.ParseActivityLevel(activity)
	if !ok {
		if ve == nil {
			ve = &utils.ValidationError{}
		}
		ve.Add("activity_level", "activity_level must be one of lightly_active, moderately_active, very_active")
	}
	if ve != nil {
		s.record(EngineCalories, ve)
		return utils.CalorieTargets{}, ve
	}

	out, err := utils.ComputeCalorieTargets(metrics, level)
	s.record(EngineCalories, err)
	return out, err
}

func (s *CalculatorService) BMI(in utils.MetricsInput) (utils.BMIResult, error) {
	metrics, err := utils.ValidateMetrics(in)
	if err != nil {
		s.record(EngineBMI, err)
		return utils.BMIResult{}, err
	}
	out, err := utils.ComputeBMI(metrics)
	s.record(EngineBMI, err)
	return out, err
}

func (s *CalculatorService) IBW(in utils.IBWInput) (utils.IBWResult, error) {
	gender, height, err := utils.ValidateIBWInput(in)
	if err != nil {
		s.record(EngineIBW, err)
		return utils.IBWResult{}, err
	}
	out, err := utils.ComputeIBW(gender, height)
	s.record(EngineIBW, err)
	return out, err
}

func (s *CalculatorService) EnergyBalance(in utils.EnergyInput) (utils.EnergyBalance, error) {
	consumed, burnt, err := utils.ValidateEnergyInput(in)
	if err != nil {
		s.record(EngineEnergy, err)
		return utils.EnergyBalance{}, err
	}
	out, err := utils.ComputeEnergyBalance(consumed, burnt)
	s.record(EngineEnergy, err)
	return out, err
}

func (s *CalculatorService) record(engine string, err error) {
	var ve *utils.ValidationError
	switch {
	case err == nil:
		incCalculation(engine, "ok")
		s.log.Debug("calculation completed", zap.String("engine", engine))
	case errors.As(err, &ve):
		incCalculation(engine, "invalid")
		s.log.Debug("calculation rejected",
			zap.String("engine", engine),
			zap.Int("violations", len(ve.Fields)))
	default:
		incCalculation(engine, "error")
		s.log.Warn("calculation failed", zap.String("engine", engine), zap.Error(err))
	}
}
