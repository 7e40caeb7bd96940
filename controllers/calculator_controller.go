package controllers

import (
	"net/http"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/services"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/gin-gonic/gin"
)

type CalculatorController struct {
	Svc *services.CalculatorService
}

func NewCalculatorController(svc *services.CalculatorService) *CalculatorController {
	return &CalculatorController{Svc: svc}
}

type CalorieInput struct {
	utils.MetricsInput
	ActivityLevel utils.ActivityInput `json:"activity_level"`
}

func (h *CalculatorController) CalorieTargets(c *gin.Context) {
	var input CalorieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.CalorieTargets(input.MetricsInput, string(input.ActivityLevel))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CalculatorController) BMI(c *gin.Context) {
	var input utils.MetricsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.BMI(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CalculatorController) IBW(c *gin.Context) {
	var input utils.IBWInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.IBW(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CalculatorController) EnergyBalance(c *gin.Context) {
	var input utils.EnergyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.EnergyBalance(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
