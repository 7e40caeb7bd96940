// controllers/dashboard_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/services"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

func (h *DashboardController) GetGoal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goal, err := h.Svc.GetGoal(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *DashboardController) UpdateGoal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Calories utils.Number `json:"calories"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Svc.UpsertGoal(c.Request.Context(), userID, req.Calories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// UpdateProgress sets the consumed/burnt totals for ?date= (default today).
func (h *DashboardController) UpdateProgress(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		d, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = d
	}

	var body utils.EnergyInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dp, err := h.Svc.UpsertProgress(c.Request.Context(), userID, date, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dp)
}

func (h *DashboardController) GetHistory(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	out, err := h.Svc.History(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DashboardController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
