package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/middlewares"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// MaxRangeDays caps the inclusive span of a history or summary query.
const MaxRangeDays = 366

// respondError maps service errors onto status codes; anything unrecognised
// is a 500 and its text is not echoed to the client.
func respondError(c *gin.Context, err error) {
	if ve, ok := utils.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.ByField()})
		return
	}
	if errors.Is(err, utils.ErrComputation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middlewares.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// dateRange reads ?from=&to= (YYYY-MM-DD, local time). Missing values default
// to the current month. The span may cover at most MaxRangeDays days.
func dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format(dateLayout))
	toStr := c.DefaultQuery("to", last.Format(dateLayout))

	from, err := time.ParseInLocation(dateLayout, fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return from, to, false
	}
	to, err = time.ParseInLocation(dateLayout, toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return from, to, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return from, to, false
	}
	if to.After(from.AddDate(0, 0, MaxRangeDays-1)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("date range must not exceed %d days", MaxRangeDays)})
		return from, to, false
	}
	return from, to, true
}
