package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/models"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// ProgressNotifier receives dashboard updates for push delivery.
type ProgressNotifier interface {
	Broadcast(userID uint, payload any)
}

type DashboardService struct {
	db     *gorm.DB
	notify ProgressNotifier
	log    *zap.Logger
}

func NewDashboardService(db *gorm.DB, notify ProgressNotifier, log *zap.Logger) *DashboardService {
	return &DashboardService{db: db, notify: notify, log: log}
}

// ---------- Goal ----------

// GetGoal returns the user's calorie goal, or a zero goal when none is set.
func (s *DashboardService) GetGoal(ctx context.Context, userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyGoal{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	return &goal, nil
}

func (s *DashboardService) UpsertGoal(ctx context.Context, userID uint, raw utils.Number) (*models.DailyGoal, error) {
	calories, err := utils.ValidateGoal(raw)
	if err != nil {
		return nil, err
	}

	goal := models.DailyGoal{UserID: userID, Calories: calories}
	err = s.db.WithContext(ctx).
		Clauses(upsertOn([]string{"user_id"}, "calories")...).
		Create(&goal).Error
	if err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return &goal, nil
}

// ---------- Progress ----------

// UpsertProgress records the totals for the local day containing date,
// replacing any earlier totals for that day.
func (s *DashboardService) UpsertProgress(ctx context.Context, userID uint, date time.Time, in utils.EnergyInput) (*models.DailyProgress, error) {
	consumed, burnt, err := utils.ValidateDailyTotals(in)
	if err != nil {
		return nil, err
	}

	start := dayStart(date)
	dp := models.DailyProgress{UserID: userID, Date: start, CaloriesConsumed: consumed, CaloriesBurnt: burnt}
	err = s.db.WithContext(ctx).
		Clauses(upsertOn([]string{"user_id", "date"}, "calories_consumed", "calories_burnt")...).
		Create(&dp).Error
	if err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	incProgressUpdate()
	s.log.Info("progress updated",
		zap.Uint("user_id", userID),
		zap.String("date", start.Format(dateLayout)))

	if s.notify != nil {
		s.notify.Broadcast(userID, map[string]any{
			"kind":    "progress.updated",
			"date":    start.Format(dateLayout),
			"balance": utils.NewEnergyBalance(consumed, burnt),
		})
	}
	return &dp, nil
}

// ---------- History ----------

type HistoryDay struct {
	Date          string              `json:"date"`
	Balance       utils.EnergyBalance `json:"balance"`
	PercentOfGoal float64             `json:"percent_of_goal"`
	WithinGoal    bool                `json:"within_goal"`
}

type History struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	GoalCalories float64      `json:"goal_calories"`
	Days         []HistoryDay `json:"days"`
}

func (s *DashboardService) History(ctx context.Context, userID uint, from, to time.Time) (*History, error) {
	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.progressBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	out := &History{
		From:         from.Format(dateLayout),
		To:           to.Format(dateLayout),
		GoalCalories: goal.Calories,
		Days:         make([]HistoryDay, 0, len(rows)),
	}
	for _, r := range rows {
		out.Days = append(out.Days, toHistoryDay(r, goal.Calories))
	}
	return out, nil
}

// ---------- Summary ----------

type Summary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	GoalCalories     float64 `json:"goal_calories"`
	AvgConsumed      float64 `json:"avg_consumed"`
	AvgBurnt         float64 `json:"avg_burnt"`
	AvgBalance       float64 `json:"avg_balance"`
	AvgPercentOfGoal float64 `json:"avg_percent_of_goal"`
	DaysOverGoal     int     `json:"days_over_goal"`

	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

func (s *DashboardService) Summary(
	ctx context.Context, userID uint, from, to time.Time, includeMissing bool,
) (*Summary, error) {
	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.progressBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return summarize(rows, goal.Calories, from, to, includeMissing), nil
}

// summarize averages rows over the logged days, or over every day in
// [from, to] when includeMissing is set (missing days count as zero).
func summarize(rows []models.DailyProgress, goal float64, from, to time.Time, includeMissing bool) *Summary {
	idx := map[string]models.DailyProgress{}
	for _, r := range rows {
		idx[r.Date.Format(dateLayout)] = r
	}

	var dates []time.Time
	if includeMissing {
		for d := dayStart(from); !d.After(to); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	} else {
		for _, r := range rows {
			dates = append(dates, dayStart(r.Date))
		}
	}

	var consumed, burnt, balance, percent float64
	over := 0
	for _, d := range dates {
		dp := idx[d.Format(dateLayout)] // zero value if not logged
		b := utils.NewEnergyBalance(dp.CaloriesConsumed, dp.CaloriesBurnt)
		consumed += b.ConsumedKcal
		burnt += b.BurntKcal
		balance += b.DeltaKcal
		percent += pct(dp.CaloriesConsumed, goal)
		if goal > 0 && dp.CaloriesConsumed > goal {
			over++
		}
	}

	out := &Summary{GoalCalories: goal, DaysOverGoal: over}
	out.Range.From = from.Format(dateLayout)
	out.Range.To = to.Format(dateLayout)
	out.AvgConsumed = avg(consumed, len(dates))
	out.AvgBurnt = avg(burnt, len(dates))
	out.AvgBalance = avg(balance, len(dates))
	out.AvgPercentOfGoal = avg(percent, len(dates))
	out.Metadata.DaysCounted = len(dates)
	out.Metadata.IncludeMissingDays = includeMissing
	return out
}

// ---------- internals ----------

// upsertOn turns an insert into a single-statement upsert keyed on the
// unique columns, and reads the stored row back.
func upsertOn(keys []string, columns ...string) []clause.Expression {
	conflict := make([]clause.Column, len(keys))
	for i, k := range keys {
		conflict[i] = clause.Column{Name: k}
	}
	return []clause.Expression{
		clause.OnConflict{
			Columns:   conflict,
			DoUpdates: clause.AssignmentColumns(append(columns, "updated_at", "deleted_at")),
		},
		clause.Returning{},
	}
}

func (s *DashboardService) progressBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyProgress, error) {
	var rows []models.DailyProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(from), dayEnd(to)).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return rows, nil
}

func toHistoryDay(dp models.DailyProgress, goal float64) HistoryDay {
	return HistoryDay{
		Date:          dp.Date.Format(dateLayout),
		Balance:       utils.NewEnergyBalance(dp.CaloriesConsumed, dp.CaloriesBurnt),
		PercentOfGoal: pct(dp.CaloriesConsumed, goal),
		WithinGoal:    goal > 0 && dp.CaloriesConsumed <= goal,
	}
}

// pct is consumed as a percentage of goal; 0 when no goal is set.
func pct(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return round2((actual / goal) * 100.0)
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time { return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()) }
func dayEnd(t time.Time) time.Time   { return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location()) }
