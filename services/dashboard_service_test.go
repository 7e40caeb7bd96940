package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/models"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	goalColumns     = []string{"id", "created_at", "updated_at", "deleted_at", "user_id", "calories"}
	progressColumns = []string{"id", "created_at", "updated_at", "deleted_at", "user_id", "date", "calories_consumed", "calories_burnt"}
)

func day(d int) time.Time { return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC) }

func TestSummarize(t *testing.T) {
	rows := []models.DailyProgress{
		{Date: day(2), CaloriesConsumed: 2400, CaloriesBurnt: 400},
		{Date: day(4), CaloriesConsumed: 1800, CaloriesBurnt: 600},
	}

	t.Run("logged days only", func(t *testing.T) {
		got := summarize(rows, 2000, day(1), day(5), false)
		assert.Equal(t, 2, got.Metadata.DaysCounted)
		assert.Equal(t, 2100.0, got.AvgConsumed)
		assert.Equal(t, 500.0, got.AvgBurnt)
		assert.Equal(t, 1600.0, got.AvgBalance)
		assert.Equal(t, 105.0, got.AvgPercentOfGoal) // (120 + 90) / 2
		assert.Equal(t, 1, got.DaysOverGoal)
		assert.Equal(t, "2026-03-01", got.Range.From)
		assert.Equal(t, "2026-03-05", got.Range.To)
	})

	t.Run("missing days count as zero", func(t *testing.T) {
		got := summarize(rows, 2000, day(1), day(5), true)
		assert.Equal(t, 5, got.Metadata.DaysCounted)
		assert.Equal(t, 840.0, got.AvgConsumed)
		assert.Equal(t, 640.0, got.AvgBalance)
		assert.Equal(t, 42.0, got.AvgPercentOfGoal)
		assert.True(t, got.Metadata.IncludeMissingDays)
	})

	t.Run("no goal set", func(t *testing.T) {
		got := summarize(rows, 0, day(1), day(5), false)
		assert.Zero(t, got.AvgPercentOfGoal)
		assert.Zero(t, got.DaysOverGoal)
	})

	t.Run("empty range", func(t *testing.T) {
		got := summarize(nil, 2000, day(1), day(5), false)
		assert.Zero(t, got.Metadata.DaysCounted)
		assert.Zero(t, got.AvgConsumed)
	})
}

func TestDashboardService_GetGoalDefaultsToZero(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db, nil, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_goals"`)).
		WillReturnRows(sqlmock.NewRows(goalColumns))

	goal, err := svc.GetGoal(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), goal.UserID)
	assert.Zero(t, goal.Calories)
	require.NoError(t, mock.ExpectationsWereMet())
}

var (
	goalUpsert     = regexp.QuoteMeta(`INSERT INTO "daily_goals"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("user_id") DO UPDATE SET`) + `.*RETURNING \*`
	progressUpsert = regexp.QuoteMeta(`INSERT INTO "daily_progresses"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("user_id","date") DO UPDATE SET`) + `.*RETURNING \*`
)

func TestDashboardService_UpsertGoal(t *testing.T) {
	t.Run("single upsert statement", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewDashboardService(db, nil, zap.NewNop())
		created := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery(goalUpsert).
			WillReturnRows(sqlmock.NewRows(goalColumns).AddRow(11, created, time.Now(), nil, 3, 2200.0))

		goal, err := svc.UpsertGoal(context.Background(), 3, "2200")
		require.NoError(t, err)
		assert.Equal(t, uint(11), goal.ID)
		assert.Equal(t, 2200.0, goal.Calories)
		assert.True(t, goal.CreatedAt.Equal(created))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewDashboardService(db, nil, zap.NewNop())

		mock.ExpectQuery(goalUpsert).WillReturnError(errors.New("connection reset"))

		_, err := svc.UpsertGoal(context.Background(), 3, "2200")
		require.Error(t, err)
		_, isValidation := utils.AsValidationError(err)
		assert.False(t, isValidation)
	})

	t.Run("rejects out of range without touching the db", func(t *testing.T) {
		db, mock := newMockDB(t)
		svc := NewDashboardService(db, nil, zap.NewNop())

		_, err := svc.UpsertGoal(context.Background(), 3, "100")
		ve, ok := utils.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, ve.Has("calories"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDashboardService_UpsertProgress(t *testing.T) {
	t.Run("upserts the day and notifies", func(t *testing.T) {
		db, mock := newMockDB(t)
		notifier := &recordingNotifier{}
		svc := NewDashboardService(db, notifier, zap.NewNop())
		now := time.Now()

		mock.ExpectQuery(progressUpsert).
			WillReturnRows(sqlmock.NewRows(progressColumns).AddRow(5, now, now, nil, 3, day(2), 2100.0, 350.0))

		at := time.Date(2026, time.March, 2, 18, 30, 0, 0, time.UTC)
		dp, err := svc.UpsertProgress(context.Background(), 3, at, utils.EnergyInput{CaloriesConsumed: "2100", CaloriesBurnt: "350"})
		require.NoError(t, err)
		assert.Equal(t, uint(5), dp.ID)
		assert.Equal(t, day(2), dp.Date)
		assert.Equal(t, 2100.0, dp.CaloriesConsumed)
		require.NoError(t, mock.ExpectationsWereMet())

		require.Len(t, notifier.userIDs, 1)
		assert.Equal(t, uint(3), notifier.userIDs[0])
		payload := notifier.payloads[0].(map[string]any)
		assert.Equal(t, "progress.updated", payload["kind"])
		assert.Equal(t, "2026-03-02", payload["date"])
		assert.Equal(t, 1750.0, payload["balance"].(utils.EnergyBalance).DeltaKcal)
	})

	t.Run("database error does not notify", func(t *testing.T) {
		db, mock := newMockDB(t)
		notifier := &recordingNotifier{}
		svc := NewDashboardService(db, notifier, zap.NewNop())

		mock.ExpectQuery(progressUpsert).WillReturnError(errors.New("connection reset"))

		_, err := svc.UpsertProgress(context.Background(), 3, day(2), utils.EnergyInput{CaloriesConsumed: "1900", CaloriesBurnt: "0"})
		require.Error(t, err)
		assert.Empty(t, notifier.userIDs)
	})

	t.Run("validation error", func(t *testing.T) {
		db, _ := newMockDB(t)
		svc := NewDashboardService(db, nil, zap.NewNop())

		_, err := svc.UpsertProgress(context.Background(), 3, day(2), utils.EnergyInput{CaloriesConsumed: "x", CaloriesBurnt: "9000"})
		ve, ok := utils.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Fields, 2)
	})
}

func TestDashboardService_History(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDashboardService(db, nil, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_goals"`)).
		WillReturnRows(sqlmock.NewRows(goalColumns).AddRow(1, now, now, nil, 3, 2000.0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "daily_progresses"`)).
		WillReturnRows(sqlmock.NewRows(progressColumns).
			AddRow(1, now, now, nil, 3, day(2), 2500.0, 500.0).
			AddRow(2, now, now, nil, 3, day(3), 1500.0, 2000.0))

	h, err := svc.History(context.Background(), 3, day(1), day(7))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 2000.0, h.GoalCalories)
	require.Len(t, h.Days, 2)
	assert.Equal(t, "2026-03-02", h.Days[0].Date)
	assert.Equal(t, 2000.0, h.Days[0].Balance.DeltaKcal)
	assert.Equal(t, 125.0, h.Days[0].PercentOfGoal)
	assert.False(t, h.Days[0].WithinGoal)
	assert.Equal(t, -500.0, h.Days[1].Balance.DeltaKcal)
	assert.True(t, h.Days[1].WithinGoal)
}
