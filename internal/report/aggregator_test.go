package report

import (
	"context"
	"testing"
	"time"

	"santiye-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(tasks *fakeTaskSource, teams *fakeTeamSource, users *fakeUserSource) *Aggregator {
	if tasks == nil {
		tasks = &fakeTaskSource{}
	}
	if teams == nil {
		teams = &fakeTeamSource{}
	}
	if users == nil {
		users = &fakeUserSource{}
	}
	return NewAggregator(tasks, teams, users)
}

func TestCollectValidatesDateRange(t *testing.T) {
	agg := newTestAggregator(nil, nil, nil)
	ctx := context.Background()

	t.Run("zero dates", func(t *testing.T) {
		_, err := agg.Collect(ctx, KindEfficiency, nil, time.Time{}, date(2026, 8, 31))
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := agg.Collect(ctx, KindEfficiency, nil, date(2026, 8, 31), date(2026, 8, 1))
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := agg.Collect(ctx, ReportKind("bilinmeyen"), nil, date(2026, 8, 1), date(2026, 8, 31))
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestCollectProgress(t *testing.T) {
	ctx := context.Background()
	status := models.TaskStatus{ID: 1, Name: "Devam Ediyor"}
	teams := &fakeTeamSource{teams: []models.Team{{ID: 1, Name: "Kaba İnşaat"}}}

	t.Run("scenario: 4 tasks, 2 completed, 1 late", func(t *testing.T) {
		tasks := &fakeTaskSource{started: map[uint][]models.Task{
			1: {
				// zamanında tamamlanan
				{Title: "Temel kazısı", Status: status, StartDate: datePtr(2026, 8, 3), Deadline: datePtr(2026, 8, 10), CompletedDate: datePtr(2026, 8, 9)},
				// terminden sonra tamamlanan
				{Title: "Kalıp işleri", Status: status, StartDate: datePtr(2026, 8, 5), Deadline: datePtr(2026, 8, 12), CompletedDate: datePtr(2026, 8, 15)},
				// açık görevler
				{Title: "Demir bağlama", Status: status, StartDate: datePtr(2026, 8, 7), Deadline: datePtr(2026, 8, 20)},
				{Title: "Beton dökümü", Status: status, StartDate: datePtr(2026, 8, 10)},
			},
		}}
		agg := newTestAggregator(tasks, teams, nil)

		m, err := agg.Collect(ctx, KindProgress, uintPtr(1), date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		require.Equal(t, KindProgress, m.Kind)
		require.NotNil(t, m.Progress)

		assert.Len(t, m.Progress.Rows, 4)
		assert.Equal(t, 50, m.Progress.CompletedPercentage)
		assert.Equal(t, 1, m.Progress.DelayedCount)
		assert.Equal(t, "Kaba İnşaat", m.Progress.TeamName)
		assert.Equal(t, "Temel kazısı", m.Progress.Rows[0].TaskTitle)
		assert.Equal(t, "Devam Ediyor", m.Progress.Rows[0].StatusName)
	})

	t.Run("zero tasks means zero percentage", func(t *testing.T) {
		agg := newTestAggregator(&fakeTaskSource{}, teams, nil)

		m, err := agg.Collect(ctx, KindProgress, uintPtr(1), date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Progress.CompletedPercentage)
		assert.Equal(t, 0, m.Progress.DelayedCount)
		assert.Empty(t, m.Progress.Rows)
	})

	t.Run("delayed requires both deadline and completed date", func(t *testing.T) {
		tasks := &fakeTaskSource{started: map[uint][]models.Task{
			1: {
				// bitiş var, termin yok
				{Title: "Sıva", Status: status, CompletedDate: datePtr(2026, 8, 20)},
				// termin var, bitiş yok
				{Title: "Boya", Status: status, Deadline: datePtr(2026, 8, 5)},
			},
		}}
		agg := newTestAggregator(tasks, teams, nil)

		m, err := agg.Collect(ctx, KindProgress, uintPtr(1), date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Progress.DelayedCount)
		assert.Equal(t, 50, m.Progress.CompletedPercentage)
	})

	t.Run("percentage rounding", func(t *testing.T) {
		tasks := &fakeTaskSource{started: map[uint][]models.Task{
			1: {
				{Title: "A", Status: status, CompletedDate: datePtr(2026, 8, 2)},
				{Title: "B", Status: status},
				{Title: "C", Status: status},
			},
		}}
		agg := newTestAggregator(tasks, teams, nil)

		m, err := agg.Collect(ctx, KindProgress, uintPtr(1), date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		// round(1/3*100) = 33
		assert.Equal(t, 33, m.Progress.CompletedPercentage)
	})

	t.Run("missing scope id", func(t *testing.T) {
		agg := newTestAggregator(nil, teams, nil)
		_, err := agg.Collect(ctx, KindProgress, nil, date(2026, 8, 1), date(2026, 8, 31))
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown team", func(t *testing.T) {
		agg := newTestAggregator(nil, teams, nil)
		_, err := agg.Collect(ctx, KindProgress, uintPtr(99), date(2026, 8, 1), date(2026, 8, 31))
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestCollectLoad(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserSource{users: []models.User{
		{ID: 1, Name: "Ayşe Yılmaz"},
		{ID: 2, Name: "Mehmet Demir"},
	}}

	makeTasks := func(n int) []models.Task {
		tasks := make([]models.Task, n)
		for i := range tasks {
			tasks[i] = models.Task{Title: "Görev"}
		}
		return tasks
	}

	t.Run("scenario: all users, 3 and 5 tasks", func(t *testing.T) {
		tasks := &fakeTaskSource{createdBy: map[uint][]models.Task{
			1: makeTasks(3),
			2: makeTasks(5),
		}}
		agg := newTestAggregator(tasks, nil, users)

		m, err := agg.Collect(ctx, KindLoad, nil, date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		require.Equal(t, KindLoad, m.Kind)
		require.Len(t, m.Load.Rows, 2)

		assert.Equal(t, 3, m.Load.Rows[0].TaskCount)
		assert.Equal(t, 24.0, m.Load.Rows[0].TotalHours)
		assert.Equal(t, 5, m.Load.Rows[1].TaskCount)
		assert.Equal(t, 40.0, m.Load.Rows[1].TotalHours)
	})

	t.Run("scoped to one user", func(t *testing.T) {
		tasks := &fakeTaskSource{createdBy: map[uint][]models.Task{2: makeTasks(2)}}
		agg := newTestAggregator(tasks, nil, users)

		m, err := agg.Collect(ctx, KindLoad, uintPtr(2), date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		require.Len(t, m.Load.Rows, 1)
		assert.Equal(t, "Mehmet Demir", m.Load.Rows[0].EmployeeName)
		assert.Equal(t, 16.0, m.Load.Rows[0].TotalHours)
	})

	t.Run("user with no tasks still gets a row", func(t *testing.T) {
		agg := newTestAggregator(&fakeTaskSource{}, nil, users)

		m, err := agg.Collect(ctx, KindLoad, nil, date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		require.Len(t, m.Load.Rows, 2)
		assert.Equal(t, 0, m.Load.Rows[0].TaskCount)
		assert.Equal(t, 0.0, m.Load.Rows[0].TotalHours)
	})

	t.Run("unknown user scope", func(t *testing.T) {
		agg := newTestAggregator(nil, nil, users)
		_, err := agg.Collect(ctx, KindLoad, uintPtr(99), date(2026, 8, 1), date(2026, 8, 31))
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestCollectEfficiency(t *testing.T) {
	ctx := context.Background()
	teams := &fakeTeamSource{teams: []models.Team{
		{ID: 1, Name: "Elektrik"},
		{ID: 2, Name: "Mekanik"},
	}}

	t.Run("open and closed counts with average", func(t *testing.T) {
		tasks := &fakeTaskSource{createdByTeam: map[uint][]models.Task{
			1: {
				// 2 gün * 8 = 16 saat
				{Title: "Pano montajı", StartDate: datePtr(2026, 8, 1), CompletedDate: datePtr(2026, 8, 3)},
				// 4 gün * 8 = 32 saat
				{Title: "Kablo çekimi", StartDate: datePtr(2026, 8, 1), CompletedDate: datePtr(2026, 8, 5)},
				// açık, ortalamaya girmez
				{Title: "Aydınlatma", StartDate: datePtr(2026, 8, 10)},
				// bitmiş ama başlangıcı yok, sayıma girer ortalamaya girmez
				{Title: "Topraklama", CompletedDate: datePtr(2026, 8, 20)},
			},
		}}
		agg := newTestAggregator(tasks, teams, nil)

		m, err := agg.Collect(ctx, KindEfficiency, nil, date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		require.Equal(t, KindEfficiency, m.Kind)
		require.Len(t, m.Efficiency.Rows, 2)

		row := m.Efficiency.Rows[0]
		assert.Equal(t, "Elektrik", row.TeamName)
		assert.Equal(t, 1, row.OpenIssues)
		assert.Equal(t, 3, row.ClosedIssues)
		assert.Equal(t, 24.0, row.AvgCompletionHours)
	})

	t.Run("scenario: team with zero in-range tasks", func(t *testing.T) {
		agg := newTestAggregator(&fakeTaskSource{}, teams, nil)

		m, err := agg.Collect(ctx, KindEfficiency, nil, date(2026, 8, 1), date(2026, 8, 31))
		require.NoError(t, err)
		for _, row := range m.Efficiency.Rows {
			assert.Equal(t, 0.0, row.AvgCompletionHours)
			assert.Equal(t, 0, row.OpenIssues)
			assert.Equal(t, 0, row.ClosedIssues)
		}
	})
}

func TestDaysBetweenIgnoresClock(t *testing.T) {
	a := time.Date(2026, 8, 1, 23, 30, 0, 0, time.UTC)
	b := time.Date(2026, 8, 3, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, daysBetween(a, b))
}
