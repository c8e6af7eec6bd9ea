package services

import (
	"testing"
	"time"

	"gateprep/model"
)

func completedOn(day, subject string) model.Task {
	stamp := day + "T10:00:00Z"
	task := model.Task{
		TaskID:      model.NewTaskID(),
		Title:       "x",
		Date:        day,
		Status:      model.StatusDone,
		CompletedAt: &stamp,
	}
	if subject != "" {
		task.Subject = &subject
	}
	return task
}

func pendingOn(day, subject string) model.Task {
	task := model.Task{
		TaskID: model.NewTaskID(),
		Title:  "x",
		Date:   day,
		Status: model.StatusPending,
	}
	if subject != "" {
		task.Subject = &subject
	}
	return task
}

func TestStreak_BreaksAtFirstGap(t *testing.T) {
	// Three completions on the 10th, none on the 11th, one on the 12th.
	tasks := []model.Task{
		completedOn("2024-01-10", ""),
		completedOn("2024-01-10", ""),
		completedOn("2024-01-10", ""),
		completedOn("2024-01-12", ""),
	}
	now := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)

	if got := Streak(tasks, now); got != 1 {
		t.Fatalf("expected streak 1 (gap on the 11th), got %d", got)
	}
}

func TestStreak_EmptyTodayIsZero(t *testing.T) {
	tasks := []model.Task{
		completedOn("2024-01-10", ""),
		completedOn("2024-01-11", ""),
	}
	now := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)

	if got := Streak(tasks, now); got != 0 {
		t.Fatalf("streak must break immediately when today is empty, got %d", got)
	}
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	tasks := []model.Task{
		completedOn("2024-01-10", ""),
		completedOn("2024-01-11", ""),
		completedOn("2024-01-12", ""),
	}
	now := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)

	if got := Streak(tasks, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreak_NoTasks(t *testing.T) {
	if got := Streak(nil, time.Now()); got != 0 {
		t.Fatalf("expected streak 0 for no tasks, got %d", got)
	}
}

func TestHeatmapTier_Boundaries(t *testing.T) {
	cases := []struct {
		count int
		tier  int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
		{9, 4},
		{10, 5},
		{25, 5},
	}
	for _, tc := range cases {
		if got := HeatmapTier(tc.count); got != tc.tier {
			t.Errorf("HeatmapTier(%d) = %d, want %d", tc.count, got, tc.tier)
		}
	}
}

func TestHeatmap_CountsAndOrder(t *testing.T) {
	tasks := []model.Task{
		completedOn("2024-01-12", ""),
		completedOn("2024-01-10", ""),
		completedOn("2024-01-10", ""),
		pendingOn("2024-01-10", ""),
	}

	cells := Heatmap(tasks)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Day != "2024-01-10" || cells[0].Count != 2 || cells[0].Tier != 1 {
		t.Fatalf("unexpected first cell: %+v", cells[0])
	}
	if cells[1].Day != "2024-01-12" || cells[1].Count != 1 {
		t.Fatalf("unexpected second cell: %+v", cells[1])
	}
	if cells[0].Color != "#86efac" {
		t.Fatalf("unexpected tier-1 color: %s", cells[0].Color)
	}
}

func TestSubjectStats_GroupingAndSorting(t *testing.T) {
	tasks := []model.Task{
		completedOn("2024-01-10", "Algorithms"),
		pendingOn("2024-01-10", "Algorithms"),
		completedOn("2024-01-10", ""),
	}

	stats := SubjectStats(tasks)
	if len(stats) != 2 {
		t.Fatalf("expected 2 subject groups, got %d", len(stats))
	}
	if stats[0].Name != "Algorithms" || stats[0].Total != 2 || stats[0].Done != 1 || stats[0].Pct != 50 {
		t.Fatalf("unexpected Algorithms stats: %+v", stats[0])
	}
	if stats[1].Name != "General" || stats[1].Total != 1 || stats[1].Done != 1 || stats[1].Pct != 100 {
		t.Fatalf("unexpected General stats: %+v", stats[1])
	}
}

func TestSubjectStats_Empty(t *testing.T) {
	if stats := SubjectStats(nil); len(stats) != 0 {
		t.Fatalf("expected empty stats for empty task list, got %+v", stats)
	}
}

func TestWeeklyTrend_SevenDaysOldestFirst(t *testing.T) {
	tasks := []model.Task{
		completedOn("2024-01-12", ""),
		completedOn("2024-01-06", ""),
		completedOn("2024-01-05", ""), // outside the window
	}
	now := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)

	points := WeeklyTrend(tasks, now)
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].Date != "2024-01-06" || points[0].Done != 1 {
		t.Fatalf("unexpected oldest point: %+v", points[0])
	}
	if points[6].Date != "2024-01-12" || points[6].Done != 1 {
		t.Fatalf("unexpected newest point: %+v", points[6])
	}
	for _, p := range points[1:6] {
		if p.Done != 0 {
			t.Fatalf("expected zero completions on %s, got %d", p.Date, p.Done)
		}
	}
}

func TestPercentages(t *testing.T) {
	if got := OverallPercent(nil); got != 0 {
		t.Fatalf("overall percent of empty list must be 0, got %d", got)
	}

	now := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn("2024-01-12", ""),
		pendingOn("2024-01-12", ""),
		pendingOn("2024-01-12", ""),
		pendingOn("2024-01-11", ""),
	}

	// 1 of 3 tasks scheduled today is done.
	if got := TodayPercent(tasks, now); got != 33 {
		t.Fatalf("expected today percent 33, got %d", got)
	}
	// 1 of 4 tasks overall.
	if got := OverallPercent(tasks); got != 25 {
		t.Fatalf("expected overall percent 25, got %d", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC))
	if summary.Streak != 0 || summary.TodayPct != 0 || summary.OverallPct != 0 {
		t.Fatalf("empty summary must be all zeros: %+v", summary)
	}
	if len(summary.Subjects) != 0 || len(summary.Heatmap) != 0 {
		t.Fatalf("empty summary must carry no groups: %+v", summary)
	}
	if len(summary.WeeklyTrend) != 7 {
		t.Fatalf("weekly trend always spans 7 days, got %d", len(summary.WeeklyTrend))
	}
}
