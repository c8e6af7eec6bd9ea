package services

import (
	"math"
	"sort"
	"time"

	"gateprep/model"
)

// DefaultSubject is the group tasks without a subject fall into.
const DefaultSubject = "General"

type SubjectStat struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Done  int    `json:"done"`
	Pct   int    `json:"pct"`
}

type TrendPoint struct {
	Day  string `json:"day"`  // short weekday label
	Date string `json:"date"` // YYYY-MM-DD
	Done int    `json:"done"`
}

type HeatmapCell struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
	Tier  int    `json:"tier"`
	Color string `json:"color"`
}

type DashboardSummary struct {
	Streak      int           `json:"streak"`
	TodayPct    int           `json:"todayPct"`
	OverallPct  int           `json:"overallPct"`
	Subjects    []SubjectStat `json:"subjects"`
	WeeklyTrend []TrendPoint  `json:"weeklyTrend"`
	Heatmap     []HeatmapCell `json:"heatmap"`
}

// heatmapColors follows the web client's green-to-red scale, one entry per
// tier. Tier 0 is the empty cell.
var heatmapColors = [6]string{
	"var(--empty-cell-color)",
	"#86efac", // 1-2
	"#22c55e", // 3-4
	"#f59e0b", // 5-6
	"#ef4444", // 7-9
	"#b91c1c", // 10+
}

// HeatmapTier buckets a per-day completion count. Upper bounds are
// inclusive: a day with exactly 2 completions is still tier 1.
func HeatmapTier(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 6:
		return 3
	case count <= 9:
		return 4
	default:
		return 5
	}
}

func completionsByDay(tasks []model.Task) map[string]int {
	counts := map[string]int{}
	for i := range tasks {
		t := &tasks[i]
		if !t.IsDone() {
			continue
		}
		if day := t.CompletedDay(); day != "" {
			counts[day]++
		}
	}
	return counts
}

// Streak counts consecutive calendar days with at least one completion,
// walking strictly backward from today. A day with zero completions ends the
// walk immediately, so an empty today always yields 0.
func Streak(tasks []model.Task, now time.Time) int {
	days := completionsByDay(tasks)
	streak := 0
	for d := now; days[d.Format(model.DateLayout)] > 0; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// Heatmap returns one cell per day that has at least one completion, oldest
// first.
func Heatmap(tasks []model.Task) []HeatmapCell {
	counts := completionsByDay(tasks)
	cells := make([]HeatmapCell, 0, len(counts))
	for day, count := range counts {
		tier := HeatmapTier(count)
		cells = append(cells, HeatmapCell{
			Day:   day,
			Count: count,
			Tier:  tier,
			Color: heatmapColors[tier],
		})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Day < cells[j].Day })
	return cells
}

// SubjectStats groups tasks by subject (missing subjects fall under
// DefaultSubject) and reports completion per group, sorted by name.
func SubjectStats(tasks []model.Task) []SubjectStat {
	type bucket struct{ total, done int }
	groups := map[string]*bucket{}
	for i := range tasks {
		t := &tasks[i]
		name := DefaultSubject
		if t.Subject != nil && *t.Subject != "" {
			name = *t.Subject
		}
		b := groups[name]
		if b == nil {
			b = &bucket{}
			groups[name] = b
		}
		b.total++
		if t.IsDone() {
			b.done++
		}
	}

	stats := make([]SubjectStat, 0, len(groups))
	for name, b := range groups {
		stats = append(stats, SubjectStat{
			Name:  name,
			Total: b.total,
			Done:  b.done,
			Pct:   percent(b.done, b.total),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// WeeklyTrend reports completions for each of the last 7 calendar days,
// oldest to newest, today included.
func WeeklyTrend(tasks []model.Task, now time.Time) []TrendPoint {
	counts := completionsByDay(tasks)
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		ymd := d.Format(model.DateLayout)
		points = append(points, TrendPoint{
			Day:  d.Format("Mon"),
			Date: ymd,
			Done: counts[ymd],
		})
	}
	return points
}

// TodayPercent is the completion ratio of tasks scheduled for today.
func TodayPercent(tasks []model.Task, now time.Time) int {
	today := now.Format(model.DateLayout)
	total, done := 0, 0
	for i := range tasks {
		if tasks[i].Date != today {
			continue
		}
		total++
		if tasks[i].IsDone() {
			done++
		}
	}
	return percent(done, total)
}

// OverallPercent is the completion ratio across every task.
func OverallPercent(tasks []model.Task) int {
	done := 0
	for i := range tasks {
		if tasks[i].IsDone() {
			done++
		}
	}
	return percent(done, len(tasks))
}

// Summarize recomputes every derived figure from the full task list. All of
// it is O(n) over a small collection, so nothing is cached between requests.
func Summarize(tasks []model.Task, now time.Time) DashboardSummary {
	return DashboardSummary{
		Streak:      Streak(tasks, now),
		TodayPct:    TodayPercent(tasks, now),
		OverallPct:  OverallPercent(tasks),
		Subjects:    SubjectStats(tasks),
		WeeklyTrend: WeeklyTrend(tasks, now),
		Heatmap:     Heatmap(tasks),
	}
}

// percent rounds to the nearest integer and never divides by zero.
func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
