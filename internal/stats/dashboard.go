// Package stats computes the dashboard aggregate from interview records.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/clearhire/talentview/internal/models"
)

const (
	upcomingLimit = 3
	recentLimit   = 5
)

// weekWindow returns the inclusive bounds of the calendar week containing
// now: midnight on the preceding (or current) Sunday through seven days
// later.
func weekWindow(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// Build computes the dashboard summary over interviews as of now.
func Build(interviews []models.Interview, now time.Time) models.DashboardSummary {
	weekStart, weekEnd := weekWindow(now)

	var thisWeek, pending, completed int
	var scoreSum, scoreCount int
	positionCounts := make(map[string]int)

	for _, iv := range interviews {
		if !iv.Date.Before(weekStart) && !iv.Date.After(weekEnd) {
			thisWeek++
		}
		switch iv.Status {
		case models.StatusPending, models.StatusAwaitingResponse:
			pending++
		case models.StatusCompleted:
			completed++
			if iv.Score != nil {
				scoreSum += *iv.Score
				scoreCount++
			}
		}
		positionCounts[iv.Position]++
	}

	averageScore := 0
	if scoreCount > 0 {
		averageScore = int(math.Round(float64(scoreSum) / float64(scoreCount)))
	}

	return models.DashboardSummary{
		Metrics: models.DashboardMetrics{
			TotalInterviews:     len(interviews),
			ThisWeekInterviews:  thisWeek,
			PendingCandidates:   pending,
			CompletedInterviews: completed,
			AverageScore:        averageScore,
			MostActivePosition:  mostActivePosition(positionCounts),
		},
		UpcomingInterviews: upcoming(interviews, now),
		RecentInterviews:   recent(interviews),
	}
}

// mostActivePosition picks the position with the highest interview count.
// Ties break to the lexicographically smallest name so the result is
// deterministic.
func mostActivePosition(counts map[string]int) string {
	best := ""
	bestCount := 0
	for position, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || position < best)) {
			best = position
			bestCount = count
		}
	}
	return best
}

// upcoming returns up to three future, non-completed interviews, soonest
// first.
func upcoming(interviews []models.Interview, now time.Time) []models.Interview {
	out := []models.Interview{}
	for _, iv := range interviews {
		if iv.Date.After(now) && iv.Status != models.StatusCompleted {
			out = append(out, iv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// recent returns up to five interviews with the latest dates.
func recent(interviews []models.Interview) []models.Interview {
	out := append([]models.Interview(nil), interviews...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	if out == nil {
		out = []models.Interview{}
	}
	return out
}
