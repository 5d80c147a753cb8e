package stats

import (
	"testing"
	"time"

	"github.com/clearhire/talentview/internal/models"
)

func intPtr(v int) *int { return &v }

// Wednesday 2026-08-26 12:00 UTC; the containing week runs from Sunday
// 2026-08-23 00:00 through 2026-08-30 00:00.
var now = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func interview(id, position string, date time.Time, status models.InterviewStatus, score *int) models.Interview {
	return models.Interview{
		ID:            id,
		CandidateName: "Candidate " + id,
		Position:      position,
		Date:          date,
		Status:        status,
		Score:         score,
	}
}

func TestBuildMetrics(t *testing.T) {
	interviews := []models.Interview{
		interview("a", "Backend Engineer", now.Add(24*time.Hour), models.StatusPending, nil),
		interview("b", "Backend Engineer", now.Add(-24*time.Hour), models.StatusCompleted, intPtr(80)),
		interview("c", "Frontend Engineer", now.Add(-48*time.Hour), models.StatusCompleted, intPtr(90)),
		interview("d", "Backend Engineer", now.Add(-240*time.Hour), models.StatusCompleted, intPtr(100)),
		interview("e", "Frontend Engineer", now.Add(48*time.Hour), models.StatusAwaitingResponse, nil),
	}

	got := Build(interviews, now).Metrics

	if got.TotalInterviews != 5 {
		t.Errorf("total = %d, want 5", got.TotalInterviews)
	}
	// a, b, c, e fall in the current week; d is ten days old.
	if got.ThisWeekInterviews != 4 {
		t.Errorf("thisWeek = %d, want 4", got.ThisWeekInterviews)
	}
	if got.PendingCandidates != 2 {
		t.Errorf("pending = %d, want 2", got.PendingCandidates)
	}
	if got.CompletedInterviews != 3 {
		t.Errorf("completed = %d, want 3", got.CompletedInterviews)
	}
	if got.AverageScore != 90 {
		t.Errorf("averageScore = %d, want 90", got.AverageScore)
	}
	if got.MostActivePosition != "Backend Engineer" {
		t.Errorf("mostActivePosition = %q", got.MostActivePosition)
	}
}

func TestBuildAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []*int
		want   int
	}{
		{"empty", nil, 0},
		{"single", []*int{intPtr(75)}, 75},
		{"rounds half up", []*int{intPtr(80), intPtr(85)}, 83},
		{"unscored completed excluded", []*int{intPtr(80), nil, intPtr(90)}, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var interviews []models.Interview
			for i, score := range tt.scores {
				interviews = append(interviews,
					interview(string(rune('a'+i)), "Backend Engineer", now.Add(-24*time.Hour),
						models.StatusCompleted, score))
			}
			got := Build(interviews, now).Metrics.AverageScore
			if got != tt.want {
				t.Errorf("averageScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildPendingExcludesScoredStatuses(t *testing.T) {
	interviews := []models.Interview{
		interview("a", "Backend Engineer", now, models.StatusPending, nil),
		interview("b", "Backend Engineer", now, models.StatusAwaitingResponse, nil),
		interview("c", "Backend Engineer", now, models.StatusCompleted, intPtr(70)),
	}
	got := Build(interviews, now).Metrics
	if got.PendingCandidates != 2 {
		t.Errorf("pending = %d, want 2 (pending + awaitingResponse)", got.PendingCandidates)
	}
}

func TestMostActivePositionTieBreaksLexicographically(t *testing.T) {
	interviews := []models.Interview{
		interview("a", "Frontend Engineer", now, models.StatusPending, nil),
		interview("b", "Backend Engineer", now, models.StatusPending, nil),
	}
	got := Build(interviews, now).Metrics.MostActivePosition
	if got != "Backend Engineer" {
		t.Errorf("mostActivePosition = %q, want Backend Engineer", got)
	}
}

func TestMostActivePositionEmpty(t *testing.T) {
	got := Build(nil, now).Metrics.MostActivePosition
	if got != "" {
		t.Errorf("mostActivePosition = %q, want empty", got)
	}
}

func TestWeekWindowBounds(t *testing.T) {
	weekStart := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		date     time.Time
		inWindow bool
	}{
		{"sunday midnight start is inclusive", weekStart, true},
		{"just before the week", weekStart.Add(-time.Second), false},
		{"mid week", now, true},
		{"next sunday midnight is inclusive", weekStart.AddDate(0, 0, 7), true},
		{"past the window", weekStart.AddDate(0, 0, 7).Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interviews := []models.Interview{
				interview("a", "Backend Engineer", tt.date, models.StatusPending, nil),
			}
			got := Build(interviews, now).Metrics.ThisWeekInterviews
			want := 0
			if tt.inWindow {
				want = 1
			}
			if got != want {
				t.Errorf("thisWeek = %d, want %d for %v", got, want, tt.date)
			}
		})
	}
}

func TestUpcomingInterviews(t *testing.T) {
	interviews := []models.Interview{
		interview("past", "Backend Engineer", now.Add(-time.Hour), models.StatusPending, nil),
		interview("soon", "Backend Engineer", now.Add(time.Hour), models.StatusPending, nil),
		interview("later", "Backend Engineer", now.Add(3*time.Hour), models.StatusAwaitingResponse, nil),
		interview("done", "Backend Engineer", now.Add(2*time.Hour), models.StatusCompleted, intPtr(50)),
		interview("far1", "Backend Engineer", now.Add(10*time.Hour), models.StatusPending, nil),
		interview("far2", "Backend Engineer", now.Add(20*time.Hour), models.StatusPending, nil),
	}

	got := Build(interviews, now).UpcomingInterviews
	if len(got) != 3 {
		t.Fatalf("upcoming = %d entries, want 3", len(got))
	}
	want := []string{"soon", "later", "far1"}
	for i, iv := range got {
		if iv.ID != want[i] {
			t.Errorf("upcoming[%d] = %s, want %s", i, iv.ID, want[i])
		}
	}
}

func TestRecentInterviews(t *testing.T) {
	var interviews []models.Interview
	for i := 0; i < 7; i++ {
		interviews = append(interviews,
			interview(string(rune('a'+i)), "Backend Engineer",
				now.Add(time.Duration(-i)*time.Hour), models.StatusPending, nil))
	}

	got := Build(interviews, now).RecentInterviews
	if len(got) != 5 {
		t.Fatalf("recent = %d entries, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("recent not sorted latest first at %d", i)
		}
	}
	if got[0].ID != "a" {
		t.Errorf("recent[0] = %s, want a", got[0].ID)
	}
}
