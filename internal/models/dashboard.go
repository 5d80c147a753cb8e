package models

// DashboardMetrics are the aggregate counters shown on the dashboard.
type DashboardMetrics struct {
	TotalInterviews     int    `json:"totalInterviews"`
	ThisWeekInterviews  int    `json:"thisWeekInterviews"`
	PendingCandidates   int    `json:"pendingCandidates"`
	CompletedInterviews int    `json:"completedInterviews"`
	AverageScore        int    `json:"averageScore"`
	MostActivePosition  string `json:"mostActivePosition"`
}

// DashboardSummary is the /api/dashboard response body.
type DashboardSummary struct {
	Metrics            DashboardMetrics `json:"metrics"`
	UpcomingInterviews []Interview      `json:"upcomingInterviews"`
	RecentInterviews   []Interview      `json:"recentInterviews"`
}
