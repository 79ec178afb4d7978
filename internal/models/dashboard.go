package models

// DashboardStats is the body of GET /api/dashboard/stats.
type DashboardStats struct {
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	OverdueTasks    int `json:"overdueTasks"`
}

// OnboardingRequest is the body of POST /api/onboarding. Blank names fall back to defaults.
type OnboardingRequest struct {
	ProjectName string `json:"projectName" binding:"max=255"`
	TaskName    string `json:"taskName" binding:"max=255"`
	Skip        bool   `json:"skip"`
}
