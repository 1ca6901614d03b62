package dto

// DistributionBucket is one bar of a distribution chart.
type DistributionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AdminOverviewResponse aggregates the admin dashboard figures.
type AdminOverviewResponse struct {
	TotalStudents    int                  `json:"total_students"`
	AverageGPA       float64              `json:"average_gpa"`
	AverageAge       int                  `json:"average_age"`
	GPADistribution  []DistributionBucket `json:"gpa_distribution"`
	AgeDistribution  []DistributionBucket `json:"age_distribution"`
	TotalAssignments int                  `json:"total_assignments"`
	Review           ReviewStatsResponse  `json:"review"`
}

// StudentDashboardResponse is the student's landing page payload.
type StudentDashboardResponse struct {
	Student             StudentResponse             `json:"student"`
	Stats               StudentStatsResponse        `json:"stats"`
	Assignments         []StudentAssignmentResponse `json:"assignments"`
	UnseenNotifications int                         `json:"unseen_notifications"`
}
