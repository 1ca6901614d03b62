package service

import (
	"sort"
	"time"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
)

// Assignment list orderings.
const (
	SortByDueDate     = "due_date"
	SortBySubmissions = "submissions"
)

// ComputeAssignmentStats counts how many assigned students handed the assignment in and how
// their work was reviewed. Submissions are kept when a student leaves the audience, so the
// percentage can exceed 100.
func ComputeAssignmentStats(assignment models.Assignment, submissions []models.Submission) dto.AssignmentStatsResponse {
	stats := dto.AssignmentStatsResponse{
		AssignmentID: assignment.ID,
		Total:        len(assignment.AssignedTo),
	}

	for _, submission := range submissions {
		if submission.AssignmentID != assignment.ID || !submission.Submitted {
			continue
		}
		stats.Submitted++
		switch {
		case submission.IsApproved():
			stats.Approved++
		case submission.IsRejected():
			stats.Rejected++
		}
	}

	stats.Pending = stats.Submitted - stats.Approved - stats.Rejected
	stats.Percentage = percentage(stats.Submitted, stats.Total)
	return stats
}

// ComputeStudentStats summarises a student's progress over the assignments given to them.
// An assignment without a submission record counts as not submitted.
func ComputeStudentStats(student models.Student, assignments []models.Assignment, submissions []models.Submission, now time.Time) dto.StudentStatsResponse {
	stats := dto.StudentStatsResponse{
		StudentID:       student.ID,
		PercentageGrade: student.PercentageGrade(),
	}

	byAssignment := make(map[string]models.Submission)
	for _, submission := range submissions {
		if submission.StudentID == student.ID {
			byAssignment[submission.AssignmentID] = submission
		}
	}

	for _, assignment := range assignments {
		if !assignment.IsAssignedTo(student.ID) {
			continue
		}
		stats.Total++

		submission := byAssignment[assignment.ID]
		if !submission.Submitted {
			stats.InProgress++
			if assignment.IsPastDue(now) {
				stats.Overdue++
			}
			continue
		}

		stats.Submitted++
		switch {
		case submission.IsApproved():
			stats.Approved++
		case submission.IsRejected():
			stats.Rejected++
		}
	}

	stats.Pending = stats.Submitted - stats.Approved - stats.Rejected
	stats.Percentage = percentage(stats.Submitted, stats.Total)
	return stats
}

// ComputeReviewStats counts all handed-in work by derived review state. A resubmission made
// after the last verdict counts as pending.
func ComputeReviewStats(submissions []models.Submission) dto.ReviewStatsResponse {
	var stats dto.ReviewStatsResponse
	for _, submission := range submissions {
		switch submission.State() {
		case models.SubmissionStatePendingReview:
			stats.Pending++
		case models.SubmissionStateApproved:
			stats.Approved++
		case models.SubmissionStateRejected:
			stats.Rejected++
		default:
			continue
		}
		stats.Submitted++
	}
	return stats
}

// IsOverdue reports whether the student still owes work that is past its due date.
func IsOverdue(assignment models.Assignment, submission *models.Submission, now time.Time) bool {
	if submission == nil {
		return assignment.IsPastDue(now)
	}
	return submission.IsOverdue(assignment, now)
}

// SortAssignments orders responses in place. Unknown orderings fall back to the due date.
func SortAssignments(items []dto.AssignmentResponse, order string) {
	byDueDate := func(i, j int) bool {
		return items[i].DueDate.Before(items[j].DueDate)
	}

	if order != SortBySubmissions {
		sort.SliceStable(items, byDueDate)
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		left, right := 0.0, 0.0
		if items[i].Stats != nil {
			left = items[i].Stats.Percentage
		}
		if items[j].Stats != nil {
			right = items[j].Stats.Percentage
		}
		if left != right {
			return left > right
		}
		return byDueDate(i, j)
	})
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
