package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmissionState(t *testing.T) {
	reviewed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	before := reviewed.Add(-time.Hour)
	after := reviewed.Add(time.Hour)

	cases := []struct {
		name       string
		submission Submission
		want       SubmissionState
	}{
		{"placeholder", Submission{}, SubmissionStateNotSubmitted},
		{"awaiting review", Submission{Submitted: true}, SubmissionStatePendingReview},
		{"approved", Submission{Submitted: true, Feedback: &Feedback{Approved: true, FeedbackDate: reviewed}}, SubmissionStateApproved},
		{"rejected", Submission{Submitted: true, Feedback: &Feedback{FeedbackDate: reviewed}}, SubmissionStateRejected},
		{"resubmitted after rejection", Submission{Submitted: true, Resubmitted: true, ResubmittedAt: &after, Feedback: &Feedback{FeedbackDate: reviewed}}, SubmissionStatePendingReview},
		{"stale resubmission flag", Submission{Submitted: true, Resubmitted: true, ResubmittedAt: &before, Feedback: &Feedback{FeedbackDate: reviewed}}, SubmissionStateRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.submission.State())
		})
	}
}

func TestSubmissionIsOverdue(t *testing.T) {
	now := time.Now()
	assignment := Assignment{DueDate: now.Add(-24 * time.Hour)}

	require.True(t, Submission{}.IsOverdue(assignment, now))
	require.False(t, Submission{Submitted: true}.IsOverdue(assignment, now))

	assignment.DueDate = now.Add(time.Hour)
	require.False(t, Submission{}.IsOverdue(assignment, now))
}

func TestPlaceholderSubmission(t *testing.T) {
	placeholder := NewPlaceholderSubmission("a1", "s1")
	require.Equal(t, "a1-s1", placeholder.ID)
	require.False(t, placeholder.Submitted)
	require.Nil(t, placeholder.Feedback)
}

func TestStudentPercentageGrade(t *testing.T) {
	require.Equal(t, 88, Student{GPA: 3.5}.PercentageGrade())
	require.Equal(t, 100, Student{GPA: 4}.PercentageGrade())
	require.Equal(t, 0, Student{}.PercentageGrade())
	require.Equal(t, 75, Student{GPA: 3.0}.PercentageGrade())
}

func TestAssignmentIsAssignedTo(t *testing.T) {
	assignment := Assignment{AssignedTo: []string{"s1", "s2"}}
	require.True(t, assignment.IsAssignedTo("s2"))
	require.False(t, assignment.IsAssignedTo("s3"))
}
