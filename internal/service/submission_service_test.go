package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
)

func TestSubmissionServiceFeedbackEmitsNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(time.Hour), student.ID)

	submitted, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{
		Attachments: []dto.AttachmentPayload{{Type: "link", Value: "https://example.com/essay.pdf"}},
	})
	require.NoError(t, err)
	require.True(t, submitted.Submitted)
	require.NotNil(t, submitted.SubmittedAt)
	require.False(t, submitted.Resubmitted)
	require.Equal(t, string(models.SubmissionStatePendingReview), submitted.State)
	require.NotNil(t, submitted.Assignment)

	result, err := f.submissionSvc.GiveFeedback(ctx, submitted.ID, true, "Great <b>work</b>")
	require.NoError(t, err)
	require.NotNil(t, result.Submission.Feedback)
	require.True(t, result.Submission.Feedback.Approved)
	require.Equal(t, "Great work", result.Submission.Feedback.Message)
	require.Equal(t, string(models.SubmissionStateApproved), result.Submission.State)

	require.Equal(t, "Assignment Approved", result.Notification.Title)
	require.Equal(t, "Your assignment has been approved with the following feedback: Great work", result.Notification.Message)
	require.Equal(t, string(models.NotificationTypeApproved), result.Notification.Type)
	require.Equal(t, student.ID, result.Notification.StudentID)
	require.False(t, result.Notification.Seen)

	notifications, err := f.notifications.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	require.Len(t, f.publisher.payloads, 1)
	require.Equal(t, "tracker.notifications", f.publisher.subjects[0])
	var event struct {
		Notification dto.NotificationResponse `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &event))
	require.Equal(t, result.Notification.ID, event.Notification.ID)
}

func TestSubmissionServiceResubmissionAfterRejection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(time.Hour), student.ID)
	submissionID := models.PlaceholderSubmissionID(assignment.ID, student.ID)

	_, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{})
	require.NoError(t, err)

	rejected, err := f.submissionSvc.GiveFeedback(ctx, submissionID, false, "Needs sources")
	require.NoError(t, err)
	require.Equal(t, "Assignment Needs Revision", rejected.Notification.Title)
	require.Equal(t, "Your assignment has been returned for revision. Feedback: Needs sources", rejected.Notification.Message)
	require.Equal(t, string(models.SubmissionStateRejected), rejected.Submission.State)

	resubmitted, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{})
	require.NoError(t, err)
	require.True(t, resubmitted.Resubmitted)
	require.NotNil(t, resubmitted.ResubmittedAt)
	require.NotNil(t, resubmitted.Feedback)
	require.Equal(t, "Needs sources", resubmitted.Feedback.Message)
	require.Equal(t, string(models.SubmissionStatePendingReview), resubmitted.State)

	approved, err := f.submissionSvc.GiveFeedback(ctx, submissionID, true, "Fixed")
	require.NoError(t, err)
	require.Equal(t, string(models.SubmissionStateApproved), approved.Submission.State)

	again, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{})
	require.NoError(t, err)
	require.False(t, again.Resubmitted)
	require.Nil(t, again.ResubmittedAt)

	notifications, err := f.notificationSvc.List(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
}

func TestSubmissionServiceErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(time.Hour), student.ID)

	_, err := f.submissionSvc.GiveFeedback(ctx, models.PlaceholderSubmissionID(assignment.ID, student.ID), true, "too early")
	require.ErrorIs(t, err, ErrSubmissionNotSubmitted)

	_, err = f.submissionSvc.GiveFeedback(ctx, "missing", true, "x")
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	_, err = f.submissionSvc.Submit(ctx, "missing", student.ID, dto.SubmitRequest{})
	require.ErrorIs(t, err, ErrAssignmentNotFound)

	_, err = f.submissionSvc.Submit(ctx, assignment.ID, "stranger", dto.SubmitRequest{})
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	_, err = f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{
		Attachments: []dto.AttachmentPayload{{Type: "image", Value: "aGVsbG8gd29ybGQ="}},
	})
	require.ErrorIs(t, err, ErrInvalidAttachment)

	notifications, err := f.notificationSvc.List(ctx, student.ID)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestSubmissionServiceReviewQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s1 := f.addStudent(t, "Ada", "ada@example.com")
	s2 := f.addStudent(t, "Grace", "grace@example.com")
	s3 := f.addStudent(t, "Linus", "linus@example.com")
	first := f.addAssignment(t, time.Now().Add(time.Hour), s1.ID, s2.ID, s3.ID)
	second := f.addAssignment(t, time.Now().Add(time.Hour), s1.ID)

	for _, studentID := range []string{s1.ID, s2.ID} {
		_, err := f.submissionSvc.Submit(ctx, first.ID, studentID, dto.SubmitRequest{})
		require.NoError(t, err)
	}
	_, err := f.submissionSvc.Submit(ctx, second.ID, s1.ID, dto.SubmitRequest{})
	require.NoError(t, err)

	_, err = f.submissionSvc.GiveFeedback(ctx, models.PlaceholderSubmissionID(first.ID, s1.ID), true, "ok")
	require.NoError(t, err)
	_, err = f.submissionSvc.GiveFeedback(ctx, models.PlaceholderSubmissionID(first.ID, s2.ID), false, "redo")
	require.NoError(t, err)

	all, err := f.submissionSvc.ReviewQueue(ctx, dto.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, item := range all {
		require.NotNil(t, item.Student)
		require.NotNil(t, item.Assignment)
	}

	pending, err := f.submissionSvc.ReviewQueue(ctx, dto.SubmissionFilter{Status: dto.ReviewFilterPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].AssignmentID)

	rejected, err := f.submissionSvc.ReviewQueue(ctx, dto.SubmissionFilter{Status: dto.ReviewFilterRejected, AssignmentID: first.ID})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	require.Equal(t, s2.ID, rejected[0].StudentID)

	_, err = f.submissionSvc.ReviewQueue(ctx, dto.SubmissionFilter{Status: "archived"})
	require.Error(t, err)

	stats, err := f.submissionSvc.ReviewStats(ctx)
	require.NoError(t, err)
	require.Equal(t, dto.ReviewStatsResponse{Submitted: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)

	overview, err := f.dashboardSvc.AdminOverview(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, overview.TotalStudents)
	require.Equal(t, 2, overview.TotalAssignments)
	require.Equal(t, stats, overview.Review)
}

func TestSubmissionServiceFeedbackStoresSanitisedTextOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(time.Hour), student.ID)
	_, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{})
	require.NoError(t, err)

	submissionID := models.PlaceholderSubmissionID(assignment.ID, student.ID)
	result, err := f.submissionSvc.GiveFeedback(ctx, submissionID, false, " <script>alert(1)</script>Try again ")
	require.NoError(t, err)
	require.Equal(t, "Try again", result.Submission.Feedback.Message)
	require.Equal(t, "Your assignment has been returned for revision. Feedback: Try again", result.Notification.Message)

	stored := f.submission(t, assignment.ID, student.ID)
	require.Equal(t, "Try again", stored.Feedback.Message)
}
