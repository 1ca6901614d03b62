package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/observability"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// SubmissionService drives the submit and review cycle.
type SubmissionService interface {
	Submit(ctx context.Context, assignmentID, studentID string, payload dto.SubmitRequest) (dto.SubmissionResponse, error)
	GiveFeedback(ctx context.Context, submissionID string, approved bool, message string) (dto.FeedbackResult, error)
	ReviewQueue(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	ReviewStats(ctx context.Context) (dto.ReviewStatsResponse, error)
}

type submissionService struct {
	submissions   repository.SubmissionRepository
	assignments   repository.AssignmentRepository
	students      repository.StudentRepository
	notifications NotificationService
	attachments   *AttachmentProcessor
	validator     *validator.Validate
	logger        zerolog.Logger
	tracer        trace.Tracer
	sanitizer     *bluemonday.Policy
	now           func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	assignments repository.AssignmentRepository,
	students repository.StudentRepository,
	notifications NotificationService,
	attachments *AttachmentProcessor,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions:   submissions,
		assignments:   assignments,
		students:      students,
		notifications: notifications,
		attachments:   attachments,
		validator:     validate,
		logger:        logger.With().Str("component", "submission_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/assignment-tracker/internal/service/submission"),
		sanitizer:     bluemonday.StrictPolicy(),
		now:           time.Now,
	}
}

// Submit hands in the student's work. Submitting again after a rejection marks the record as
// a resubmission while the earlier feedback stays visible until the next verdict.
func (s *submissionService) Submit(ctx context.Context, assignmentID, studentID string, payload dto.SubmitRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "submissions.submit", trace.WithAttributes(
		attribute.String("submission.assignment_id", assignmentID),
		attribute.String("submission.student_id", studentID),
	))
	defer span.End()

	assignment, err := s.assignments.GetByID(spanCtx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByAssignmentAndStudent(spanCtx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	attachments, err := s.attachments.Process(spanCtx, payload.Attachments)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	now := s.now().UTC()
	submission.Submitted = true
	submission.SubmittedAt = &now
	submission.Attachments = attachments
	submission.Resubmitted = submission.IsRejected()
	submission.ResubmittedAt = nil
	if submission.Resubmitted {
		submission.ResubmittedAt = &now
	}

	if err := s.submissions.Update(spanCtx, submission); err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	kind := "first"
	if submission.Resubmitted {
		kind = "resubmission"
	}
	observability.Submissions().WithLabelValues(kind).Inc()

	s.logger.Info().
		Str("submission_id", submission.ID).
		Bool("resubmitted", submission.Resubmitted).
		Msg("submission received")

	return dto.NewSubmissionResponse(submission).WithAssignment(assignment), nil
}

// GiveFeedback records the verdict and emits exactly one notification to the student. The
// message is stripped of markup once and the same text goes to the submission and the notification.
func (s *submissionService) GiveFeedback(ctx context.Context, submissionID string, approved bool, message string) (dto.FeedbackResult, error) {
	spanCtx, span := s.tracer.Start(ctx, "submissions.feedback", trace.WithAttributes(
		attribute.String("submission.id", submissionID),
		attribute.Bool("feedback.approved", approved),
	))
	defer span.End()

	submission, err := s.submissions.GetByID(spanCtx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.FeedbackResult{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.FeedbackResult{}, err
	}

	if !submission.Submitted {
		return dto.FeedbackResult{}, ErrSubmissionNotSubmitted
	}

	message = strings.TrimSpace(s.sanitizer.Sanitize(message))
	submission.Feedback = &models.Feedback{
		Approved:     approved,
		Message:      message,
		FeedbackDate: s.now().UTC(),
	}

	if err := s.submissions.Update(spanCtx, submission); err != nil {
		span.RecordError(err)
		return dto.FeedbackResult{}, err
	}

	notification, err := s.notifications.Emit(spanCtx, submission, approved, message)
	if err != nil {
		span.RecordError(err)
		return dto.FeedbackResult{}, fmt.Errorf("emit feedback notification: %w", err)
	}

	verdict := string(models.SubmissionStateRejected)
	if approved {
		verdict = string(models.SubmissionStateApproved)
	}
	observability.Feedback().WithLabelValues(verdict).Inc()

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("verdict", verdict).
		Str("notification_id", notification.ID).
		Msg("feedback recorded")

	return dto.FeedbackResult{
		Submission:   dto.NewSubmissionResponse(submission),
		Notification: notification,
	}, nil
}

// ReviewQueue lists handed-in work, most recent first.
func (s *submissionService) ReviewQueue(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.SubmissionFilter{}
	if filter.AssignmentID != "" {
		repoFilter.AssignmentID = &filter.AssignmentID
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	assignmentIndex := make(map[string]models.Assignment, len(assignments))
	for _, assignment := range assignments {
		assignmentIndex[assignment.ID] = assignment
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	studentIndex := make(map[string]models.Student, len(students))
	for _, student := range students {
		studentIndex[student.ID] = student
	}

	queue := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if submission.Submitted && matchesReviewFilter(submission, filter.Status) {
			queue = append(queue, submission)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return latestActivity(queue[i]).After(latestActivity(queue[j]))
	})

	responses := make([]dto.SubmissionResponse, 0, len(queue))
	for _, submission := range queue {
		response := dto.NewSubmissionResponse(submission)
		if assignment, ok := assignmentIndex[submission.AssignmentID]; ok {
			response = response.WithAssignment(assignment)
		}
		if student, ok := studentIndex[submission.StudentID]; ok {
			response = response.WithStudent(student)
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *submissionService) ReviewStats(ctx context.Context) (dto.ReviewStatsResponse, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return dto.ReviewStatsResponse{}, err
	}
	return ComputeReviewStats(submissions), nil
}

func matchesReviewFilter(submission models.Submission, status string) bool {
	switch status {
	case dto.ReviewFilterPending:
		return submission.State() == models.SubmissionStatePendingReview
	case dto.ReviewFilterApproved:
		return submission.State() == models.SubmissionStateApproved
	case dto.ReviewFilterRejected:
		return submission.State() == models.SubmissionStateRejected
	default:
		return true
	}
}

func latestActivity(submission models.Submission) time.Time {
	if submission.SubmittedAt == nil {
		return time.Time{}
	}
	return *submission.SubmittedAt
}
