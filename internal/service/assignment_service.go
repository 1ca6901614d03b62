package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// AssignmentService exposes assignment management and the queries built on it.
type AssignmentService interface {
	List(ctx context.Context, query dto.AssignmentListQuery) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (dto.AssignmentStatsResponse, error)
	Submissions(ctx context.Context, id string) ([]dto.SubmissionResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.StudentAssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	students    repository.StudentRepository
	attachments *AttachmentProcessor
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	students repository.StudentRepository,
	attachments *AttachmentProcessor,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		students:    students,
		attachments: attachments,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context, query dto.AssignmentListQuery) ([]dto.AssignmentResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response := dto.NewAssignmentResponse(assignment, now)
		stats := ComputeAssignmentStats(assignment, submissions)
		response.Stats = &stats
		responses = append(responses, response)
	}

	SortAssignments(responses, query.Sort)
	return responses, nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (dto.AssignmentResponse, error) {
	assignment, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &id})
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	response := dto.NewAssignmentResponse(assignment, s.now())
	stats := ComputeAssignmentStats(assignment, submissions)
	response.Stats = &stats
	return response, nil
}

// Create stores the assignment and one placeholder submission per assigned student.
func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignedTo := uniqueIDs(payload.AssignedTo)
	if err := s.ensureStudentsExist(ctx, assignedTo); err != nil {
		return dto.AssignmentResponse{}, err
	}

	attachments, err := s.attachments.Process(ctx, payload.Attachments)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		DueDate:     dueDate,
		AssignedTo:  assignedTo,
		CreatedAt:   s.now().UTC(),
		Attachments: attachments,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	created, err := s.createPlaceholders(ctx, assignment.ID, assignedTo)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Int("placeholders", created).
		Msg("assignment created")

	return s.Get(ctx, assignment.ID)
}

// Update applies the provided fields. Newly assigned students get placeholders while the
// submissions of students dropped from the audience are kept.
func (s *assignmentService) Update(ctx context.Context, id string, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		assignment.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.DueDate != nil {
		dueDate, err := parseDueDate(*payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.DueDate = dueDate
	}

	var added []string
	if payload.AssignedTo != nil {
		assignedTo := uniqueIDs(*payload.AssignedTo)
		for _, studentID := range assignedTo {
			if !assignment.IsAssignedTo(studentID) {
				added = append(added, studentID)
			}
		}
		if err := s.ensureStudentsExist(ctx, added); err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.AssignedTo = assignedTo
	}

	if payload.Attachments != nil {
		attachments, err := s.attachments.Process(ctx, *payload.Attachments)
		if err != nil {
			return dto.AssignmentResponse{}, err
		}
		assignment.Attachments = attachments
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if len(added) > 0 {
		if _, err := s.createPlaceholders(ctx, assignment.ID, added); err != nil {
			return dto.AssignmentResponse{}, err
		}
	}

	s.logger.Info().Str("assignment_id", id).Int("newly_assigned", len(added)).Msg("assignment updated")

	return s.Get(ctx, id)
}

// Delete removes the assignment and its submissions. Notifications about it are kept.
func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	removed, err := s.submissions.DeleteByAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete submissions of assignment %s: %w", id, err)
	}

	s.logger.Info().Str("assignment_id", id).Int("submissions_removed", removed).Msg("assignment deleted")
	return nil
}

func (s *assignmentService) Stats(ctx context.Context, id string) (dto.AssignmentStatsResponse, error) {
	assignment, err := s.load(ctx, id)
	if err != nil {
		return dto.AssignmentStatsResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &id})
	if err != nil {
		return dto.AssignmentStatsResponse{}, err
	}

	return ComputeAssignmentStats(assignment, submissions), nil
}

func (s *assignmentService) Submissions(ctx context.Context, id string) ([]dto.SubmissionResponse, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &id})
	if err != nil {
		return nil, err
	}

	students, err := s.studentIndex(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		response := dto.NewSubmissionResponse(submission)
		if student, ok := students[submission.StudentID]; ok {
			response = response.WithStudent(student)
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// ListForStudent returns the student's assignments with their own submission attached,
// ordered by due date.
func (s *assignmentService) ListForStudent(ctx context.Context, studentID string) ([]dto.StudentAssignmentResponse, error) {
	assignments, err := s.assignments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}

	byAssignment := make(map[string]models.Submission, len(submissions))
	for _, submission := range submissions {
		byAssignment[submission.AssignmentID] = submission
	}

	now := s.now()
	slices.SortStableFunc(assignments, func(a, b models.Assignment) int {
		return a.DueDate.Compare(b.DueDate)
	})

	responses := make([]dto.StudentAssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		item := dto.StudentAssignmentResponse{
			AssignmentResponse: dto.NewAssignmentResponse(assignment, now),
			State:              string(models.SubmissionStateNotSubmitted),
		}

		if submission, ok := byAssignment[assignment.ID]; ok {
			response := dto.NewSubmissionResponse(submission)
			item.Submission = &response
			item.State = response.State
			item.Overdue = IsOverdue(assignment, &submission, now)
		} else {
			item.Overdue = IsOverdue(assignment, nil, now)
		}

		responses = append(responses, item)
	}

	return responses, nil
}

func (s *assignmentService) load(ctx context.Context, id string) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (s *assignmentService) createPlaceholders(ctx context.Context, assignmentID string, studentIDs []string) (int, error) {
	placeholders := make([]models.Submission, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		placeholders = append(placeholders, models.NewPlaceholderSubmission(assignmentID, studentID))
	}

	created, err := s.submissions.CreateMany(ctx, placeholders)
	if err != nil {
		return 0, fmt.Errorf("create placeholder submissions: %w", err)
	}
	return created, nil
}

func (s *assignmentService) ensureStudentsExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	students, err := s.studentIndex(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, ok := students[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownStudent, id)
		}
	}
	return nil
}

func (s *assignmentService) studentIndex(ctx context.Context) (map[string]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.Student, len(students))
	for _, student := range students {
		index[student.ID] = student
	}
	return index, nil
}

func parseDueDate(raw string) (time.Time, error) {
	parsed, err := models.ParseDueDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
	}
	return parsed, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
