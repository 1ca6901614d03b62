package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// StudentService manages the student roster.
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id string) (dto.StudentResponse, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (dto.StudentStatsResponse, error)
}

type studentService struct {
	students    repository.StudentRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentService constructs a StudentService.
func NewStudentService(students repository.StudentRepository, assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students:    students,
		assignments: assignments,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "student_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Get(ctx context.Context, id string) (dto.StudentResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	enrollment := strings.TrimSpace(payload.EnrollmentDate)
	if enrollment == "" {
		enrollment = s.now().Format(time.DateOnly)
	}

	student := models.Student{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(payload.Name),
		Email:          strings.TrimSpace(payload.Email),
		Age:            *payload.Age,
		GPA:            *payload.GPA,
		EnrollmentDate: enrollment,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Str("student_id", student.ID).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

// Delete removes the student only. Their submissions and notifications stay behind.
func (s *studentService) Delete(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Str("student_id", id).Msg("student deleted")
	return nil
}

func (s *studentService) Stats(ctx context.Context, id string) (dto.StudentStatsResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	assignments, err := s.assignments.ListByStudent(ctx, id)
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &id})
	if err != nil {
		return dto.StudentStatsResponse{}, err
	}

	return ComputeStudentStats(student, assignments, submissions, s.now()), nil
}

func (s *studentService) load(ctx context.Context, id string) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}
