package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// DashboardService aggregates the admin and student landing pages.
type DashboardService interface {
	AdminOverview(ctx context.Context) (dto.AdminOverviewResponse, error)
	StudentDashboard(ctx context.Context, studentID string) (dto.StudentDashboardResponse, error)
}

type dashboardService struct {
	students       repository.StudentRepository
	assignmentRepo repository.AssignmentRepository
	assignments    AssignmentService
	submissions    SubmissionService
	studentStats   StudentService
	notifications  NotificationService
	logger         zerolog.Logger
}

// NewDashboardService wires the dashboard on top of the other services.
func NewDashboardService(
	students repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	studentService StudentService,
	assignmentService AssignmentService,
	submissionService SubmissionService,
	notificationService NotificationService,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		students:       students,
		assignmentRepo: assignmentRepo,
		assignments:    assignmentService,
		submissions:    submissionService,
		studentStats:   studentService,
		notifications:  notificationService,
		logger:         logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) AdminOverview(ctx context.Context) (dto.AdminOverviewResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	review, err := s.submissions.ReviewStats(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	overview := ComputeRosterOverview(students)
	overview.TotalAssignments = len(assignments)
	overview.Review = review
	return overview, nil
}

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID string) (dto.StudentDashboardResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentDashboardResponse{}, ErrStudentNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	stats, err := s.studentStats.Stats(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	assignments, err := s.assignments.ListForStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	unseen, err := s.notifications.UnseenCount(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	return dto.StudentDashboardResponse{
		Student:             dto.NewStudentResponse(student),
		Stats:               stats,
		Assignments:         assignments,
		UnseenNotifications: unseen,
	}, nil
}

// ComputeRosterOverview derives the roster figures shown on the admin dashboard.
func ComputeRosterOverview(students []models.Student) dto.AdminOverviewResponse {
	gpaBuckets := []dto.DistributionBucket{
		{Label: "3.5-4.0"}, {Label: "3.0-3.5"}, {Label: "2.5-3.0"}, {Label: "Below 2.5"},
	}
	ageBuckets := []dto.DistributionBucket{
		{Label: "18-20"}, {Label: "21-23"}, {Label: "24-26"}, {Label: "27+"},
	}

	overview := dto.AdminOverviewResponse{
		TotalStudents:   len(students),
		GPADistribution: gpaBuckets,
		AgeDistribution: ageBuckets,
	}
	if len(students) == 0 {
		return overview
	}

	var gpaSum float64
	var ageSum int
	for _, student := range students {
		gpaSum += student.GPA
		ageSum += student.Age

		switch {
		case student.GPA >= 3.5:
			gpaBuckets[0].Count++
		case student.GPA >= 3.0:
			gpaBuckets[1].Count++
		case student.GPA >= 2.5:
			gpaBuckets[2].Count++
		default:
			gpaBuckets[3].Count++
		}

		switch {
		case student.Age >= 27:
			ageBuckets[3].Count++
		case student.Age >= 24:
			ageBuckets[2].Count++
		case student.Age >= 21:
			ageBuckets[1].Count++
		case student.Age >= 18:
			ageBuckets[0].Count++
		}
	}

	count := float64(len(students))
	overview.AverageGPA = math.Round(gpaSum/count*100) / 100
	overview.AverageAge = int(math.Round(float64(ageSum) / count))
	return overview
}
