package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
)

func TestStudentServiceCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	age, gpa := 20, 3.0
	badAge, badGPA := 14, 4.5

	cases := map[string]dto.StudentCreateRequest{
		"missing name":   {Email: "a@b.co", Age: &age, GPA: &gpa},
		"bad email":      {Name: "A", Email: "a@b", Age: &age, GPA: &gpa},
		"too young":      {Name: "A", Email: "a@b.co", Age: &badAge, GPA: &gpa},
		"gpa over scale": {Name: "A", Email: "a@b.co", Age: &age, GPA: &badGPA},
		"missing age":    {Name: "A", Email: "a@b.co", GPA: &gpa},
		"malformed date": {Name: "A", Email: "a@b.co", Age: &age, GPA: &gpa, EnrollmentDate: "01/02/2026"},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.studentSvc.Create(ctx, payload)
			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
		})
	}

	zero := 0.0
	created, err := f.studentSvc.Create(ctx, dto.StudentCreateRequest{Name: " Ada ", Email: "ada@example.com", Age: &age, GPA: &zero})
	require.NoError(t, err)
	require.Equal(t, "Ada", created.Name)
	require.Equal(t, time.Now().Format(time.DateOnly), created.EnrollmentDate)
	require.Zero(t, created.PercentageGrade)
}

func TestStudentServiceDeleteLeavesSubmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(-time.Hour), student.ID)

	stats, err := f.studentSvc.Stats(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Overdue)

	require.NoError(t, f.studentSvc.Delete(ctx, student.ID))
	require.ErrorIs(t, f.studentSvc.Delete(ctx, student.ID), ErrStudentNotFound)

	_, err = f.studentSvc.Get(ctx, student.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)

	orphan := f.submission(t, assignment.ID, student.ID)
	require.False(t, orphan.Submitted)

	dashboard, err := f.dashboardSvc.StudentDashboard(ctx, student.ID)
	require.ErrorIs(t, err, ErrStudentNotFound)
	require.Empty(t, dashboard.Assignments)
}
