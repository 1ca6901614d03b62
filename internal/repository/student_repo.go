package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (models.Student, error)
	GetByEmail(ctx context.Context, email string) (models.Student, error)
	Create(ctx context.Context, student models.Student) error
	Delete(ctx context.Context, id string) error
}

type studentRepository struct {
	students collection[models.Student]
}

// NewStudentRepository constructs a student repository over the store.
func NewStudentRepository(store storage.Store, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		students: newCollection[models.Student](store, KeyStudents, logger.With().Str("component", "student_repository").Logger()),
	}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	return r.students.load(ctx)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	students, err := r.students.load(ctx)
	if err != nil {
		return models.Student{}, err
	}

	for _, student := range students {
		if student.ID == id {
			return student, nil
		}
	}

	return models.Student{}, ErrNotFound
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	students, err := r.students.load(ctx)
	if err != nil {
		return models.Student{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(email))
	for _, student := range students {
		if strings.ToLower(student.Email) == needle {
			return student, nil
		}
	}

	return models.Student{}, ErrNotFound
}

func (r *studentRepository) Create(ctx context.Context, student models.Student) error {
	students, err := r.students.load(ctx)
	if err != nil {
		return err
	}

	return r.students.save(ctx, append(students, student))
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	students, err := r.students.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Student, 0, len(students))
	for _, student := range students {
		if student.ID != id {
			remaining = append(remaining, student)
		}
	}

	if len(remaining) == len(students) {
		return ErrNotFound
	}

	return r.students.save(ctx, remaining)
}
