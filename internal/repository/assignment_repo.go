package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (models.Assignment, error)
	Create(ctx context.Context, assignment models.Assignment) error
	Update(ctx context.Context, assignment models.Assignment) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, assignments []models.Assignment) error
	Clear(ctx context.Context) error
}

type assignmentRepository struct {
	assignments collection[models.Assignment]
}

// NewAssignmentRepository instantiates a store-backed repository.
func NewAssignmentRepository(store storage.Store, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		assignments: newCollection[models.Assignment](store, KeyAssignments, logger.With().Str("component", "assignment_repository").Logger()),
	}
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	return r.assignments.load(ctx)
}

func (r *assignmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Assignment, error) {
	assignments, err := r.assignments.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.IsAssignedTo(studentID) {
			filtered = append(filtered, assignment)
		}
	}

	return filtered, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (models.Assignment, error) {
	assignments, err := r.assignments.load(ctx)
	if err != nil {
		return models.Assignment{}, err
	}

	for _, assignment := range assignments {
		if assignment.ID == id {
			return assignment, nil
		}
	}

	return models.Assignment{}, ErrNotFound
}

func (r *assignmentRepository) Create(ctx context.Context, assignment models.Assignment) error {
	assignments, err := r.assignments.load(ctx)
	if err != nil {
		return err
	}

	return r.assignments.save(ctx, append(assignments, assignment))
}

func (r *assignmentRepository) Update(ctx context.Context, assignment models.Assignment) error {
	assignments, err := r.assignments.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range assignments {
		if assignments[i].ID == assignment.ID {
			assignments[i] = assignment
			found = true
		}
	}

	if !found {
		return ErrNotFound
	}

	return r.assignments.save(ctx, assignments)
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	assignments, err := r.assignments.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.ID != id {
			remaining = append(remaining, assignment)
		}
	}

	if len(remaining) == len(assignments) {
		return ErrNotFound
	}

	return r.assignments.save(ctx, remaining)
}

func (r *assignmentRepository) ReplaceAll(ctx context.Context, assignments []models.Assignment) error {
	return r.assignments.save(ctx, assignments)
}

func (r *assignmentRepository) Clear(ctx context.Context) error {
	return r.assignments.clear(ctx)
}
