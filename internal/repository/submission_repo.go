package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// SubmissionFilter allows narrowing submission queries.
type SubmissionFilter struct {
	AssignmentID *string
	StudentID    *string
}

func (f SubmissionFilter) matches(submission models.Submission) bool {
	if f.AssignmentID != nil && submission.AssignmentID != *f.AssignmentID {
		return false
	}
	if f.StudentID != nil && submission.StudentID != *f.StudentID {
		return false
	}
	return true
}

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (models.Submission, error)
	CreateMany(ctx context.Context, submissions []models.Submission) (int, error)
	Update(ctx context.Context, submission models.Submission) error
	DeleteByAssignment(ctx context.Context, assignmentID string) (int, error)
	ReplaceAll(ctx context.Context, submissions []models.Submission) error
	Clear(ctx context.Context) error
}

type submissionRepository struct {
	submissions collection[models.Submission]
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(store storage.Store, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		submissions: newCollection[models.Submission](store, KeySubmissions, logger.With().Str("component", "submission_repository").Logger()),
	}
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if filter.matches(submission) {
			filtered = append(filtered, submission)
		}
	}

	return filtered, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (models.Submission, error) {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return models.Submission{}, err
	}

	for _, submission := range submissions {
		if submission.ID == id {
			return submission, nil
		}
	}

	return models.Submission{}, ErrNotFound
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (models.Submission, error) {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return models.Submission{}, err
	}

	for _, submission := range submissions {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return submission, nil
		}
	}

	return models.Submission{}, ErrNotFound
}

// CreateMany appends the records, skipping any (assignment, student) pair that already
// has a submission. It returns the number of records written.
func (r *submissionRepository) CreateMany(ctx context.Context, incoming []models.Submission) (int, error) {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return 0, err
	}

	type pair struct{ assignmentID, studentID string }
	existing := make(map[pair]struct{}, len(submissions))
	for _, submission := range submissions {
		existing[pair{submission.AssignmentID, submission.StudentID}] = struct{}{}
	}

	created := 0
	for _, submission := range incoming {
		key := pair{submission.AssignmentID, submission.StudentID}
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = struct{}{}
		submissions = append(submissions, submission)
		created++
	}

	if created == 0 {
		return 0, nil
	}

	if err := r.submissions.save(ctx, submissions); err != nil {
		return 0, err
	}

	return created, nil
}

func (r *submissionRepository) Update(ctx context.Context, submission models.Submission) error {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range submissions {
		if submissions[i].ID == submission.ID {
			submissions[i] = submission
			found = true
		}
	}

	if !found {
		return ErrNotFound
	}

	return r.submissions.save(ctx, submissions)
}

func (r *submissionRepository) DeleteByAssignment(ctx context.Context, assignmentID string) (int, error) {
	submissions, err := r.submissions.load(ctx)
	if err != nil {
		return 0, err
	}

	remaining := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if submission.AssignmentID != assignmentID {
			remaining = append(remaining, submission)
		}
	}

	removed := len(submissions) - len(remaining)
	if removed == 0 {
		return 0, nil
	}

	if err := r.submissions.save(ctx, remaining); err != nil {
		return 0, err
	}

	return removed, nil
}

func (r *submissionRepository) ReplaceAll(ctx context.Context, submissions []models.Submission) error {
	return r.submissions.save(ctx, submissions)
}

func (r *submissionRepository) Clear(ctx context.Context) error {
	return r.submissions.clear(ctx)
}
