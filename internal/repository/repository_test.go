package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

func TestCollectionDegradesCorruptSnapshotToEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyStudents, []byte("{not json")))

	repo := NewStudentRepository(store, zerolog.Nop())
	students, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, students)

	require.NoError(t, store.Set(ctx, KeyStudents, []byte("null")))
	students, err = repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, students)
	require.Empty(t, students)
}

func TestAssignmentRepositoryLoadsDateOnlyDueDates(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	snapshot := `[{"id":"a1","title":"Essay","description":"Write","dueDate":"2024-05-12","assignedTo":["s1"]}]`
	require.NoError(t, store.Set(ctx, KeyAssignments, []byte(snapshot)))

	repo := NewAssignmentRepository(store, zerolog.Nop())
	assignments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.True(t, assignments[0].DueDate.Equal(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)))
}

func TestStudentRepositoryLifecycle(t *testing.T) {
	repo := NewStudentRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Student{ID: "s1", Name: "Ada", Email: "Ada@Example.com"}))
	require.NoError(t, repo.Create(ctx, models.Student{ID: "s2", Name: "Grace", Email: "grace@example.com"}))

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "s1", byEmail.ID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.GetByID(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "s1"), ErrNotFound)

	students, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
}

func TestAssignmentRepositoryListByStudentAndUpdate(t *testing.T) {
	repo := NewAssignmentRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Assignment{ID: "a1", Title: "Essay", AssignedTo: []string{"s1", "s2"}}))
	require.NoError(t, repo.Create(ctx, models.Assignment{ID: "a2", Title: "Lab", AssignedTo: []string{"s2"}}))

	forS1, err := repo.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, forS1, 1)
	require.Equal(t, "a1", forS1[0].ID)

	updated := forS1[0]
	updated.Title = "Long essay"
	require.NoError(t, repo.Update(ctx, updated))

	fetched, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "Long essay", fetched.Title)

	require.ErrorIs(t, repo.Update(ctx, models.Assignment{ID: "missing"}), ErrNotFound)
}

func TestSubmissionRepositoryKeepsOnePerPair(t *testing.T) {
	repo := NewSubmissionRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	created, err := repo.CreateMany(ctx, []models.Submission{
		models.NewPlaceholderSubmission("a1", "s1"),
		models.NewPlaceholderSubmission("a1", "s2"),
		models.NewPlaceholderSubmission("a1", "s1"),
	})
	require.NoError(t, err)
	require.Equal(t, 2, created)

	created, err = repo.CreateMany(ctx, []models.Submission{models.NewPlaceholderSubmission("a1", "s2")})
	require.NoError(t, err)
	require.Zero(t, created)

	assignmentID := "a1"
	all, err := repo.List(ctx, SubmissionFilter{AssignmentID: &assignmentID})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSubmissionRepositoryDeleteByAssignment(t *testing.T) {
	repo := NewSubmissionRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	_, err := repo.CreateMany(ctx, []models.Submission{
		models.NewPlaceholderSubmission("a1", "s1"),
		models.NewPlaceholderSubmission("a2", "s1"),
	})
	require.NoError(t, err)

	removed, err := repo.DeleteByAssignment(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	studentID := "s1"
	remaining, err := repo.List(ctx, SubmissionFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "a2", remaining[0].AssignmentID)

	submission, err := repo.GetByAssignmentAndStudent(ctx, "a2", "s1")
	require.NoError(t, err)
	submission.Submitted = true
	require.NoError(t, repo.Update(ctx, submission))

	fetched, err := repo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.True(t, fetched.Submitted)
}

func TestNotificationRepositoryOwnership(t *testing.T) {
	repo := NewNotificationRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, models.Notification{ID: "n1", StudentID: "s1", CreatedAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, models.Notification{ID: "n2", StudentID: "s1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, models.Notification{ID: "n3", StudentID: "s2", CreatedAt: now}))

	list, err := repo.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "n2", list[0].ID)

	_, err = repo.MarkSeen(ctx, "n3", "s1")
	require.ErrorIs(t, err, ErrNotFound)

	seen, err := repo.MarkSeen(ctx, "n1", "s1")
	require.NoError(t, err)
	require.True(t, seen.Seen)

	require.ErrorIs(t, repo.Delete(ctx, "n3", "s1"), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "n1", "s1"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(storage.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, models.SessionUser{ID: "u1", Email: "a@b.co", Role: models.RoleAdmin}))
	user, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}
