package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

func TestDataServiceExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	assignment := f.addAssignment(t, time.Now().Add(time.Hour), student.ID)
	_, err := f.submissionSvc.Submit(ctx, assignment.ID, student.ID, dto.SubmitRequest{})
	require.NoError(t, err)

	svc, err := NewDataService(f.assignments, f.submissions, testLogger())
	require.NoError(t, err)

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Assignments, 1)
	require.Len(t, exported.Submissions, 1)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	assignments, err := f.assignments.List(ctx)
	require.NoError(t, err)
	require.Empty(t, assignments)

	students, err := f.students.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)

	result, err := svc.Import(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, 1, *result.Assignments)
	require.Equal(t, 1, *result.Submissions)

	restored, err := f.submissions.List(ctx, repository.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, restored, 1)
	require.True(t, restored[0].Submitted)
}

func TestDataServiceImportReplacesOnlyPresentCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.addStudent(t, "Ada", "ada@example.com")
	f.addAssignment(t, time.Now().Add(time.Hour), student.ID)

	svc, err := NewDataService(f.assignments, f.submissions, testLogger())
	require.NoError(t, err)

	result, err := svc.Import(ctx, []byte(`{"submissions": []}`))
	require.NoError(t, err)
	require.Nil(t, result.Assignments)
	require.Equal(t, 0, *result.Submissions)

	assignments, err := f.assignments.List(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	submissions, err := f.submissions.List(ctx, repository.SubmissionFilter{})
	require.NoError(t, err)
	require.Empty(t, submissions)
}

func TestDataServiceImportRejectsInvalidDocuments(t *testing.T) {
	f := newFixture(t)
	svc, err := NewDataService(f.assignments, f.submissions, testLogger())
	require.NoError(t, err)

	cases := map[string]string{
		"not json":          `{"assignments": [`,
		"wrong type":        `{"assignments": {}}`,
		"missing fields":    `{"submissions": [{"id": "x"}]}`,
		"bad attachment":    `{"assignments": [{"id": "a", "title": "t", "description": "d", "dueDate": "2026-01-01T00:00:00Z", "assignedTo": [], "attachments": [{"type": "pdf", "value": "x"}]}]}`,
		"submitted is text": `{"submissions": [{"id": "x", "assignmentId": "a", "studentId": "s", "submitted": "yes"}]}`,
		"bad due date":      `{"assignments": [{"id": "a", "title": "t", "description": "d", "dueDate": "next friday", "assignedTo": []}]}`,
		"duplicate submission id": `{"submissions": [
			{"id": "x", "assignmentId": "a", "studentId": "s", "submitted": true},
			{"id": "x", "assignmentId": "b", "studentId": "s", "submitted": false}]}`,
		"duplicate assignment and student": `{"submissions": [
			{"id": "x1", "assignmentId": "a", "studentId": "s", "submitted": true},
			{"id": "x2", "assignmentId": "a", "studentId": "s", "submitted": false}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import(context.Background(), []byte(body))
			require.ErrorIs(t, err, ErrInvalidImport)
		})
	}
}

func TestDataServiceImportAcceptsDateOnlyDueDates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc, err := NewDataService(f.assignments, f.submissions, testLogger())
	require.NoError(t, err)

	body := `{
		"assignments": [
			{"id": "a1", "title": "Essay", "description": "Write", "dueDate": "2024-05-12", "assignedTo": ["s1"], "createdAt": "2024-05-01T08:00:00Z"},
			{"id": "a2", "title": "Lab", "description": "Measure", "dueDate": "2024-05-20T14:30", "assignedTo": []}
		],
		"submissions": [
			{"id": "x1", "assignmentId": "a1", "studentId": "s1", "submitted": false}
		],
		"exportedAt": "2024-05-02T10:00:00Z"
	}`

	result, err := svc.Import(ctx, []byte(body))
	require.NoError(t, err)
	require.Equal(t, 2, *result.Assignments)
	require.Equal(t, 1, *result.Submissions)

	essay, err := f.assignments.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.True(t, essay.DueDate.Equal(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)))

	lab, err := f.assignments.GetByID(ctx, "a2")
	require.NoError(t, err)
	require.True(t, lab.DueDate.Equal(time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)))

	assignments, err := f.assignments.List(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
}
