package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

type stubUploader struct {
	names []string
	url   string
}

func (u *stubUploader) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	u.names = append(u.names, name)
	return u.url, nil
}

type fixture struct {
	store         *storage.MemoryStore
	students      repository.StudentRepository
	assignments   repository.AssignmentRepository
	submissions   repository.SubmissionRepository
	notifications repository.NotificationRepository
	sessions      repository.SessionRepository

	publisher *recordingPublisher

	studentSvc      StudentService
	assignmentSvc   AssignmentService
	submissionSvc   SubmissionService
	notificationSvc NotificationService
	dashboardSvc    DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := testLogger()
	validate := NewValidator()
	store := storage.NewMemoryStore()

	f := &fixture{
		store:         store,
		students:      repository.NewStudentRepository(store, logger),
		assignments:   repository.NewAssignmentRepository(store, logger),
		submissions:   repository.NewSubmissionRepository(store, logger),
		notifications: repository.NewNotificationRepository(store, logger),
		sessions:      repository.NewSessionRepository(store, logger),
		publisher:     &recordingPublisher{},
	}

	attachments := NewAttachmentProcessor(validate, nil, 1024*1024, logger)
	f.studentSvc = NewStudentService(f.students, f.assignments, f.submissions, validate, logger)
	f.assignmentSvc = NewAssignmentService(f.assignments, f.submissions, f.students, attachments, validate, logger)
	f.notificationSvc = NewNotificationService(f.notifications, f.publisher, "tracker.notifications", 10*time.Millisecond, logger)
	f.submissionSvc = NewSubmissionService(f.submissions, f.assignments, f.students, f.notificationSvc, attachments, validate, logger)
	f.dashboardSvc = NewDashboardService(f.students, f.assignments, f.studentSvc, f.assignmentSvc, f.submissionSvc, f.notificationSvc, logger)

	clock := newSteppingClock(time.Now(), time.Second)
	f.submissionSvc.(*submissionService).now = clock.Now
	f.notificationSvc.(*notificationService).now = clock.Now

	return f
}

// steppingClock moves forward on every reading so consecutive events never share a timestamp.
type steppingClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

func newSteppingClock(start time.Time, step time.Duration) *steppingClock {
	return &steppingClock{current: start, step: step}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(c.step)
	return c.current
}

func (f *fixture) addStudent(t *testing.T, name, email string) dto.StudentResponse {
	t.Helper()
	age := 21
	gpa := 3.2
	student, err := f.studentSvc.Create(context.Background(), dto.StudentCreateRequest{
		Name:  name,
		Email: email,
		Age:   &age,
		GPA:   &gpa,
	})
	require.NoError(t, err)
	return student
}

func (f *fixture) addAssignment(t *testing.T, dueDate time.Time, studentIDs ...string) dto.AssignmentResponse {
	t.Helper()
	assignment, err := f.assignmentSvc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:       "Essay",
		Description: "Write about Go",
		DueDate:     dueDate.UTC().Format(time.RFC3339),
		AssignedTo:  studentIDs,
	})
	require.NoError(t, err)
	return assignment
}

func (f *fixture) submission(t *testing.T, assignmentID, studentID string) models.Submission {
	t.Helper()
	submission, err := f.submissions.GetByAssignmentAndStudent(context.Background(), assignmentID, studentID)
	require.NoError(t, err)
	return submission
}
