package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/observability"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// Notification titles and message prefixes shown to students.
const (
	approvedTitle   = "Assignment Approved"
	rejectedTitle   = "Assignment Needs Revision"
	approvedMessage = "Your assignment has been approved with the following feedback: "
	rejectedMessage = "Your assignment has been returned for revision. Feedback: "
)

// EventPublisher forwards notification events to a broker. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// NotificationService creates notifications and serves them to students.
type NotificationService interface {
	Emit(ctx context.Context, submission models.Submission, approved bool, message string) (dto.NotificationResponse, error)
	List(ctx context.Context, studentID string) ([]dto.NotificationResponse, error)
	UnseenCount(ctx context.Context, studentID string) (int, error)
	Feed(ctx context.Context, studentID string) (dto.NotificationFeed, error)
	MarkSeen(ctx context.Context, id, studentID string) (dto.NotificationResponse, error)
	Dismiss(ctx context.Context, id, studentID string) error
	Subscribe(ctx context.Context, studentID, transport string) <-chan dto.NotificationFeed
}

type notificationService struct {
	repo         repository.NotificationRepository
	publisher    EventPublisher
	subject      string
	pollInterval time.Duration
	logger       zerolog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

type notificationEvent struct {
	Notification dto.NotificationResponse `json:"notification"`
	SentAt       time.Time                `json:"sent_at"`
}

// NewNotificationService constructs a notification service. The publisher may be nil.
func NewNotificationService(repo repository.NotificationRepository, publisher EventPublisher, subject string, pollInterval time.Duration, logger zerolog.Logger) NotificationService {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return &notificationService{
		repo:         repo,
		publisher:    publisher,
		subject:      subject,
		pollInterval: pollInterval,
		logger:       logger.With().Str("component", "notification_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/assignment-tracker/internal/service/notification"),
		now:          time.Now,
	}
}

// Emit records one notification for the submission's owner. Every call creates a new one.
// The message is stored as given; GiveFeedback sanitises it before calling.
func (s *notificationService) Emit(ctx context.Context, submission models.Submission, approved bool, message string) (dto.NotificationResponse, error) {
	notificationType := models.NotificationTypeRejected
	title, prefix := rejectedTitle, rejectedMessage
	if approved {
		notificationType = models.NotificationTypeApproved
		title, prefix = approvedTitle, approvedMessage
	}

	spanCtx, span := s.tracer.Start(ctx, "notifications.emit", trace.WithAttributes(
		attribute.String("notification.student_id", submission.StudentID),
		attribute.String("notification.type", string(notificationType)),
	))
	defer span.End()

	notification := models.Notification{
		ID:           "notif-" + uuid.NewString(),
		StudentID:    submission.StudentID,
		SubmissionID: submission.ID,
		AssignmentID: submission.AssignmentID,
		Title:        title,
		Message:      prefix + message,
		Type:         notificationType,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(spanCtx, notification); err != nil {
		span.RecordError(err)
		return dto.NotificationResponse{}, err
	}

	response := dto.NewNotificationResponse(notification)
	observability.NotificationsEmitted().WithLabelValues(response.Type).Inc()

	if err := s.publish(response); err != nil {
		s.logger.Warn().Err(err).Str("notification_id", response.ID).Msg("failed to publish notification event")
	}

	return response, nil
}

func (s *notificationService) List(ctx context.Context, studentID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) UnseenCount(ctx context.Context, studentID string) (int, error) {
	feed, err := s.Feed(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return feed.UnseenCount, nil
}

func (s *notificationService) Feed(ctx context.Context, studentID string) (dto.NotificationFeed, error) {
	notifications, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.NotificationFeed{}, err
	}
	return dto.NewNotificationFeed(notifications), nil
}

func (s *notificationService) MarkSeen(ctx context.Context, id, studentID string) (dto.NotificationResponse, error) {
	notification, err := s.repo.MarkSeen(ctx, id, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) Dismiss(ctx context.Context, id, studentID string) error {
	if err := s.repo.Delete(ctx, id, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// Subscribe polls the student's notifications until ctx is done. The first snapshot is sent
// right away and later ones only when something changed. The channel closes on exit.
func (s *notificationService) Subscribe(ctx context.Context, studentID, transport string) <-chan dto.NotificationFeed {
	updates := make(chan dto.NotificationFeed, 1)
	gauge := observability.NotificationStreams().WithLabelValues(transport)
	gauge.Inc()

	go func() {
		defer close(updates)
		defer gauge.Dec()

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		var last *dto.NotificationFeed
		for {
			feed, err := s.Feed(ctx, studentID)
			switch {
			case err != nil:
				if ctx.Err() == nil {
					s.logger.Warn().Err(err).Str("student_id", studentID).Msg("notification poll failed")
				}
			case last == nil || !sameFeed(*last, feed):
				select {
				case updates <- feed:
					last = &feed
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return updates
}

func (s *notificationService) publish(notification dto.NotificationResponse) error {
	if s.publisher == nil || s.subject == "" {
		return nil
	}

	payload, err := json.Marshal(notificationEvent{Notification: notification, SentAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode notification event: %w", err)
	}

	return s.publisher.Publish(s.subject, payload)
}

func sameFeed(a, b dto.NotificationFeed) bool {
	if a.UnseenCount != b.UnseenCount || len(a.Notifications) != len(b.Notifications) {
		return false
	}
	for i := range a.Notifications {
		if a.Notifications[i].ID != b.Notifications[i].ID || a.Notifications[i].Seen != b.Notifications[i].Seen {
			return false
		}
	}
	return true
}
