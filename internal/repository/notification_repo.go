package repository

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/storage"
)

// NotificationRepository handles persistence for notification entities.
type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) error
	List(ctx context.Context) ([]models.Notification, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Notification, error)
	MarkSeen(ctx context.Context, id, studentID string) (models.Notification, error)
	Delete(ctx context.Context, id, studentID string) error
}

type notificationRepository struct {
	notifications collection[models.Notification]
}

// NewNotificationRepository constructs a store-backed repository.
func NewNotificationRepository(store storage.Store, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		notifications: newCollection[models.Notification](store, KeyNotifications, logger.With().Str("component", "notification_repository").Logger()),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification models.Notification) error {
	notifications, err := r.notifications.load(ctx)
	if err != nil {
		return err
	}

	return r.notifications.save(ctx, append(notifications, notification))
}

func (r *notificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	return r.notifications.load(ctx)
}

// ListByStudent returns the student's notifications, newest first.
func (r *notificationRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Notification, error) {
	notifications, err := r.notifications.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Notification, 0)
	for _, notification := range notifications {
		if notification.StudentID == studentID {
			filtered = append(filtered, notification)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return filtered, nil
}

func (r *notificationRepository) MarkSeen(ctx context.Context, id, studentID string) (models.Notification, error) {
	notifications, err := r.notifications.load(ctx)
	if err != nil {
		return models.Notification{}, err
	}

	for i := range notifications {
		if notifications[i].ID != id || notifications[i].StudentID != studentID {
			continue
		}

		if notifications[i].Seen {
			return notifications[i], nil
		}

		notifications[i].Seen = true
		if err := r.notifications.save(ctx, notifications); err != nil {
			return models.Notification{}, err
		}
		return notifications[i], nil
	}

	return models.Notification{}, ErrNotFound
}

func (r *notificationRepository) Delete(ctx context.Context, id, studentID string) error {
	notifications, err := r.notifications.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]models.Notification, 0, len(notifications))
	for _, notification := range notifications {
		if notification.ID == id && notification.StudentID == studentID {
			continue
		}
		remaining = append(remaining, notification)
	}

	if len(remaining) == len(notifications) {
		return ErrNotFound
	}

	return r.notifications.save(ctx, remaining)
}
