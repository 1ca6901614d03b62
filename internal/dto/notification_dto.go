package dto

import (
	"time"

	"github.com/noah-isme/assignment-tracker/internal/models"
)

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	SubmissionID string    `json:"submission_id"`
	AssignmentID string    `json:"assignment_id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	Seen         bool      `json:"seen"`
}

// NotificationFeed is the snapshot pushed to streaming clients.
type NotificationFeed struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnseenCount   int                    `json:"unseen_count"`
}

// NewNotificationResponse converts a model into its DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           model.ID,
		StudentID:    model.StudentID,
		SubmissionID: model.SubmissionID,
		AssignmentID: model.AssignmentID,
		Title:        model.Title,
		Message:      model.Message,
		Type:         string(model.Type),
		CreatedAt:    model.CreatedAt,
		Seen:         model.Seen,
	}
}

// NewNotificationResponseSlice converts a slice of models.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewNotificationResponse(item))
	}
	return responses
}

// NewNotificationFeed builds a feed and counts unseen entries.
func NewNotificationFeed(items []models.Notification) NotificationFeed {
	feed := NotificationFeed{Notifications: NewNotificationResponseSlice(items)}
	for _, item := range items {
		if !item.Seen {
			feed.UnseenCount++
		}
	}
	return feed
}
