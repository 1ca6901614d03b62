package models

import "time"

// NotificationType mirrors the verdict that produced the notification.
type NotificationType string

const (
	NotificationTypeApproved NotificationType = "approved"
	NotificationTypeRejected NotificationType = "rejected"
)

// Notification informs a student about feedback on one of their submissions.
type Notification struct {
	ID           string           `json:"id"`
	StudentID    string           `json:"studentId"`
	SubmissionID string           `json:"submissionId"`
	AssignmentID string           `json:"assignmentId"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	CreatedAt    time.Time        `json:"createdAt"`
	Seen         bool             `json:"seen"`
}
