package dto

import (
	"time"

	"github.com/noah-isme/assignment-tracker/internal/models"
)

// Review queue filters.
const (
	ReviewFilterAll      = "all"
	ReviewFilterPending  = "pending"
	ReviewFilterApproved = "approved"
	ReviewFilterRejected = "rejected"
)

// SubmitRequest carries the attachments a student hands in.
type SubmitRequest struct {
	Attachments []AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
}

// FeedbackRequest is the reviewer's verdict on a submission.
type FeedbackRequest struct {
	Message  string `json:"message" validate:"required,notblank"`
	Approved *bool  `json:"approved" validate:"required"`
}

// SubmissionFilter describes query string filters for the review queue.
type SubmissionFilter struct {
	Status       string `query:"status" validate:"omitempty,oneof=all pending approved rejected"`
	AssignmentID string `query:"assignment_id"`
}

// FeedbackResponse serializes feedback.
type FeedbackResponse struct {
	Approved     bool      `json:"approved"`
	Message      string    `json:"message"`
	FeedbackDate time.Time `json:"feedback_date"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID            string               `json:"id"`
	AssignmentID  string               `json:"assignment_id"`
	StudentID     string               `json:"student_id"`
	Submitted     bool                 `json:"submitted"`
	SubmittedAt   *time.Time           `json:"submitted_at"`
	Attachments   []AttachmentResponse `json:"attachments"`
	Feedback      *FeedbackResponse    `json:"feedback"`
	Resubmitted   bool                 `json:"resubmitted"`
	ResubmittedAt *time.Time           `json:"resubmitted_at"`
	State         string               `json:"state"`
	Assignment    *AssignmentLite      `json:"assignment,omitempty"`
	Student       *StudentLite         `json:"student,omitempty"`
}

// ReviewStatsResponse counts submissions by review outcome.
type ReviewStatsResponse struct {
	Submitted int `json:"submitted"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}

// FeedbackResult bundles the reviewed submission with the notification it produced.
type FeedbackResult struct {
	Submission   SubmissionResponse   `json:"submission"`
	Notification NotificationResponse `json:"notification"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:            model.ID,
		AssignmentID:  model.AssignmentID,
		StudentID:     model.StudentID,
		Submitted:     model.Submitted,
		SubmittedAt:   model.SubmittedAt,
		Attachments:   NewAttachmentResponseSlice(model.Attachments),
		Resubmitted:   model.Resubmitted,
		ResubmittedAt: model.ResubmittedAt,
		State:         string(model.State()),
	}

	if model.Feedback != nil {
		response.Feedback = &FeedbackResponse{
			Approved:     model.Feedback.Approved,
			Message:      model.Feedback.Message,
			FeedbackDate: model.Feedback.FeedbackDate,
		}
	}

	return response
}

// WithAssignment attaches an assignment summary.
func (r SubmissionResponse) WithAssignment(assignment models.Assignment) SubmissionResponse {
	r.Assignment = &AssignmentLite{ID: assignment.ID, Title: assignment.Title, DueDate: assignment.DueDate}
	return r
}

// WithStudent attaches a student summary.
func (r SubmissionResponse) WithStudent(student models.Student) SubmissionResponse {
	r.Student = &StudentLite{ID: student.ID, Name: student.Name, Email: student.Email}
	return r
}

// NewSubmissionResponseSlice converts a slice of models.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
