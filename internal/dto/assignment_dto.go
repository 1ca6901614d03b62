package dto

import (
	"time"

	"github.com/noah-isme/assignment-tracker/internal/models"
)

// AttachmentPayload is an attachment as sent by clients. Images carry base64 data.
type AttachmentPayload struct {
	Type  string `json:"type" validate:"required,oneof=image link"`
	Value string `json:"value" validate:"required"`
	Name  string `json:"name" validate:"omitempty,max=255"`
}

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	Title       string              `json:"title" validate:"required,max=255"`
	Description string              `json:"description" validate:"required"`
	DueDate     string              `json:"due_date" validate:"required"`
	AssignedTo  []string            `json:"assigned_to" validate:"required,min=1,dive,required"`
	Attachments []AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
}

// AssignmentUpdateRequest describes a partial update of an assignment.
type AssignmentUpdateRequest struct {
	Title       *string              `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string              `json:"description" validate:"omitempty,min=1"`
	DueDate     *string              `json:"due_date" validate:"omitempty,min=1"`
	AssignedTo  *[]string            `json:"assigned_to" validate:"omitempty,min=1,dive,required"`
	Attachments *[]AttachmentPayload `json:"attachments" validate:"omitempty,dive"`
}

// AssignmentListQuery selects the ordering of assignment lists.
type AssignmentListQuery struct {
	Sort string `query:"sort" validate:"omitempty,oneof=due_date submissions"`
}

// AttachmentResponse serializes an attachment.
type AttachmentResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	DueDate     time.Time                `json:"due_date"`
	AssignedTo  []string                 `json:"assigned_to"`
	CreatedAt   time.Time                `json:"created_at"`
	Attachments []AttachmentResponse     `json:"attachments"`
	PastDue     bool                     `json:"past_due"`
	Stats       *AssignmentStatsResponse `json:"stats,omitempty"`
}

// AssignmentStatsResponse combines submission and review counts for one assignment.
type AssignmentStatsResponse struct {
	AssignmentID string  `json:"assignment_id"`
	Submitted    int     `json:"submitted"`
	Total        int     `json:"total"`
	Percentage   float64 `json:"percentage"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	Pending      int     `json:"pending"`
}

// AssignmentLite summarizes an assignment in submission responses.
type AssignmentLite struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// StudentAssignmentResponse is an assignment as seen by one student.
type StudentAssignmentResponse struct {
	AssignmentResponse
	State      string              `json:"state"`
	Overdue    bool                `json:"overdue"`
	Submission *SubmissionResponse `json:"submission,omitempty"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment, now time.Time) AssignmentResponse {
	assignedTo := model.AssignedTo
	if assignedTo == nil {
		assignedTo = []string{}
	}

	return AssignmentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		DueDate:     model.DueDate,
		AssignedTo:  assignedTo,
		CreatedAt:   model.CreatedAt,
		Attachments: NewAttachmentResponseSlice(model.Attachments),
		PastDue:     model.IsPastDue(now),
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment, now time.Time) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment, now))
	}

	return responses
}

// NewAttachmentResponseSlice converts attachments, never returning nil.
func NewAttachmentResponseSlice(attachments []models.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, AttachmentResponse{
			Type:  string(attachment.Type),
			Value: attachment.Value,
			Name:  attachment.Name,
		})
	}
	return responses
}
