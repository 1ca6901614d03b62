package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// AttachmentType distinguishes inline images from external links.
type AttachmentType string

const (
	// AttachmentTypeImage holds an image, either base64 encoded or as an uploaded URL.
	AttachmentTypeImage AttachmentType = "image"
	// AttachmentTypeLink holds an external URL.
	AttachmentTypeLink AttachmentType = "link"
)

// Attachment is a file or link attached to an assignment or a submission.
type Attachment struct {
	Type  AttachmentType `json:"type"`
	Value string         `json:"value"`
	Name  string         `json:"name,omitempty"`
}

// Assignment represents work handed out to a set of students.
type Assignment struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate"`
	AssignedTo  []string     `json:"assignedTo"`
	CreatedAt   time.Time    `json:"createdAt"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// DueDateLayouts lists the accepted due date formats. Date-only values come from stores
// written by the browser client.
var DueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", time.DateOnly}

// ParseDueDate reads a due date in any of DueDateLayouts and returns it in UTC.
func ParseDueDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range DueDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported due date %q", raw)
}

// UnmarshalJSON accepts every layout of DueDateLayouts for dueDate.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	type plain Assignment
	aux := struct {
		*plain
		DueDate *string `json:"dueDate"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DueDate == nil || *aux.DueDate == "" {
		a.DueDate = time.Time{}
		return nil
	}

	dueDate, err := ParseDueDate(*aux.DueDate)
	if err != nil {
		return err
	}
	a.DueDate = dueDate
	return nil
}

// IsPastDue returns true when the assignment deadline lies before the reference time.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueDate.Before(reference)
}

// IsAssignedTo reports whether the student is in the assignment's audience.
func (a Assignment) IsAssignedTo(studentID string) bool {
	return slices.Contains(a.AssignedTo, studentID)
}
