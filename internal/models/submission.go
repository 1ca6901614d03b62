package models

import "time"

// SubmissionState is the lifecycle position of a submission, derived from its fields.
type SubmissionState string

const (
	SubmissionStateNotSubmitted  SubmissionState = "not_submitted"
	SubmissionStatePendingReview SubmissionState = "pending_review"
	SubmissionStateApproved      SubmissionState = "approved"
	SubmissionStateRejected      SubmissionState = "rejected"
)

// Feedback is the reviewer's verdict on a submission.
type Feedback struct {
	Approved     bool      `json:"approved"`
	Message      string    `json:"message"`
	FeedbackDate time.Time `json:"feedbackDate"`
}

// Submission tracks one student's work on one assignment. A placeholder with
// Submitted=false exists from the moment the assignment is created.
type Submission struct {
	ID            string       `json:"id"`
	AssignmentID  string       `json:"assignmentId"`
	StudentID     string       `json:"studentId"`
	Submitted     bool         `json:"submitted"`
	SubmittedAt   *time.Time   `json:"submittedAt,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty"`
	Feedback      *Feedback    `json:"feedback,omitempty"`
	Resubmitted   bool         `json:"resubmitted,omitempty"`
	ResubmittedAt *time.Time   `json:"resubmittedAt,omitempty"`
}

// PlaceholderSubmissionID builds the identifier given to placeholders.
func PlaceholderSubmissionID(assignmentID, studentID string) string {
	return assignmentID + "-" + studentID
}

// NewPlaceholderSubmission returns the not-yet-submitted record for a student.
func NewPlaceholderSubmission(assignmentID, studentID string) Submission {
	return Submission{
		ID:           PlaceholderSubmissionID(assignmentID, studentID),
		AssignmentID: assignmentID,
		StudentID:    studentID,
	}
}

// IsApproved reports whether the latest feedback approved the work.
func (s Submission) IsApproved() bool {
	return s.Feedback != nil && s.Feedback.Approved
}

// IsRejected reports whether the latest feedback asked for a revision.
func (s Submission) IsRejected() bool {
	return s.Feedback != nil && !s.Feedback.Approved
}

// State derives the lifecycle state. A resubmission made after the latest feedback is
// pending review again even though the old feedback is still on the record.
func (s Submission) State() SubmissionState {
	switch {
	case !s.Submitted:
		return SubmissionStateNotSubmitted
	case s.Feedback == nil:
		return SubmissionStatePendingReview
	case s.Resubmitted && s.ResubmittedAt != nil && s.ResubmittedAt.After(s.Feedback.FeedbackDate):
		return SubmissionStatePendingReview
	case s.Feedback.Approved:
		return SubmissionStateApproved
	default:
		return SubmissionStateRejected
	}
}

// IsOverdue reports whether the work is still missing after the assignment's due date.
func (s Submission) IsOverdue(assignment Assignment, now time.Time) bool {
	return !s.Submitted && assignment.IsPastDue(now)
}
