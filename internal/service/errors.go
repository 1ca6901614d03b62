package service

import "errors"

var (
	// ErrStudentNotFound indicates the requested student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrAssignmentNotFound indicates the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound indicates the requested submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrNotificationNotFound indicates the notification does not exist or belongs to someone else.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrSubmissionNotSubmitted is returned when feedback targets work that was never handed in.
	ErrSubmissionNotSubmitted = errors.New("submission has not been submitted")
	// ErrInvalidAttachment flags attachments whose payload does not match their type.
	ErrInvalidAttachment = errors.New("invalid attachment")
	// ErrInvalidDueDate is returned when a due date cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrUnknownStudent is returned when an assignment targets students that do not exist.
	ErrUnknownStudent = errors.New("assigned student does not exist")
	// ErrNoSession is returned when no mock session is active.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidImport is returned when a backup document fails schema validation.
	ErrInvalidImport = errors.New("invalid import document")
)
