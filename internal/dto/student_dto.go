package dto

import "github.com/noah-isme/assignment-tracker/internal/models"

// StudentCreateRequest describes the payload for registering a student.
type StudentCreateRequest struct {
	Name           string   `json:"name" validate:"required,max=255"`
	Email          string   `json:"email" validate:"required,loose_email"`
	Age            *int     `json:"age" validate:"required,gte=15,lte=65"`
	GPA            *float64 `json:"gpa" validate:"required,gte=0,lte=4"`
	EnrollmentDate string   `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

// StudentResponse is the serialized representation of a student.
type StudentResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Age             int     `json:"age"`
	GPA             float64 `json:"gpa"`
	EnrollmentDate  string  `json:"enrollment_date"`
	PercentageGrade int     `json:"percentage_grade"`
}

// StudentStatsResponse summarises a student's progress across assigned work.
type StudentStatsResponse struct {
	StudentID       string  `json:"student_id"`
	Total           int     `json:"total"`
	Submitted       int     `json:"submitted"`
	InProgress      int     `json:"in_progress"`
	Percentage      float64 `json:"percentage"`
	Approved        int     `json:"approved"`
	Rejected        int     `json:"rejected"`
	Pending         int     `json:"pending"`
	Overdue         int     `json:"overdue"`
	PercentageGrade int     `json:"percentage_grade"`
}

// StudentLite summarizes a student inside other payloads.
type StudentLite struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:              model.ID,
		Name:            model.Name,
		Email:           model.Email,
		Age:             model.Age,
		GPA:             model.GPA,
		EnrollmentDate:  model.EnrollmentDate,
		PercentageGrade: model.PercentageGrade(),
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}
