package models

import "math"

// Student represents a learner managed by administrators.
type Student struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Age            int     `json:"age"`
	GPA            float64 `json:"gpa"`
	EnrollmentDate string  `json:"enrollmentDate"`
}

// PercentageGrade converts the 4.0-scale GPA into a rounded percentage.
func (s Student) PercentageGrade() int {
	if s.GPA <= 0 {
		return 0
	}
	return int(math.Round(s.GPA / 4.0 * 100))
}
