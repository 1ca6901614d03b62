package models

// Roles accepted by the mock login.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// SessionUser is the mock session persisted under the current-user key.
type SessionUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ID       string `json:"id"`
}
