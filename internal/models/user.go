package model

import (
	"time"
)

// Rôles utilisateur
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type UserAccount struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"` // student, teacher
	School    string     `json:"school"`
	City      string     `json:"city"`
	Points    int        `json:"points"`
	Badges    []string   `json:"badges"`
	Streak    int        `json:"streak"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsTeacher indique si l'utilisateur peut créer des challenges et valider des soumissions
func (u *UserAccount) IsTeacher() bool {
	return u.Role == RoleTeacher
}
