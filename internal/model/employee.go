package model

import "time"

// Employee roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Employee account statuses.
const (
	EmployeeStatusActive = "active"
	EmployeeStatusLocked = "locked"
)

// Employee is a back-office user.
type Employee struct {
	ID           int64     `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
