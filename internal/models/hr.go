package models

import (
	"time"

	"github.com/google/uuid"
)

// Department represents a row in the departments table.
type Department struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Employee represents a row in the employees table. The
// department reference is optional.
type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// EmployeeWithDepartment is an employee joined with the
// department name, as returned by the employees endpoints.
type EmployeeWithDepartment struct {
	Employee
	DepartmentName *string `json:"department_name" db:"department_name"`
}
