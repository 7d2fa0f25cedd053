package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/acmeweb/acme-api/internal/models"
)

// DepartmentRequest is the JSON body for creating or updating a department.
type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

func departmentCreateFields(req DepartmentRequest) map[string]any {
	return map[string]any{
		"id":   uuid.New(),
		"name": req.Name,
	}
}

func departmentUpdateFields(req DepartmentRequest) map[string]any {
	return map[string]any{
		"name": req.Name,
	}
}

// EmployeeRequest is the JSON body for creating or updating an employee.
type EmployeeRequest struct {
	Name         string     `json:"name" validate:"required"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

func employeeCreateFields(req EmployeeRequest) map[string]any {
	return map[string]any{
		"id":            uuid.New(),
		"name":          req.Name,
		"department_id": req.DepartmentID,
	}
}

func employeeUpdateFields(req EmployeeRequest) map[string]any {
	return map[string]any{
		"name":          req.Name,
		"department_id": req.DepartmentID,
	}
}

// EmployeeReader reads employees joined with department names.
type EmployeeReader interface {
	ListWithDepartments(ctx context.Context) ([]models.EmployeeWithDepartment, error)
	GetWithDepartment(ctx context.Context, id uuid.UUID) (*models.EmployeeWithDepartment, error)
}

// NewEmployeeListHandler returns GET /api/employees, each record
// including its department name.
func NewEmployeeListHandler(repo EmployeeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := repo.ListWithDepartments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, employees)
	}
}

// NewEmployeeGetHandler returns GET /api/employees/{id}.
func NewEmployeeGetHandler(repo EmployeeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		employee, err := repo.GetWithDepartment(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, employee)
	}
}
