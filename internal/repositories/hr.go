package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/resource"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

// DepartmentRepository handles the departments table.
type DepartmentRepository struct {
	*resource.Repository[models.Department]
}

func NewDepartmentRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *DepartmentRepository {
	return &DepartmentRepository{
		Repository: resource.New[models.Department](db, txGetter, resource.Definition{
			Table:      "departments",
			Columns:    []string{"id", "name"},
			Updatable:  []string{"name"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}

// EmployeeRepository handles the employees table. Listings join the
// department name so callers get it without a second round trip.
type EmployeeRepository struct {
	*resource.Repository[models.Employee]
}

func NewEmployeeRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *EmployeeRepository {
	return &EmployeeRepository{
		Repository: resource.New[models.Employee](db, txGetter, resource.Definition{
			Table:      "employees",
			Columns:    []string{"id", "name", "department_id"},
			Updatable:  []string{"name", "department_id"},
			OrderBy:    "name",
			Timestamps: true,
		}),
	}
}

// ListWithDepartments returns all employees with their department
// names, ordered by employee name.
func (r *EmployeeRepository) ListWithDepartments(ctx context.Context) ([]models.EmployeeWithDepartment, error) {
	const query = `
		SELECT e.*, d.name AS department_name
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		ORDER BY e.name ASC
	`

	out := make([]models.EmployeeWithDepartment, 0)
	err := r.DB().SelectContext(ctx, &out, query)
	logJoin("employees", query, nil, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return out, nil
}

// GetWithDepartment returns one employee with the department name,
// or ErrNotFound.
func (r *EmployeeRepository) GetWithDepartment(ctx context.Context, id uuid.UUID) (*models.EmployeeWithDepartment, error) {
	const query = `
		SELECT e.*, d.name AS department_name
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.id = $1
	`

	var emp models.EmployeeWithDepartment
	err := r.DB().GetContext(ctx, &emp, query, id)
	logJoin("employees", query, id, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeerr.ErrNotFound
	}
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return &emp, nil
}
