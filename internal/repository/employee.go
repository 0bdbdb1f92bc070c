package repository

import (
	"context"
	"fmt"

	"github.com/St1cky1/employee-tracker/internal/entity"
)

type EmployeeRepository struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

// создаем сотрудника, дубликат email отклоняет уникальный индекс
func (r *EmployeeRepository) Create(ctx context.Context, employee *entity.CreateEmployeeRequest) (*entity.Employee, error) {
	query := `
	INSERT INTO employees (name, email, phone, department, job_title)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, name, email, phone, department, job_title, created_at
	`

	var created entity.Employee
	err := r.db.QueryRow(ctx, query,
		employee.Name,
		employee.Email,
		employee.Phone,
		employee.Department,
		employee.JobTitle,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Phone,
		&created.Department,
		&created.JobTitle,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	return &created, nil
}

// List - все сотрудники по алфавиту
func (r *EmployeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	query := `
	SELECT id, name, email, phone, department, job_title, created_at
	FROM employees
	ORDER BY name ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]entity.Employee, 0)
	for rows.Next() {
		var employee entity.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Email,
			&employee.Phone,
			&employee.Department,
			&employee.JobTitle,
			&employee.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}
