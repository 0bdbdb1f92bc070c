package repository

import (
	"context"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error)
	List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	// UpdateStatus returns the previous status, or nil when no row matched.
	UpdateStatus(ctx context.Context, id int, status entity.TaskStatus) (*entity.TaskStatus, error)
	// Delete returns the removed row, or nil when no row matched.
	Delete(ctx context.Context, id int) (*entity.Task, error)
	Stats(ctx context.Context) (*entity.DashboardStats, error)
}

// IEmployeeRepository - интерфейс для EmployeeRepository
type IEmployeeRepository interface {
	Create(ctx context.Context, employee *entity.CreateEmployeeRequest) (*entity.Employee, error)
	List(ctx context.Context) ([]entity.Employee, error)
}

// ITaskAuditRepository - интерфейс для TaskAuditRepository
type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	ListByTaskId(ctx context.Context, taskId int) ([]entity.TaskAudit, error)
}
