package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.due_date, t.employee_id, e.name, t.created_at`

const taskSelect = `
	SELECT ` + taskColumns + `
	FROM tasks t
	LEFT JOIN employees e ON t.employee_id = e.id
	`

// сначала задачи с ближайшим сроком, без срока в конце
const taskOrder = `ORDER BY t.due_date ASC NULLS LAST, t.id ASC`

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		task    entity.Task
		dueDate pgtype.Date
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&task.EmployeeID,
		&task.AssigneeName,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		task.DueDate = &entity.Date{Time: dueDate.Time}
	}
	return &task, nil
}

func dueDateArg(d *entity.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time, Valid: true}
}

// buildTaskListQuery composes the listing statement for filter.
func buildTaskListQuery(filter entity.TaskFilter) (string, []any) {
	where := &Conjunction{}
	if filter.Status != nil {
		where.Eq("t.status", string(*filter.Status))
	}
	if filter.EmployeeID != nil {
		where.Eq("t.employee_id", *filter.EmployeeID)
	}

	clause, args := where.Build(1)
	query := taskSelect
	if clause != "" {
		query += clause + "\n\t"
	}
	return query + taskOrder, args
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error) {
	query := `
	WITH inserted AS (
		INSERT INTO tasks (title, description, status, priority, due_date, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, status, priority, due_date, employee_id, created_at
	)
	SELECT ` + taskColumns + `
	FROM inserted t
	LEFT JOIN employees e ON t.employee_id = e.id
	`

	created, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		dueDateArg(task.DueDate),
		task.EmployeeID.Ptr(),
	))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return created, nil
}

// List - список задач с фильтрацией
func (r *TaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	query, args := buildTaskListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus - меняет только статус задачи
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int, status entity.TaskStatus) (*entity.TaskStatus, error) {
	query := `
	UPDATE tasks t
	SET status = $1
	FROM (SELECT id, status FROM tasks WHERE id = $2 FOR UPDATE) prev
	WHERE t.id = prev.id
	RETURNING prev.status
	`

	var previous entity.TaskStatus
	err := r.db.QueryRow(ctx, query, string(status), id).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update task status: %w", err)
	}

	return &previous, nil
}

// Delete - удаление задачи
func (r *TaskRepository) Delete(ctx context.Context, id int) (*entity.Task, error) {
	query := `
	DELETE FROM tasks t
	WHERE t.id = $1
	RETURNING t.id, t.title, t.description, t.status, t.priority, t.due_date, t.employee_id, NULL::text, t.created_at
	`

	deleted, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}

	return deleted, nil
}

// Stats - все три счетчика одним запросом, чтобы они были согласованы
func (r *TaskRepository) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = $1),
		COUNT(*) FILTER (WHERE status <> $1)
	FROM tasks
	`

	var stats entity.DashboardStats
	err := r.db.QueryRow(ctx, query, string(entity.StatusCompleted)).Scan(
		&stats.TotalTasks,
		&stats.CompletedTasks,
		&stats.PendingTasks,
	)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	return &stats, nil
}
