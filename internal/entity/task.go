package entity

import (
	"time"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

type Task struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *Date        `json:"dueDate"`
	EmployeeID   *int         `json:"employeeId"`
	AssigneeName *string      `json:"assigneeName"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// TaskFilter narrows a task listing. Nil fields are not filtered on.
type TaskFilter struct {
	Status     *TaskStatus
	EmployeeID *int
}

// валидация
type CreateTaskRequest struct {
	Title       string       `json:"title" validate:"notblank,max=255"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *Date        `json:"dueDate"`
	EmployeeID  NullableID   `json:"employeeId" validate:"omitempty,gte=0"`
}

// ApplyDefaults fills in the values an omitted field stands for.
func (r *CreateTaskRequest) ApplyDefaults() {
	if r.Status == "" {
		r.Status = StatusTodo
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	// 0 от клиента означает "не назначено"
	if id := r.EmployeeID.Ptr(); id != nil && *id == 0 {
		r.EmployeeID = NullableID{}
	}
}

func (r *CreateTaskRequest) Validate() error {
	return validateStruct(ErrInvalidTaskData, r)
}

type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
}

func (r *UpdateTaskStatusRequest) Validate() error {
	return validateStruct(ErrInvalidTaskData, r)
}
