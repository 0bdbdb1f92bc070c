package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/St1cky1/employee-tracker/internal/repository"
)

// memoryStore is an in-process stand-in for the PostgreSQL schema.
type memoryStore struct {
	mu        sync.Mutex
	employees map[int]entity.Employee
	tasks     map[int]entity.Task
	nextID    int
	failWith  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		employees: make(map[int]entity.Employee),
		tasks:     make(map[int]entity.Task),
	}
}

func (s *memoryStore) id() int {
	s.nextID++
	return s.nextID
}

type memoryTaskRepo struct{ s *memoryStore }
type memoryEmployeeRepo struct{ s *memoryStore }

var (
	_ repository.ITaskRepository     = memoryTaskRepo{}
	_ repository.IEmployeeRepository = memoryEmployeeRepo{}
)

func (r memoryTaskRepo) withAssignee(t entity.Task) entity.Task {
	t.AssigneeName = nil
	if t.EmployeeID != nil {
		if e, ok := r.s.employees[*t.EmployeeID]; ok {
			name := e.Name
			t.AssigneeName = &name
		}
	}
	return t
}

func (r memoryTaskRepo) Create(_ context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if id := req.EmployeeID.Ptr(); id != nil {
		if _, ok := r.s.employees[*id]; !ok {
			return nil, errors.New(`insert or update on table "tasks" violates foreign key constraint "tasks_employee_id_fkey"`)
		}
	}
	t := entity.Task{
		ID:          r.s.id(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		EmployeeID:  req.EmployeeID.Ptr(),
		CreatedAt:   time.Now().UTC(),
	}
	r.s.tasks[t.ID] = t
	out := r.withAssignee(t)
	return &out, nil
}

func (r memoryTaskRepo) List(_ context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	tasks := make([]entity.Task, 0)
	for _, t := range r.s.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && (t.EmployeeID == nil || *t.EmployeeID != *filter.EmployeeID) {
			continue
		}
		tasks = append(tasks, r.withAssignee(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil && b == nil:
			return tasks[i].ID < tasks[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(b.Time):
			return a.Before(b.Time)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (r memoryTaskRepo) UpdateStatus(_ context.Context, id int, status entity.TaskStatus) (*entity.TaskStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	prev := t.Status
	t.Status = status
	r.s.tasks[id] = t
	return &prev, nil
}

func (r memoryTaskRepo) Delete(_ context.Context, id int) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.tasks, id)
	return &t, nil
}

func (r memoryTaskRepo) Stats(_ context.Context) (*entity.DashboardStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	stats := &entity.DashboardStats{TotalTasks: len(r.s.tasks)}
	for _, t := range r.s.tasks {
		if t.Status == entity.StatusCompleted {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
		}
	}
	return stats, nil
}

func (r memoryEmployeeRepo) Create(_ context.Context, req *entity.CreateEmployeeRequest) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == req.Email {
			return nil, errors.New(`duplicate key value violates unique constraint "employees_email_key"`)
		}
	}
	e := entity.Employee{
		ID:         r.s.id(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		JobTitle:   req.JobTitle,
		CreatedAt:  time.Now().UTC(),
	}
	r.s.employees[e.ID] = e
	return &e, nil
}

func (r memoryEmployeeRepo) List(_ context.Context) ([]entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	employees := make([]entity.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}

type memoryAuditRepo struct{}

func (memoryAuditRepo) Create(context.Context, *entity.TaskAudit) error { return nil }
func (memoryAuditRepo) ListByTaskId(_ context.Context, taskId int) ([]entity.TaskAudit, error) {
	return []entity.TaskAudit{}, nil
}

type stubHealth struct{ err error }

func (h stubHealth) HealthCheck(context.Context) error { return h.err }
