package usecase

import (
	"context"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/St1cky1/employee-tracker/internal/repository"
)

type EmployeeService struct {
	employeeRepo repository.IEmployeeRepository
	taskRepo     repository.ITaskRepository
}

func NewEmployeeService(
	employeeRepo repository.IEmployeeRepository,
	taskRepo repository.ITaskRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		taskRepo:     taskRepo,
	}
}

// CreateEmployee создает нового сотрудника
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *entity.CreateEmployeeRequest) (*entity.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.employeeRepo.Create(ctx, req)
}

// ListEmployees returns the directory ordered by name.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]entity.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// GetHistory returns every task assigned to the employee with summary counts.
// An employee with no tasks, or no such employee, yields an empty history.
func (s *EmployeeService) GetHistory(ctx context.Context, employeeID int) (*entity.EmployeeHistory, error) {
	tasks, err := s.taskRepo.List(ctx, entity.TaskFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}

	return &entity.EmployeeHistory{
		Tasks: tasks,
		Stats: entity.SummarizeTasks(tasks),
	}, nil
}
