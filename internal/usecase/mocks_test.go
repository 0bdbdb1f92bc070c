package usecase

import (
	"context"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/St1cky1/employee-tracker/internal/repository"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc       func(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error)
	ListFunc         func(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	UpdateStatusFunc func(ctx context.Context, id int, status entity.TaskStatus) (*entity.TaskStatus, error)
	DeleteFunc       func(ctx context.Context, id int) (*entity.Task, error)
	StatsFunc        func(ctx context.Context) (*entity.DashboardStats, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) List(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id int, status entity.TaskStatus) (*entity.TaskStatus, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int) (*entity.Task, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &entity.DashboardStats{}, nil
}

// MockEmployeeRepository - мок для IEmployeeRepository
type MockEmployeeRepository struct {
	CreateFunc func(ctx context.Context, employee *entity.CreateEmployeeRequest) (*entity.Employee, error)
	ListFunc   func(ctx context.Context) ([]entity.Employee, error)
}

var _ repository.IEmployeeRepository = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *entity.CreateEmployeeRequest) (*entity.Employee, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, employee)
	}
	return nil, nil
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockTaskAuditRepository - мок для ITaskAuditRepository
type MockTaskAuditRepository struct {
	CreateFunc       func(ctx context.Context, audit *entity.TaskAudit) error
	ListByTaskIdFunc func(ctx context.Context, taskId int) ([]entity.TaskAudit, error)
}

var _ repository.ITaskAuditRepository = (*MockTaskAuditRepository)(nil)

func (m *MockTaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, audit)
	}
	return nil
}

func (m *MockTaskAuditRepository) ListByTaskId(ctx context.Context, taskId int) ([]entity.TaskAudit, error) {
	if m.ListByTaskIdFunc != nil {
		return m.ListByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

// chanPublisher hands every published message to a buffered channel.
type chanPublisher struct {
	messages chan *entity.AuditMessage
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{messages: make(chan *entity.AuditMessage, 8)}
}

func (p *chanPublisher) PublishAuditMessage(_ context.Context, message *entity.AuditMessage) error {
	p.messages <- message
	return nil
}

// gatePublisher blocks every publish until release is closed.
type gatePublisher struct {
	release   chan struct{}
	published chan struct{}
}

func newGatePublisher() *gatePublisher {
	return &gatePublisher{release: make(chan struct{}), published: make(chan struct{}, 8)}
}

func (p *gatePublisher) PublishAuditMessage(ctx context.Context, _ *entity.AuditMessage) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.published <- struct{}{}
	return nil
}
