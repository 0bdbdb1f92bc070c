package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/St1cky1/employee-tracker/internal/entity"
	"github.com/St1cky1/employee-tracker/internal/repository"
	"github.com/google/uuid"
)

const auditPublishTimeout = 5 * time.Second

// AuditPublisher интерфейс для публикации в RabbitMQ
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type TaskService struct {
	taskRepo  repository.ITaskRepository
	auditRepo repository.ITaskAuditRepository
	audit     AuditPublisher
	logger    *slog.Logger
	// незавершенные публикации аудита
	inflight sync.WaitGroup
}

// NewTaskService wires the task operations. audit may be nil to disable auditing.
func NewTaskService(
	taskRepo repository.ITaskRepository,
	auditRepo repository.ITaskAuditRepository,
	audit AuditPublisher,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskRepo:  taskRepo,
		auditRepo: auditRepo,
		audit:     audit,
		logger:    logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	return s.taskRepo.List(ctx, filter)
}

func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.ApplyDefaults()

	task, err := s.taskRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(entity.ActionCreate, task.ID, nil, taskValues(task), nil)

	return task, nil
}

// UpdateTaskStatus overwrites the status only. An unknown id is not an error.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID int, req *entity.UpdateTaskStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	previous, err := s.taskRepo.UpdateStatus(ctx, taskID, req.Status)
	if err != nil {
		return err
	}
	if previous == nil {
		s.logger.Debug("status update matched no task", "task_id", taskID)
		return nil
	}

	var changes map[string]any
	if *previous != req.Status {
		changes = map[string]any{
			"status": map[string]any{"old": *previous, "new": req.Status},
		}
	}
	s.sendAuditMessage(entity.ActionUpdateStatus, taskID,
		map[string]any{"status": *previous},
		map[string]any{"status": req.Status},
		changes,
	)

	return nil
}

// DeleteTask removes the task. Deleting an unknown id succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, taskID int) error {
	deleted, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if deleted == nil {
		s.logger.Debug("delete matched no task", "task_id", taskID)
		return nil
	}

	s.sendAuditMessage(entity.ActionDelete, taskID, taskValues(deleted), nil, nil)

	return nil
}

func (s *TaskService) GetStats(ctx context.Context) (*entity.DashboardStats, error) {
	return s.taskRepo.Stats(ctx)
}

// ListTaskAudit returns the stored audit trail of a task, newest first.
func (s *TaskService) ListTaskAudit(ctx context.Context, taskID int) ([]entity.TaskAudit, error) {
	return s.auditRepo.ListByTaskId(ctx, taskID)
}

func taskValues(task *entity.Task) map[string]any {
	values := map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"employee_id": task.EmployeeID,
	}
	if task.DueDate != nil {
		values["due_date"] = task.DueDate.String()
	}
	return values
}

// Wait blocks until every audit publish started so far has finished.
// Call it before closing the publisher.
func (s *TaskService) Wait() {
	s.inflight.Wait()
}

// Вспомогательный метод для отправки аудита
func (s *TaskService) sendAuditMessage(
	action entity.ActionType,
	taskID int,
	oldValues map[string]any,
	newValues map[string]any,
	changes map[string]any,
) {
	if s.audit == nil {
		return
	}

	auditMsg := &entity.AuditMessage{
		ID:        uuid.NewString(),
		Action:    action,
		EntityID:  taskID,
		OldValues: oldValues,
		NewValues: newValues,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	}

	// публикуем асинхронно, ответ клиенту не ждет брокер
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), auditPublishTimeout)
		defer cancel()

		if err := s.audit.PublishAuditMessage(ctx, auditMsg); err != nil {
			s.logger.Error("publish task audit", "action", action, "task_id", taskID, "error", err)
			return
		}
		s.logger.Debug("task audit published", "action", action, "task_id", taskID, "message_id", auditMsg.ID)
	}()
}
