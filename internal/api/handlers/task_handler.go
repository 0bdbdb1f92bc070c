package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/St1cky1/employee-tracker/internal/entity"
)

type TaskService interface {
	ListTasks(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int, req *entity.UpdateTaskStatusRequest) error
	DeleteTask(ctx context.Context, taskID int) error
	GetStats(ctx context.Context) (*entity.DashboardStats, error)
	ListTaskAudit(ctx context.Context, taskID int) ([]entity.TaskAudit, error)
}

type TaskHandler struct {
	responder
	taskService TaskService
}

func NewTaskHandler(taskService TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		responder:   newResponder(logger),
		taskService: taskService,
	}
}

// parseTaskFilter reads ?status=&employeeId=. Empty values mean no filter.
func parseTaskFilter(r *http.Request) (entity.TaskFilter, error) {
	var filter entity.TaskFilter
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status := entity.TaskStatus(raw)
		if !status.Valid() {
			return filter, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidFilter, raw)
		}
		filter.Status = &status
	}

	if raw := q.Get("employeeId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: employeeId %q is not a number", entity.ErrInvalidFilter, raw)
		}
		filter.EmployeeID = &id
	}

	return filter, nil
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req entity.UpdateTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.UpdateTaskStatus(r.Context(), taskID, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Updated"})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.GetStats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *TaskHandler) ListTaskAudit(w http.ResponseWriter, r *http.Request) {
	taskID, err := idParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	audits, err := h.taskService.ListTaskAudit(r.Context(), taskID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, audits)
}
