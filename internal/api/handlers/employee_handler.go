package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/St1cky1/employee-tracker/internal/entity"
)

type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]entity.Employee, error)
	CreateEmployee(ctx context.Context, req *entity.CreateEmployeeRequest) (*entity.Employee, error)
	GetHistory(ctx context.Context, employeeID int) (*entity.EmployeeHistory, error)
}

type EmployeeHandler struct {
	responder
	employeeService EmployeeService
}

func NewEmployeeHandler(employeeService EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:       newResponder(logger),
		employeeService: employeeService,
	}
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.employeeService.CreateEmployee(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.employeeService.GetHistory(r.Context(), employeeID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}
