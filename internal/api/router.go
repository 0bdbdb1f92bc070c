package api

import (
	"log/slog"
	"net/http"

	"github.com/St1cky1/employee-tracker/internal/api/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	AllowedOrigins []string
	// AccessLog enables per-request log lines through Logger.
	AccessLog bool
	Logger    *slog.Logger
}

func NewRouter(
	taskService handlers.TaskService,
	employeeService handlers.EmployeeService,
	health handlers.HealthChecker,
	cfg RouterConfig,
) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		r.Use(middleware.RequestLogger(&accessLogFormatter{logger: logger}))
	}
	r.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	taskHandler := handlers.NewTaskHandler(taskService, logger)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, logger)
	healthHandler := handlers.NewHealthHandler(health, logger)

	r.Get("/", healthHandler.Root)
	r.Get("/healthz", healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Get("/{id}/history", employeeHandler.GetHistory)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
				r.Get("/audit", taskHandler.ListTaskAudit)
			})
		})

		r.Get("/stats", taskHandler.GetStats)
	})

	return r
}
