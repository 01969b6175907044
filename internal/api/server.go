package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/sprout/internal/service"
)

// Services are the use cases the HTTP surface exposes.
type Services struct {
	Users      service.UserService
	Journals   service.JournalService
	Goals      service.GoalService
	Tasks      service.TaskService
	Dashboard  service.DashboardService
	Generation service.GenerationService
}

type Server struct {
	svc    Services
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
	server *http.Server
}

// New builds the API server. loc determines which calendar day is "today".
func New(addr string, svc Services, loc *time.Location, logger *slog.Logger) *Server {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, loc: loc, now: time.Now, logger: logger}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with logging and auth applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/auth/user", s.handleCurrentUser)
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)

	api.HandleFunc("GET /api/journals", s.handleListJournals)
	api.HandleFunc("POST /api/journals", s.handleCreateJournal)
	api.HandleFunc("GET /api/journals/{date}", s.handleGetJournal)

	api.HandleFunc("GET /api/goals", s.handleListGoals)
	api.HandleFunc("POST /api/goals", s.handleCreateGoal)
	api.HandleFunc("PATCH /api/goals/{goalID}", s.handleUpdateGoal)
	api.HandleFunc("DELETE /api/goals/{goalID}", s.handleDeleteGoal)

	api.HandleFunc("GET /api/tasks", s.handleListTasks)
	api.HandleFunc("PATCH /api/tasks/{taskID}", s.handleUpdateTask)
	api.HandleFunc("POST /api/tasks/generate", s.handleGenerateTasks)
	api.HandleFunc("POST /api/generate-tasks", s.handleGenerateToday)

	mux.Handle("/api/", s.authMiddleware(api))
	return s.logMiddleware(mux)
}

// Start serves until Shutdown. errChan receives any error other than a clean close.
func (s *Server) Start(errChan chan<- error) {
	go func() {
		s.logger.Info("api listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("api server: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
