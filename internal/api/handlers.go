package api

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/service"
)

func (s *Server) today() string {
	return domain.Today(s.now(), s.loc)
}

// queryInt reads a non-negative integer query parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.Dashboard.Get(r.Context(), userFrom(r.Context()).ID, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	entries, err := s.svc.Journals.List(r.Context(), userFrom(r.Context()).ID, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateJournalRequest
	if !decode(w, r, &req) {
		return
	}
	entry, err := s.svc.Journals.Write(r.Context(), userFrom(r.Context()).ID, req.Date, req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Journals.GetByDate(r.Context(), userFrom(r.Context()).ID, r.PathValue("date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.Goals.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(goals))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateGoalRequest
	if !decode(w, r, &req) {
		return
	}
	g := &domain.Goal{
		UserID:      userFrom(r.Context()).ID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    domain.GoalDuration(req.Duration),
		Category:    req.Category,
	}
	if err := s.svc.Goals.Create(r.Context(), g); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateGoalRequest
	if !decode(w, r, &req) {
		return
	}
	patch := domain.GoalPatch{
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
	}
	if req.Status != nil {
		st := domain.GoalStatus(*req.Status)
		patch.Status = &st
	}
	g, err := s.svc.Goals.Update(r.Context(), userFrom(r.Context()).ID, r.PathValue("goalID"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Goals.Delete(r.Context(), userFrom(r.Context()).ID, r.PathValue("goalID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	q := service.TaskQuery{Date: r.URL.Query().Get("date"), Limit: limit}
	if q.Date == "" && q.Limit == 0 {
		q.Date = s.today()
	}
	tasks, err := s.svc.Tasks.List(r.Context(), userFrom(r.Context()).ID, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tasks))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateTaskRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := s.svc.Tasks.SetCompleted(r.Context(), userFrom(r.Context()).ID, r.PathValue("taskID"), *req.Completed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleGenerateTasks generates a batch for the requested date, tomorrow by default.
func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req contract.GenerateTasksRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	s.generate(w, r, req.Date, req.ReplaceExisting)
}

// handleGenerateToday is the manual trigger for today's batch.
func (s *Server) handleGenerateToday(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, s.today(), false)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, date string, replace bool) {
	out, err := s.svc.Generation.GenerateForUser(r.Context(), service.GenerateRequest{
		UserID:          userFrom(r.Context()).ID,
		TargetDate:      date,
		Now:             s.now(),
		ReplaceExisting: replace,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.GenerateTasksResponse{
		Date:             out.TargetDate,
		Skipped:          out.Skipped,
		Source:           string(out.Source),
		Tasks:            nonNil(out.Tasks),
		DashboardContent: out.Dashboard,
	})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
