package stubserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims := claimsFrom(r)
	out := []services.Task{}
	for _, task := range s.tasks {
		if claims.Role == session.RoleAdmin || task.AssignedTo == claims.UserID {
			out = append(out, *task)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, *task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task := &services.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		Status:      "pending",
		DueDate:     input.DueDate,
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	s.tasks[task.ID] = task
	writeJSON(w, http.StatusCreated, *task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	claims := claimsFrom(r)
	if claims.Role != session.RoleAdmin && task.AssignedTo != claims.UserID {
		writeError(w, http.StatusForbidden, "not your task")
		return
	}
	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.AssignedTo != "" && claims.Role == session.RoleAdmin {
		task.AssignedTo = input.AssignedTo
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.DueDate != "" {
		task.DueDate = input.DueDate
	}
	writeJSON(w, http.StatusOK, *task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	delete(s.tasks, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []services.Announcement{}
	for _, a := range s.announcements {
		out = append(out, *a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var input services.AnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" || input.Message == "" {
		writeError(w, http.StatusBadRequest, "title and message are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := &services.Announcement{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Message:   input.Message,
		Audience:  input.Audience,
		CreatedAt: time.Now().UTC(),
	}
	s.announcements[a.ID] = a
	writeJSON(w, http.StatusCreated, *a)
}

func (s *Server) handleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var input services.AnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.announcements[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "announcement not found")
		return
	}
	if input.Title != "" {
		a.Title = input.Title
	}
	if input.Message != "" {
		a.Message = input.Message
	}
	if input.Audience != "" {
		a.Audience = input.Audience
	}
	writeJSON(w, http.StatusOK, *a)
}

func (s *Server) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.announcements[id]; !ok {
		writeError(w, http.StatusNotFound, "announcement not found")
		return
	}
	delete(s.announcements, id)
	w.WriteHeader(http.StatusNoContent)
}
