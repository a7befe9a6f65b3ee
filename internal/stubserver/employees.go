package stubserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

func (s *Server) accountByID(id string) (*account, bool) {
	for _, acct := range s.accounts {
		if acct.ID == id {
			return acct, true
		}
	}
	return nil, false
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(claimsFrom(r).UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, acct.Employee)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var input services.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(claimsFrom(r).UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	applyEmployeeInput(acct, input)
	writeJSON(w, http.StatusOK, acct.Employee)
}

func (s *Server) handleProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "profilePicture file missing")
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(claimsFrom(r).UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	acct.ProfilePicture = "/uploads/" + uuid.NewString() + "-" + header.Filename
	writeJSON(w, http.StatusOK, acct.Employee)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]services.Employee, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct.Employee)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	writeJSON(w, http.StatusOK, acct.Employee)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var input services.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Name == "" || input.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	role := input.Role
	if role == "" {
		role = session.RoleEmployee
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash failed")
		return
	}
	acct := &account{
		Employee: services.Employee{
			ID:         uuid.NewString(),
			Name:       input.Name,
			Email:      email,
			Role:       role,
			Department: input.Department,
			Position:   input.Position,
			Contact:    input.Contact,
			Status:     "active",
		},
		PasswordHash: string(hash),
	}
	s.accounts[email] = acct
	writeJSON(w, http.StatusCreated, acct.Employee)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var input services.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	applyEmployeeInput(acct, input)
	writeJSON(w, http.StatusOK, acct.Employee)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accountByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}
	delete(s.accounts, acct.Email)
	w.WriteHeader(http.StatusNoContent)
}

func applyEmployeeInput(acct *account, input services.EmployeeInput) {
	if input.Name != "" {
		acct.Name = input.Name
	}
	if input.Department != "" {
		acct.Department = input.Department
	}
	if input.Position != "" {
		acct.Position = input.Position
	}
	if input.Contact != "" {
		acct.Contact = input.Contact
	}
	if input.Role != "" {
		acct.Role = input.Role
	}
}
