package stubserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

func (s *Server) handleListBanks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []services.BankAccount{}
	for _, b := range s.banks {
		out = append(out, *b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMyBank(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := claimsFrom(r).UserID
	for _, b := range s.banks {
		if b.EmployeeID == userID {
			writeJSON(w, http.StatusOK, *b)
			return
		}
	}
	writeError(w, http.StatusNotFound, "no bank account on file")
}

func (s *Server) handleCreateBank(w http.ResponseWriter, r *http.Request) {
	var input services.BankAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.BankName == "" || input.AccountNumber == "" {
		writeError(w, http.StatusBadRequest, "bankName and accountNumber are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := &services.BankAccount{
		ID:            uuid.NewString(),
		EmployeeID:    claimsFrom(r).UserID,
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
		Branch:        input.Branch,
	}
	s.banks[b.ID] = b
	writeJSON(w, http.StatusCreated, *b)
}

func (s *Server) handleUpdateBank(w http.ResponseWriter, r *http.Request) {
	var input services.BankAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.banks[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "bank account not found")
		return
	}
	claims := claimsFrom(r)
	if claims.Role != session.RoleAdmin && b.EmployeeID != claims.UserID {
		writeError(w, http.StatusForbidden, "not your bank account")
		return
	}
	if input.BankName != "" {
		b.BankName = input.BankName
	}
	if input.AccountName != "" {
		b.AccountName = input.AccountName
	}
	if input.AccountNumber != "" {
		b.AccountNumber = input.AccountNumber
	}
	if input.Branch != "" {
		b.Branch = input.Branch
	}
	writeJSON(w, http.StatusOK, *b)
}

func (s *Server) handleDeleteBank(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	b, ok := s.banks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "bank account not found")
		return
	}
	claims := claimsFrom(r)
	if claims.Role != session.RoleAdmin && b.EmployeeID != claims.UserID {
		writeError(w, http.StatusForbidden, "not your bank account")
		return
	}
	delete(s.banks, id)
	w.WriteHeader(http.StatusNoContent)
}
