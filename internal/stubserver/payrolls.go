package stubserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/domain/payroll"
	"github.com/abhidhakal/hready/internal/services"
)

func (s *Server) handleListPayrolls(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []services.Payroll{}
	for _, p := range s.payrolls {
		out = append(out, *p)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreatePayroll generates a draft payroll for the month from the
// employee's active salary record, reusing the record's derived figures.
func (s *Server) handleCreatePayroll(w http.ResponseWriter, r *http.Request) {
	var input services.PayrollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.EmployeeID == "" || input.Month == "" {
		writeError(w, http.StatusBadRequest, "employeeId and month are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var source *services.SalaryRecord
	for _, rec := range s.salaries {
		if rec.EmployeeID == input.EmployeeID && rec.Status != payroll.StatusInactive {
			source = rec
			break
		}
	}
	if source == nil {
		writeError(w, http.StatusNotFound, "no active salary record for employee")
		return
	}

	p := &services.Payroll{
		ID:         uuid.NewString(),
		EmployeeID: input.EmployeeID,
		Month:      input.Month,
		Gross:      source.GrossSalary,
		Deductions: source.TotalDeductions,
		Net:        source.NetSalary,
		Currency:   source.Currency,
		Status:     services.PayrollStatusDraft,
	}
	s.payrolls[p.ID] = p
	writeJSON(w, http.StatusCreated, *p)
}

func (s *Server) handleApprovePayroll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payrolls[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "payroll not found")
		return
	}
	if p.Status != services.PayrollStatusDraft {
		writeError(w, http.StatusConflict, "only draft payrolls can be approved")
		return
	}
	p.Status = services.PayrollStatusApproved
	writeJSON(w, http.StatusOK, *p)
}

func (s *Server) handleMarkPaidPayroll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payrolls[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "payroll not found")
		return
	}
	if p.Status != services.PayrollStatusApproved {
		writeError(w, http.StatusConflict, "payroll must be approved before payment")
		return
	}
	p.Status = services.PayrollStatusPaid
	writeJSON(w, http.StatusOK, *p)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.budget)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var budget services.PayrollBudget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if budget.Budget < 0 {
		writeError(w, http.StatusBadRequest, "budget must not be negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if budget.Currency == "" {
		budget.Currency = s.budget.Currency
	}
	s.budget = budget
	writeJSON(w, http.StatusOK, s.budget)
}
