package stubserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/domain/payroll"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

// recordFromSpec persists what payroll.Compute derives — absolute amounts,
// never the percentages. The derived block is replaced wholesale on every
// write, so a stored netSalary always matches the stored inputs.
func recordFromSpec(id, employeeID string, spec payroll.Spec) *services.SalaryRecord {
	b := payroll.Compute(spec)
	status := spec.Status
	if status == "" {
		status = payroll.StatusActive
	}
	return &services.SalaryRecord{
		ID:          id,
		EmployeeID:  employeeID,
		BasicSalary: spec.BasicSalary,
		Allowances:  spec.Allowances,
		Deductions: services.Deductions{
			Tax:       b.TaxAmount,
			Insurance: b.InsuranceAmount,
			Pension:   spec.PensionDeduction,
			Other:     spec.OtherDeduction,
		},
		TotalAllowances: b.TotalAllowances,
		GrossSalary:     b.GrossSalary,
		TotalDeductions: b.TotalDeductions,
		NetSalary:       b.NetSalary,
		Currency:        spec.Currency,
		EffectiveDate:   spec.EffectiveDate,
		Status:          status,
	}
}

func (s *Server) handleListSalaries(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]services.SalaryRecord, 0, len(s.salaries))
	for _, rec := range s.salaries {
		out = append(out, *rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSalary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.salaries[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "salary record not found")
		return
	}
	claims := claimsFrom(r)
	if claims.Role != session.RoleAdmin && rec.EmployeeID != claims.UserID {
		writeError(w, http.StatusForbidden, "not your salary record")
		return
	}
	writeJSON(w, http.StatusOK, *rec)
}

func (s *Server) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var input services.SalaryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := recordFromSpec(uuid.NewString(), input.EmployeeID, input.Spec)
	s.salaries[rec.ID] = rec
	writeJSON(w, http.StatusCreated, *rec)
}

func (s *Server) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	var input services.SalaryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	existing, ok := s.salaries[id]
	if !ok {
		writeError(w, http.StatusNotFound, "salary record not found")
		return
	}
	employeeID := input.EmployeeID
	if employeeID == "" {
		employeeID = existing.EmployeeID
	}
	rec := recordFromSpec(id, employeeID, input.Spec)
	s.salaries[id] = rec
	writeJSON(w, http.StatusOK, *rec)
}

func (s *Server) handleDeleteSalary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.salaries[id]; !ok {
		writeError(w, http.StatusNotFound, "salary record not found")
		return
	}
	delete(s.salaries, id)
	w.WriteHeader(http.StatusNoContent)
}
