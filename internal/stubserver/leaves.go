package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/domain/leave"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

func (s *Server) handleMyLeaves(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := claimsFrom(r).UserID
	out := []leave.Request{}
	for _, req := range s.leaves {
		if req.EmployeeID == userID {
			out = append(out, *req)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAllLeaves(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []leave.Request{}
	for _, req := range s.leaves {
		out = append(out, *req)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	start, err := time.Parse("2006-01-02", r.FormValue("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", r.FormValue("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}
	halfDay, _ := strconv.ParseBool(r.FormValue("halfDay"))

	claims := claimsFrom(r)
	employeeID := claims.UserID
	// Admins may file on an employee's behalf.
	if onBehalf := r.FormValue("employeeId"); onBehalf != "" && claims.Role == session.RoleAdmin {
		employeeID = onBehalf
	}

	req := leave.Request{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		LeaveType:  r.FormValue("leaveType"),
		StartDate:  start,
		EndDate:    end,
		HalfDay:    halfDay,
		Reason:     r.FormValue("reason"),
		Status:     leave.StatusPending,
	}
	if err := leave.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if file, header, err := r.FormFile("attachment"); err == nil {
		file.Close()
		req.Attachment = "/uploads/" + uuid.NewString() + "-" + header.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[req.ID] = &req
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleLeaveStatus(w http.ResponseWriter, r *http.Request) {
	var decision services.LeaveDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if decision.Status != leave.StatusApproved && decision.Status != leave.StatusRejected {
		writeError(w, http.StatusBadRequest, "status must be Approved or Rejected")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.leaves[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "leave request not found")
		return
	}
	if req.Status != leave.StatusPending {
		writeError(w, http.StatusConflict, "leave request already decided")
		return
	}

	req.Status = decision.Status
	req.AdminComment = decision.AdminComment
	writeJSON(w, http.StatusOK, *req)
}
