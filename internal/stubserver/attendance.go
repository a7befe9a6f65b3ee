package stubserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/services"
)

func (s *Server) todayKey(employeeID string) string {
	return employeeID + ":" + time.Now().Format("2006-01-02")
}

func (s *Server) handleMyAttendance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := claimsFrom(r).UserID
	out := []services.AttendanceRecord{}
	for _, rec := range s.attendance {
		if rec.EmployeeID == userID {
			out = append(out, *rec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAllAttendance(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []services.AttendanceRecord{}
	for _, rec := range s.attendance {
		out = append(out, *rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := claimsFrom(r).UserID
	key := s.todayKey(userID)
	if _, exists := s.attendance[key]; exists {
		writeError(w, http.StatusConflict, "already checked in today")
		return
	}

	now := time.Now()
	rec := &services.AttendanceRecord{
		ID:          uuid.NewString(),
		EmployeeID:  userID,
		Date:        now.Format("2006-01-02"),
		CheckInTime: now.Format(time.RFC3339),
		Status:      "present",
	}
	s.attendance[key] = rec
	writeJSON(w, http.StatusCreated, *rec)
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := claimsFrom(r).UserID
	rec, exists := s.attendance[s.todayKey(userID)]
	if !exists {
		writeError(w, http.StatusNotFound, "no check-in recorded today")
		return
	}
	if rec.CheckOutTime != "" {
		writeError(w, http.StatusConflict, "already checked out today")
		return
	}

	now := time.Now()
	rec.CheckOutTime = now.Format(time.RFC3339)
	if checkedIn, err := time.Parse(time.RFC3339, rec.CheckInTime); err == nil {
		rec.TotalHours = now.Sub(checkedIn).Hours()
	}
	writeJSON(w, http.StatusOK, *rec)
}
