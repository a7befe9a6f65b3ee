package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
)

type AttendanceRecord struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	CheckInTime  string  `json:"checkInTime,omitempty"`
	CheckOutTime string  `json:"checkOutTime,omitempty"`
	TotalHours   float64 `json:"totalHours,omitempty"`
	Status       string  `json:"status,omitempty"`
}

type Attendance struct {
	client *api.Client
}

func NewAttendance(client *api.Client) *Attendance {
	return &Attendance{client: client}
}

func (s *Attendance) Mine(ctx context.Context) Result[[]AttendanceRecord] {
	return call[[]AttendanceRecord](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/attendance/me"})
}

func (s *Attendance) All(ctx context.Context) Result[[]AttendanceRecord] {
	return call[[]AttendanceRecord](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/attendance"})
}

func (s *Attendance) CheckIn(ctx context.Context) Result[AttendanceRecord] {
	return call[AttendanceRecord](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/attendance/checkin"})
}

func (s *Attendance) CheckOut(ctx context.Context) Result[AttendanceRecord] {
	return call[AttendanceRecord](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/attendance/checkout"})
}
