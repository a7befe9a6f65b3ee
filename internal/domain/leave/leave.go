package leave

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeCasual    = "Casual"
	TypeSick      = "Sick"
	TypeEmergency = "Emergency"
	TypeAnnual    = "Annual"
	TypeOther     = "Other"
)

// MonthlyQuota is the fixed per-employee leave allowance per calendar
// month. There is no persisted override.
const MonthlyQuota = 4.0

const minReasonLength = 10

// Request is one employee's leave application. Start and end are an
// inclusive date range. Once an admin decides it, the status never
// transitions again.
type Request struct {
	ID           string    `json:"id,omitempty"`
	EmployeeID   string    `json:"employeeId"`
	LeaveType    string    `json:"leaveType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	HalfDay      bool      `json:"halfDay"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status,omitempty"`
	Attachment   string    `json:"attachment,omitempty"`
	AdminComment string    `json:"adminComment,omitempty"`
}

func Validate(r Request) error {
	switch r.LeaveType {
	case TypeCasual, TypeSick, TypeEmergency, TypeAnnual, TypeOther:
	default:
		return errors.New("unknown leave type")
	}
	if r.EndDate.Before(r.StartDate) {
		return errors.New("end date before start date")
	}
	if len(strings.TrimSpace(r.Reason)) < minReasonLength {
		return errors.New("reason must be at least 10 characters")
	}
	if r.HalfDay && !sameDate(r.StartDate, r.EndDate) {
		return errors.New("half-day leave must start and end on the same date")
	}
	return nil
}

// DaysBetween counts calendar days from start to end, exclusive of the
// start day itself. It walks dates at midnight rather than dividing
// elapsed hours by 24, so a DST transition inside the range cannot shift
// the count by one.
func DaysBetween(start, end time.Time) int {
	s := midnight(start)
	e := midnight(end)
	days := 0
	for s.Before(e) {
		s = s.AddDate(0, 0, 1)
		days++
	}
	return days
}

// Days is a request's contribution toward the monthly quota: 0.5 for a
// half day regardless of span, otherwise the inclusive day count.
func Days(r Request) float64 {
	if r.HalfDay {
		return 0.5
	}
	return float64(DaysBetween(r.StartDate, r.EndDate)) + 1
}

// Remaining computes the month's leave balance from the full request
// list. Only approved requests whose start date falls in asOf's calendar
// year and month count; a request spilling past month end still belongs
// wholly to its start month. The result never goes below zero.
func Remaining(requests []Request, asOf time.Time) float64 {
	used := 0.0
	for _, r := range requests {
		if r.Status != StatusApproved {
			continue
		}
		if r.StartDate.Year() != asOf.Year() || r.StartDate.Month() != asOf.Month() {
			continue
		}
		used += Days(r)
	}
	if used >= MonthlyQuota {
		return 0
	}
	return MonthlyQuota - used
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
