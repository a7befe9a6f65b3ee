package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/domain/leave"
)

type Leaves struct {
	client *api.Client
}

func NewLeaves(client *api.Client) *Leaves {
	return &Leaves{client: client}
}

func (s *Leaves) Mine(ctx context.Context) Result[[]leave.Request] {
	return call[[]leave.Request](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/leaves/my"})
}

func (s *Leaves) All(ctx context.Context) Result[[]leave.Request] {
	return call[[]leave.Request](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/leaves/all"})
}

// Create submits a leave request as multipart form data, with the
// attachment alongside the scalar fields when one is given. Validation
// runs locally first so an obviously bad request never leaves the client.
func (s *Leaves) Create(ctx context.Context, req leave.Request, attachmentName string, attachment []byte) Result[leave.Request] {
	if err := leave.Validate(req); err != nil {
		return failed[leave.Request](err)
	}

	form := map[string]string{
		"leaveType": req.LeaveType,
		"startDate": req.StartDate.Format("2006-01-02"),
		"endDate":   req.EndDate.Format("2006-01-02"),
		"halfDay":   strconv.FormatBool(req.HalfDay),
		"reason":    req.Reason,
	}
	if req.EmployeeID != "" {
		form["employeeId"] = req.EmployeeID
	}

	apiReq := api.Request{Method: http.MethodPost, Path: "/leaves", Form: form}
	if len(attachment) > 0 {
		apiReq.File = &api.FileUpload{Field: "attachment", Name: attachmentName, Content: attachment}
	}
	return call[leave.Request](ctx, s.client, apiReq)
}

type LeaveDecision struct {
	Status       string `json:"status"`
	AdminComment string `json:"adminComment,omitempty"`
}

// SetStatus is the admin approve/reject transition. A request already
// decided stays decided; the backend rejects further transitions.
func (s *Leaves) SetStatus(ctx context.Context, id string, decision LeaveDecision) Result[leave.Request] {
	return call[leave.Request](ctx, s.client, api.Request{
		Method: http.MethodPut,
		Path:   "/leaves/" + id + "/status",
		Body:   decision,
	})
}

// Balance fetches the caller's leave history and computes the month's
// remaining quota locally, the same single code path every display uses.
func (s *Leaves) Balance(ctx context.Context) Result[float64] {
	history := s.Mine(ctx)
	if !history.OK {
		return failed[float64](history.Err)
	}
	return succeed(leave.Remaining(history.Data, timeNow()))
}
