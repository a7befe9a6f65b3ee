package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
)

type Payroll struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Month      string  `json:"month"`
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
}

const (
	PayrollStatusDraft    = "draft"
	PayrollStatusApproved = "approved"
	PayrollStatusPaid     = "paid"
)

type PayrollInput struct {
	EmployeeID string `json:"employeeId"`
	Month      string `json:"month"`
}

type PayrollBudget struct {
	Budget   float64 `json:"budget"`
	Currency string  `json:"currency,omitempty"`
}

type Payrolls struct {
	client *api.Client
}

func NewPayrolls(client *api.Client) *Payrolls {
	return &Payrolls{client: client}
}

func (s *Payrolls) List(ctx context.Context) Result[[]Payroll] {
	return call[[]Payroll](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/payrolls"})
}

func (s *Payrolls) Create(ctx context.Context, input PayrollInput) Result[Payroll] {
	return call[Payroll](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/payrolls", Body: input})
}

func (s *Payrolls) Approve(ctx context.Context, id string) Result[Payroll] {
	return call[Payroll](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/payrolls/" + id + "/approve"})
}

func (s *Payrolls) MarkPaid(ctx context.Context, id string) Result[Payroll] {
	return call[Payroll](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/payrolls/" + id + "/mark-paid"})
}

func (s *Payrolls) Budget(ctx context.Context) Result[PayrollBudget] {
	return call[PayrollBudget](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/payroll-settings/payroll-budget"})
}

func (s *Payrolls) SetBudget(ctx context.Context, budget PayrollBudget) Result[PayrollBudget] {
	return call[PayrollBudget](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/payroll-settings/payroll-budget", Body: budget})
}
