package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/domain/payroll"
)

type Deductions struct {
	Tax       float64 `json:"tax"`
	Insurance float64 `json:"insurance"`
	Pension   float64 `json:"pension"`
	Other     float64 `json:"other"`
}

// SalaryRecord is the persisted shape: absolute amounts, not percentages.
// What was charged is stored; the percentages the admin typed are not.
type SalaryRecord struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employeeId"`
	BasicSalary     float64            `json:"basicSalary"`
	Allowances      payroll.Allowances `json:"allowances"`
	Deductions      Deductions         `json:"deductions"`
	TotalAllowances float64            `json:"totalAllowances"`
	GrossSalary     float64            `json:"grossSalary"`
	TotalDeductions float64            `json:"totalDeductions"`
	NetSalary       float64            `json:"netSalary"`
	Currency        string             `json:"currency"`
	EffectiveDate   string             `json:"effectiveDate,omitempty"`
	Status          string             `json:"status,omitempty"`
}

// EditSpec rebuilds the form inputs for an existing record. Percentages
// are re-derived from the stored absolute amounts, so the edit form shows
// the rates that were actually applied even if the stored rates changed
// meaning since — the drift guard from the salary invariant.
func (r SalaryRecord) EditSpec() payroll.Spec {
	taxPct, insurancePct := payroll.DerivePercentages(
		r.BasicSalary, r.GrossSalary, r.Deductions.Tax, r.Deductions.Insurance)
	return payroll.Spec{
		BasicSalary:         r.BasicSalary,
		Allowances:          r.Allowances,
		TaxPercentage:       taxPct,
		InsurancePercentage: insurancePct,
		PensionDeduction:    r.Deductions.Pension,
		OtherDeduction:      r.Deductions.Other,
		Currency:            r.Currency,
		EffectiveDate:       r.EffectiveDate,
		Status:              r.Status,
	}
}

type Salaries struct {
	client *api.Client
}

func NewSalaries(client *api.Client) *Salaries {
	return &Salaries{client: client}
}

func (s *Salaries) List(ctx context.Context) Result[[]SalaryRecord] {
	return call[[]SalaryRecord](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/salaries"})
}

func (s *Salaries) Get(ctx context.Context, id string) Result[SalaryRecord] {
	return call[SalaryRecord](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/salaries/" + id})
}

type SalaryInput struct {
	EmployeeID string       `json:"employeeId"`
	Spec       payroll.Spec `json:"spec"`
}

func (s *Salaries) Create(ctx context.Context, input SalaryInput) Result[SalaryRecord] {
	return call[SalaryRecord](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/salaries", Body: input})
}

func (s *Salaries) Update(ctx context.Context, id string, input SalaryInput) Result[SalaryRecord] {
	return call[SalaryRecord](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/salaries/" + id, Body: input})
}

func (s *Salaries) Delete(ctx context.Context, id string) Result[Empty] {
	return call[Empty](ctx, s.client, api.Request{Method: http.MethodDelete, Path: "/salaries/" + id})
}
