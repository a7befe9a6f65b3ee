package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
)

type BankAccount struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Branch        string `json:"branch,omitempty"`
}

type BankAccountInput struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Branch        string `json:"branch,omitempty"`
}

type Banks struct {
	client *api.Client
}

func NewBanks(client *api.Client) *Banks {
	return &Banks{client: client}
}

func (s *Banks) List(ctx context.Context) Result[[]BankAccount] {
	return call[[]BankAccount](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/bank-accounts"})
}

func (s *Banks) Mine(ctx context.Context) Result[BankAccount] {
	return call[BankAccount](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/bank-accounts/me"})
}

func (s *Banks) Create(ctx context.Context, input BankAccountInput) Result[BankAccount] {
	return call[BankAccount](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/bank-accounts", Body: input})
}

func (s *Banks) Update(ctx context.Context, id string, input BankAccountInput) Result[BankAccount] {
	return call[BankAccount](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/bank-accounts/" + id, Body: input})
}

func (s *Banks) Delete(ctx context.Context, id string) Result[Empty] {
	return call[Empty](ctx, s.client, api.Request{Method: http.MethodDelete, Path: "/bank-accounts/" + id})
}
