package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
)

type Employee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	Contact        string `json:"contact,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Status         string `json:"status,omitempty"`
}

type EmployeeInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Contact    string `json:"contact,omitempty"`
}

type Employees struct {
	client *api.Client
}

func NewEmployees(client *api.Client) *Employees {
	return &Employees{client: client}
}

func (s *Employees) Me(ctx context.Context) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/employees/me"})
}

func (s *Employees) UpdateMe(ctx context.Context, input EmployeeInput) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/employees/me", Body: input})
}

// UploadProfilePicture sends the image as multipart form data. The bytes
// live in the descriptor so the client can rebuild the body on retry.
func (s *Employees) UploadProfilePicture(ctx context.Context, fileName string, content []byte) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{
		Method: http.MethodPut,
		Path:   "/employees/me/picture",
		File:   &api.FileUpload{Field: "profilePicture", Name: fileName, Content: content},
	})
}

func (s *Employees) List(ctx context.Context) Result[[]Employee] {
	return call[[]Employee](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/employees"})
}

func (s *Employees) Get(ctx context.Context, id string) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/employees/" + id})
}

func (s *Employees) Create(ctx context.Context, input EmployeeInput) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/employees", Body: input})
}

func (s *Employees) Update(ctx context.Context, id string, input EmployeeInput) Result[Employee] {
	return call[Employee](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/employees/" + id, Body: input})
}

func (s *Employees) Delete(ctx context.Context, id string) Result[Empty] {
	return call[Empty](ctx, s.client, api.Request{Method: http.MethodDelete, Path: "/employees/" + id})
}
