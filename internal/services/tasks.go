package services

import (
	"context"
	"net/http"

	"github.com/abhidhakal/hready/internal/api"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate,omitempty"`
}

type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

type Tasks struct {
	client *api.Client
}

func NewTasks(client *api.Client) *Tasks {
	return &Tasks{client: client}
}

func (s *Tasks) List(ctx context.Context) Result[[]Task] {
	return call[[]Task](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/tasks"})
}

func (s *Tasks) Get(ctx context.Context, id string) Result[Task] {
	return call[Task](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/tasks/" + id})
}

func (s *Tasks) Create(ctx context.Context, input TaskInput) Result[Task] {
	return call[Task](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/tasks", Body: input})
}

func (s *Tasks) Update(ctx context.Context, id string, input TaskInput) Result[Task] {
	return call[Task](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/tasks/" + id, Body: input})
}

func (s *Tasks) Delete(ctx context.Context, id string) Result[Empty] {
	return call[Empty](ctx, s.client, api.Request{Method: http.MethodDelete, Path: "/tasks/" + id})
}
